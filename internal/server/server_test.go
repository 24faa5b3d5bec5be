package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmahoney/rosterwatch/internal/mlb"
	"github.com/cmahoney/rosterwatch/internal/notify"
	"github.com/cmahoney/rosterwatch/internal/pipeline"
	"github.com/cmahoney/rosterwatch/internal/sent"
)

// staticSource serves its transactions on the first fetch only, so a
// three-day window sees them exactly once regardless of today's date.
type staticSource struct {
	txs   []mlb.Transaction
	calls int
}

func (s *staticSource) Transactions(_ context.Context, _, _ int64, _ time.Time) ([]mlb.Transaction, error) {
	s.calls++
	if s.calls == 1 {
		return s.txs, nil
	}
	return nil, nil
}

type recordingNotifier struct {
	sent []notify.Notification
}

func (r *recordingNotifier) Send(_ context.Context, n notify.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func newTestServer(t *testing.T) (*Server, *recordingNotifier) {
	t.Helper()

	source := &staticSource{txs: []mlb.Transaction{{
		ID:          42,
		Person:      mlb.Person{FullName: "John Smith"},
		ToTeam:      &mlb.Team{ID: 141, Name: "Blue Jays"},
		TypeCode:    "SFA",
		TypeDesc:    "Signed as Free Agent",
		Description: "Jays signed John Smith as a free agent.",
	}}}

	store := sent.NewFileStore(filepath.Join(t.TempDir(), "sent.json"), 25, nil)
	pipe := pipeline.New(source, store, pipeline.Config{
		SportID:      1,
		TeamID:       141,
		LookbackDays: 3,
		Location:     time.UTC,
	})

	notifier := &recordingNotifier{}
	srv := New(pipe, notifier, Config{Location: time.UTC})
	return srv, notifier
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusAfterPoll(t *testing.T) {
	srv, notifier := newTestServer(t)
	srv.poll(context.Background())

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "John Smith - Signed as Free Agent", notifier.sent[0].Header)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Data    Status `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.RunID)
	assert.Equal(t, 1, resp.Data.Fetched)
	assert.Equal(t, 1, resp.Data.Notified)
	assert.Zero(t, resp.Data.DeliveryFailures)
	assert.Empty(t, resp.Data.LastError)
}

func TestPreviewEndpoint(t *testing.T) {
	srv, notifier := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview?date=2026-08-27", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Header string `json:"header"`
			Body   string `json:"body"`
			Color  string `json:"color"`
			Date   string `json:"date"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "John Smith - Signed as Free Agent", resp.Data[0].Header)
	assert.Equal(t, "good", resp.Data[0].Color)
	assert.Equal(t, "2026-08-27", resp.Data[0].Date)

	// Preview must not deliver or mark anything sent.
	assert.Empty(t, notifier.sent)
}

func TestPreviewInvalidDate(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/preview?date=toronto", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
