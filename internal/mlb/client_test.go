package mlb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
)

const transactionsFixture = `{
	"transactions": [
		{
			"id": 491837,
			"person": {"id": 660271, "fullName": "John Smith"},
			"fromTeam": {"id": 2310, "name": "Buffalo Bisons"},
			"toTeam": {"id": 141, "name": "Toronto Blue Jays"},
			"date": "2026-08-27",
			"typeCode": "CU",
			"typeDesc": "Recalled",
			"description": "Toronto Blue Jays recalled John Smith from Buffalo Bisons."
		},
		{
			"id": 491838,
			"person": {"id": 660272, "fullName": "Alex Doe"},
			"toTeam": {"id": 141, "name": "Toronto Blue Jays"},
			"date": "2026-08-27",
			"typeCode": "SFA",
			"typeDesc": "Signed as Free Agent",
			"description": "Toronto Blue Jays signed free agent Alex Doe."
		}
	]
}`

func TestTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("sportId"))
		assert.Equal(t, "141", r.URL.Query().Get("teamId"))
		assert.Equal(t, "2026-08-27", r.URL.Query().Get("date"))
		w.Write([]byte(transactionsFixture))
	}))
	defer srv.Close()

	client := NewClientWithBaseURI(srv.URL)
	date := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	txs, err := client.Transactions(context.Background(), 1, 141, date)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(491837), txs[0].ID)
	assert.Equal(t, "John Smith", txs[0].Person.FullName)
	assert.Equal(t, "Buffalo Bisons", txs[0].FromTeamName())
	assert.Equal(t, "Toronto Blue Jays", txs[0].ToTeamName())
	assert.Equal(t, int64(141), txs[0].ToTeamID())
	assert.Equal(t, "CU", txs[0].TypeCode)

	// Free agent signing has no origin team.
	assert.Nil(t, txs[1].FromTeam)
	assert.Empty(t, txs[1].FromTeamName())
}

func TestTransactionsEmptyDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"transactions": []}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURI(srv.URL)
	txs, err := client.Transactions(context.Background(), 1, 141, time.Now())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestTransactionsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "oops", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClientWithBaseURI(srv.URL)
	_, err := client.Transactions(context.Background(), 1, 141, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFetchFailed))
}

func TestTransactionsMissingTeamAccessors(t *testing.T) {
	tx := Transaction{}
	assert.Empty(t, tx.FromTeamName())
	assert.Empty(t, tx.ToTeamName())
	assert.Zero(t, tx.ToTeamID())
}
