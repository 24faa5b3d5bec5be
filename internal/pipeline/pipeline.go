// Package pipeline orchestrates one polling pass: fetch, dedupe,
// classify, format.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
	"github.com/cmahoney/rosterwatch/internal/mlb"
	"github.com/cmahoney/rosterwatch/internal/movement"
	"github.com/cmahoney/rosterwatch/internal/notify"
	"github.com/cmahoney/rosterwatch/internal/sent"
)

// Source provides transactions for one team on one date.
type Source interface {
	Transactions(ctx context.Context, sportID, teamID int64, date time.Time) ([]mlb.Transaction, error)
}

// Config carries the per-run parameters. All values are supplied up
// front; nothing is read from the environment inside the pipeline.
type Config struct {
	SportID      int64
	TeamID       int64
	LookbackDays int
	Location     *time.Location
	Logger       *slog.Logger
}

// Result summarizes one run. Notifications are ordered by source date
// ascending and are empty when nothing new was found.
type Result struct {
	Notifications []notify.Notification
	Fetched       int
	Skipped       int
}

// Pipeline runs the fetch/dedupe/classify/format pass for one team.
type Pipeline struct {
	source Source
	store  sent.Store
	cfg    Config
	now    func() time.Time
}

// New creates a pipeline over the given source and dedup store.
func New(source Source, store sent.Store, cfg Config) *Pipeline {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 3
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{
		source: source,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run performs a single pass over the lookback window. Any fetch failure
// aborts the whole run before dedup state is saved, so the same dates are
// retried untouched on the next invocation. Dedup state is saved before
// the caller delivers anything: a transaction is marked sent at most
// once, even if delivery later fails.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ids, err := p.store.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sent ids")
	}

	known := make(map[int64]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	result := &Result{}

	for _, date := range p.window() {
		txs, err := p.source.Transactions(ctx, p.cfg.SportID, p.cfg.TeamID, date)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch transactions for %s", date.Format(mlb.DateFormat))
		}
		result.Fetched += len(txs)

		for _, tx := range txs {
			if known[tx.ID] {
				result.Skipped++
				continue
			}
			known[tx.ID] = true
			ids = append(ids, tx.ID)

			classified := movement.Classify(tx, p.cfg.TeamID)
			result.Notifications = append(result.Notifications, notify.Build(tx, classified, date))

			p.cfg.Logger.Debug("Classified transaction",
				"id", tx.ID,
				"type_code", tx.TypeCode,
				"phrase", classified.Phrase,
				"color", classified.Color.String())
		}
	}

	if len(result.Notifications) == 0 {
		return result, nil
	}

	if err := p.store.Save(ctx, ids); err != nil {
		return nil, errors.Wrap(err, "failed to save sent ids")
	}

	return result, nil
}

// Preview classifies one date's transactions without consulting or
// updating the dedup store.
func (p *Pipeline) Preview(ctx context.Context, date time.Time) ([]notify.Notification, error) {
	txs, err := p.source.Transactions(ctx, p.cfg.SportID, p.cfg.TeamID, date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch transactions for %s", date.Format(mlb.DateFormat))
	}

	notifications := make([]notify.Notification, 0, len(txs))
	for _, tx := range txs {
		notifications = append(notifications, notify.Build(tx, movement.Classify(tx, p.cfg.TeamID), date))
	}
	return notifications, nil
}

// window returns the lookback dates in ascending order, ending with
// today in the configured time zone.
func (p *Pipeline) window() []time.Time {
	now := p.now().In(p.cfg.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.cfg.Location)

	dates := make([]time.Time, 0, p.cfg.LookbackDays)
	for i := p.cfg.LookbackDays - 1; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates
}
