package sent

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/cmahoney/rosterwatch/internal/common/errors"
)

// PostgresStore persists sent IDs in a single table, for deployments
// where the working directory is not durable.
type PostgresStore struct {
	db       *sql.DB
	capacity int
}

// NewPostgresStore opens a connection and ensures the backing table
// exists.
func NewPostgresStore(user, password, host, port, dbname string, capacity int) (*PostgresStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	connString := fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable", user, password, host, port, dbname)
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	q := `CREATE TABLE IF NOT EXISTS sent_transaction (
		position SERIAL PRIMARY KEY,
		transaction_id BIGINT NOT NULL
	)`
	if _, err := db.Exec(q); err != nil {
		return nil, errors.Wrap(err, "failed to ensure sent_transaction table")
	}

	return &PostgresStore{
		db:       db,
		capacity: capacity,
	}, nil
}

// Load returns stored IDs oldest-first. An empty table is an empty list.
func (s *PostgresStore) Load(ctx context.Context) ([]int64, error) {
	q := `SELECT transaction_id FROM sent_transaction ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query sent ids")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "failed to scan sent id")
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Save replaces the stored record with the newest capacity IDs in one
// transaction.
func (s *PostgresStore) Save(ctx context.Context, ids []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sent_transaction`); err != nil {
		return errors.Wrap(err, "failed to clear sent ids")
	}

	q := `INSERT INTO sent_transaction (transaction_id) VALUES ($1)`
	for _, id := range tail(ids, s.capacity) {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return errors.Wrap(err, "failed to insert sent id")
		}
	}

	return tx.Commit()
}

// Close releases the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
