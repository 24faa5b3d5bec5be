// Package sent persists the bounded record of transaction IDs that have
// already been notified.
package sent

import "context"

// DefaultCapacity is the number of transaction IDs retained between runs.
const DefaultCapacity = 25

// Store is the persistence contract for already-notified transaction IDs.
// Load returns the stored IDs oldest-first; a missing or unreadable record
// is an empty list, not an error. Save replaces the stored record with the
// newest entries of ids, up to the store's capacity.
type Store interface {
	Load(ctx context.Context) ([]int64, error)
	Save(ctx context.Context, ids []int64) error
}

// tail returns the last n elements of ids, preserving order.
func tail(ids []int64, n int) []int64 {
	if n <= 0 || len(ids) <= n {
		return ids
	}
	return ids[len(ids)-n:]
}
