// Package store holds the ordered list of records behind the fake API.
// Stores have no latency of their own; the api package adds it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbpo/datapoints/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrExists   = errors.New("record already exists")
)

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names
func Backends() []string {
	return []string{BackendMemory, BackendSQLite}
}

// Store is an ordered sequence of records with unique IDs
type Store interface {
	// List returns a copy of all records in order
	List(ctx context.Context) ([]models.Record, error)
	// Get returns the record with the given ID
	Get(ctx context.Context, id string) (models.Record, error)
	// Append adds a record at the end
	Append(ctx context.Context, r models.Record) error
	// Insert places a record at index, clamped to [0, len]
	Insert(ctx context.Context, index int, r models.Record) error
	// Replace merges the draft into the record in place
	Replace(ctx context.Context, id string, d models.Draft) (models.Record, error)
	// Remove deletes the record and reports the index it occupied
	Remove(ctx context.Context, id string) (models.Record, int, error)
	// Len returns the number of records
	Len(ctx context.Context) (int, error)
	Close() error
}

// Open creates a store for the named backend and loads the seed records
func Open(backend string, seed []models.Record) (Store, error) {
	var (
		s   Store
		err error
	)
	switch backend {
	case "", BackendMemory:
		s = NewMemory()
	case BackendSQLite:
		s, err = OpenSQLite()
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: memory, sqlite)", backend)
	}

	ctx := context.Background()
	for _, r := range seed {
		if err := s.Append(ctx, r); err != nil {
			s.Close()
			return nil, fmt.Errorf("seed %s: %w", r.ID, err)
		}
	}
	return s, nil
}

// clampIndex limits index to the valid insertion range [0, n]
func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}

// splice returns a new slice with items inserted at start after removing
// deleteCount elements. The input slice is never modified.
func splice(arr []models.Record, start, deleteCount int, items ...models.Record) []models.Record {
	start = clampIndex(start, len(arr))
	end := start + deleteCount
	if end > len(arr) {
		end = len(arr)
	}
	out := make([]models.Record, 0, len(arr)-(end-start)+len(items))
	out = append(out, arr[:start]...)
	out = append(out, items...)
	out = append(out, arr[end:]...)
	return out
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func exists(id string) error {
	return fmt.Errorf("%w: %s", ErrExists, id)
}
