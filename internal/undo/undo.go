// Package undo keeps recently deleted records so they can be restored
// for a short time after removal.
package undo

import (
	"slices"
	"time"

	"github.com/sbpo/datapoints/internal/models"
)

// DefaultTTL is how long a deleted record stays restorable
const DefaultTTL = 10 * time.Second

// Buffer holds deleted records, newest first. It is not safe for
// concurrent use; the owner (a Bubble Tea model or a script runner)
// serializes access.
type Buffer struct {
	ttl     time.Duration
	now     func() time.Time
	entries []models.DeletedRecord
}

// New creates an empty buffer with the given TTL
func New(ttl time.Duration) *Buffer {
	return &Buffer{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source
func (b *Buffer) SetClock(now func() time.Time) {
	b.now = now
}

// TTL returns how long entries live
func (b *Buffer) TTL() time.Duration {
	return b.ttl
}

// Push adds an entry at the front. An older entry for the same record
// is replaced. A zero DeletedAt is stamped with the current time.
func (b *Buffer) Push(d models.DeletedRecord) models.DeletedRecord {
	if d.DeletedAt.IsZero() {
		d.DeletedAt = b.now()
	}
	rest := slices.DeleteFunc(slices.Clone(b.entries), func(e models.DeletedRecord) bool {
		return e.Record.ID == d.Record.ID
	})
	b.entries = append([]models.DeletedRecord{d}, rest...)
	return d
}

// Take removes and returns the entry for id
func (b *Buffer) Take(id string) (models.DeletedRecord, bool) {
	i := b.indexOf(id)
	if i < 0 {
		return models.DeletedRecord{}, false
	}
	d := b.entries[i]
	b.entries = slices.Delete(slices.Clone(b.entries), i, i+1)
	return d, true
}

// Newest returns the most recently pushed entry
func (b *Buffer) Newest() (models.DeletedRecord, bool) {
	if len(b.entries) == 0 {
		return models.DeletedRecord{}, false
	}
	return b.entries[0], true
}

// At returns the nth entry, zero-based from newest
func (b *Buffer) At(n int) (models.DeletedRecord, bool) {
	if n < 0 || n >= len(b.entries) {
		return models.DeletedRecord{}, false
	}
	return b.entries[n], true
}

// Drop removes the entry for id if it is still present and was deleted at
// the given time. Matching on the timestamp keeps a stale expiry timer
// from dropping a record that was deleted again later.
func (b *Buffer) Drop(id string, deletedAt time.Time) bool {
	i := b.indexOf(id)
	if i < 0 || !b.entries[i].DeletedAt.Equal(deletedAt) {
		return false
	}
	b.entries = slices.Delete(slices.Clone(b.entries), i, i+1)
	return true
}

// Expire drops every entry older than the TTL and returns them
func (b *Buffer) Expire(now time.Time) []models.DeletedRecord {
	var expired, kept []models.DeletedRecord
	for _, e := range b.entries {
		if b.Expired(e, now) {
			expired = append(expired, e)
		} else {
			kept = append(kept, e)
		}
	}
	b.entries = kept
	return expired
}

// Expired reports whether e has outlived the TTL at now
func (b *Buffer) Expired(e models.DeletedRecord, now time.Time) bool {
	return !now.Before(e.DeletedAt.Add(b.ttl))
}

// Remaining returns how long e stays restorable, never negative
func (b *Buffer) Remaining(e models.DeletedRecord) time.Duration {
	left := e.DeletedAt.Add(b.ttl).Sub(b.now())
	if left < 0 {
		return 0
	}
	return left
}

// Entries returns a copy of the entries, newest first
func (b *Buffer) Entries() []models.DeletedRecord {
	return slices.Clone(b.entries)
}

// Len returns the number of entries
func (b *Buffer) Len() int {
	return len(b.entries)
}

func (b *Buffer) indexOf(id string) int {
	return slices.IndexFunc(b.entries, func(e models.DeletedRecord) bool {
		return e.Record.ID == id
	})
}
