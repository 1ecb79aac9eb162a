package monitor

import (
	"time"

	"github.com/sbpo/datapoints/internal/models"
)

// ListLoadedMsg carries the record list from a List or Snapshot call
type ListLoadedMsg struct {
	Records []models.Record
	Err     error
	Cached  bool // true when read from the snapshot after a mutation
}

// RecordLoadedMsg carries a record fetched for the edit form
type RecordLoadedMsg struct {
	ID     string
	Record models.Record
	Err    error
}

// RecordSavedMsg is sent when a create or update finishes
type RecordSavedMsg struct {
	Op     models.Op // OpCreate or OpUpdate
	Record models.Record
	Err    error
}

// RecordRemovedMsg is sent when a remove finishes
type RecordRemovedMsg struct {
	ID      string
	Deleted models.DeletedRecord
	Err     error
}

// RecordRestoredMsg is sent when an undo finishes
type RecordRestoredMsg struct {
	Entry  models.DeletedRecord
	Record models.Record
	Err    error
}

// UndoExpiredMsg drops one undo notification once its TTL has passed
type UndoExpiredMsg struct {
	ID        string
	DeletedAt time.Time
}

// ClearStatusMsg clears the status message it was scheduled for
type ClearStatusMsg struct {
	Seq int
}
