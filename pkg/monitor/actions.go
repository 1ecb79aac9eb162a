package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sbpo/datapoints/internal/models"
)

// API is the data source behind the monitor. *api.Client implements it.
type API interface {
	List(ctx context.Context) ([]models.Record, error)
	Snapshot(ctx context.Context) ([]models.Record, error)
	Get(ctx context.Context, id string) (models.Record, error)
	Create(ctx context.Context, d models.Draft) (models.Record, error)
	Update(ctx context.Context, id string, d models.Draft) (models.Record, error)
	Remove(ctx context.Context, id string) (models.DeletedRecord, error)
	Restore(ctx context.Context, d models.DeletedRecord) (models.Record, error)
}

const statusTTL = 3 * time.Second

// fetchList returns a command that loads the list through the delayed API
func (m Model) fetchList() tea.Cmd {
	return func() tea.Msg {
		records, err := m.api.List(m.ctx)
		return ListLoadedMsg{Records: records, Err: err}
	}
}

// fetchSnapshot returns a command that reads the list without delay,
// used to refresh after a mutation
func (m Model) fetchSnapshot() tea.Cmd {
	return func() tea.Msg {
		records, err := m.api.Snapshot(m.ctx)
		return ListLoadedMsg{Records: records, Err: err, Cached: true}
	}
}

func (m Model) fetchRecord(id string) tea.Cmd {
	return func() tea.Msg {
		r, err := m.api.Get(m.ctx, id)
		return RecordLoadedMsg{ID: id, Record: r, Err: err}
	}
}

func (m Model) createRecord(d models.Draft) tea.Cmd {
	return func() tea.Msg {
		r, err := m.api.Create(m.ctx, d)
		return RecordSavedMsg{Op: models.OpCreate, Record: r, Err: err}
	}
}

func (m Model) updateRecord(id string, d models.Draft) tea.Cmd {
	return func() tea.Msg {
		r, err := m.api.Update(m.ctx, id, d)
		if err == nil {
			return RecordSavedMsg{Op: models.OpUpdate, Record: r}
		}
		return RecordSavedMsg{Op: models.OpUpdate, Record: models.Record{ID: id}, Err: err}
	}
}

func (m Model) removeRecord(id string) tea.Cmd {
	return func() tea.Msg {
		d, err := m.api.Remove(m.ctx, id)
		return RecordRemovedMsg{ID: id, Deleted: d, Err: err}
	}
}

func (m Model) restoreRecord(entry models.DeletedRecord) tea.Cmd {
	return func() tea.Msg {
		r, err := m.api.Restore(m.ctx, entry)
		return RecordRestoredMsg{Entry: entry, Record: r, Err: err}
	}
}

// scheduleExpiry drops the undo notification for entry once it times out
func (m Model) scheduleExpiry(entry models.DeletedRecord) tea.Cmd {
	return tea.Tick(m.Undo.Remaining(entry), func(time.Time) tea.Msg {
		return UndoExpiredMsg{ID: entry.Record.ID, DeletedAt: entry.DeletedAt}
	})
}

// setStatus shows a temporary message and schedules its removal. Each
// message gets its own sequence number so an older timer cannot clear it.
func (m *Model) setStatus(msg string, isError bool) tea.Cmd {
	m.statusSeq++
	m.StatusMessage = msg
	m.StatusIsError = isError
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}

// begin marks op as in flight
func (m *Model) begin(op models.Op) {
	m.pending[op]++
}

// finish clears one in-flight op
func (m *Model) finish(op models.Op) {
	if m.pending[op] > 0 {
		m.pending[op]--
	}
}

// Loading reports whether op is in flight
func (m Model) Loading(op models.Op) bool {
	return m.pending[op] > 0
}

// Busy reports whether any operation is in flight
func (m Model) Busy() bool {
	for _, n := range m.pending {
		if n > 0 {
			return true
		}
	}
	return false
}
