package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sbpo/datapoints/internal/form"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/paging"
	"github.com/sbpo/datapoints/internal/undo"
	"github.com/sbpo/datapoints/pkg/monitor/keymap"
	"go.uber.org/zap"
)

// Model is the main Bubble Tea model for the data points monitor
type Model struct {
	api API
	ctx context.Context
	log *zap.Logger

	// Keymap registry for keyboard shortcuts
	Keymap *keymap.Registry

	// Data
	Records []models.Record
	Loaded  bool
	Err     error

	// List position
	Pager  paging.Pager
	Page   int // 1-based
	Cursor int // row within the current page

	// Recently deleted records, newest first
	Undo *undo.Buffer

	// In-flight operations started by this model
	pending map[models.Op]int

	// Form state
	FormOpen  bool
	FormState *FormState

	HelpOpen bool

	// Status message (temporary feedback)
	StatusMessage string
	StatusIsError bool
	statusSeq     int

	Spinner spinner.Model

	Width  int
	Height int
}

// Options configures a new Model
type Options struct {
	Context context.Context
	PerPage int
	UndoTTL time.Duration
	Keymap  *keymap.Registry
	Logger  *zap.Logger
	Clock   func() time.Time
}

// New creates a monitor over api. The initial list fetch is counted as
// pending straight away so the first frame shows the loading state.
func New(api API, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ttl := opts.UndoTTL
	if ttl <= 0 {
		ttl = undo.DefaultTTL
	}
	buf := undo.New(ttl)
	if opts.Clock != nil {
		buf.SetClock(opts.Clock)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = busyStyle

	return Model{
		api:     api,
		ctx:     ctx,
		log:     log,
		Keymap:  km,
		Pager:   paging.New(opts.PerPage),
		Page:    1,
		Undo:    buf,
		pending: map[models.Op]int{models.OpList: 1},
		Spinner: sp,
	}
}

// Init loads the list and starts the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchList(), m.Spinner.Tick)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.formActive() {
			return m.handleFormUpdate(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if m.formActive() {
			m.FormState.SetWidth(m.formWidth())
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ListLoadedMsg:
		if !msg.Cached {
			m.finish(models.OpList)
		}
		if msg.Err != nil {
			m.Err = msg.Err
			m.log.Warn("list failed", zap.Error(msg.Err))
			statusCmd := m.setStatus("Error loading data: "+msg.Err.Error(), true)
			return m, statusCmd
		}
		m.Err = nil
		m.Loaded = true
		m.Records = msg.Records
		m.clampPosition()
		return m, nil

	case RecordLoadedMsg:
		m.finish(models.OpGet)
		if msg.Err != nil {
			statusCmd := m.setStatus("Error finding data", true)
			return m, statusCmd
		}
		if m.FormOpen {
			return m, nil
		}
		formCmd := m.openForm(NewFormStateForEdit(msg.Record))
		return m, formCmd

	case RecordSavedMsg:
		return m.handleSaved(msg)

	case RecordRemovedMsg:
		m.finish(models.OpRemove)
		if msg.Err != nil {
			statusCmd := m.setStatus("Error removing data: "+msg.Err.Error(), true)
			return m, statusCmd
		}
		entry := m.Undo.Push(msg.Deleted)
		m.log.Debug("record removed", zap.String("id", entry.Record.ID), zap.Int("index", entry.Index))
		return m, tea.Batch(m.scheduleExpiry(entry), m.fetchSnapshot())

	case RecordRestoredMsg:
		m.finish(models.OpRestore)
		if msg.Err != nil {
			statusCmd := m.setStatus("Error restoring data: "+msg.Err.Error(), true)
			return m, statusCmd
		}
		statusCmd := m.setStatus("Restored "+msg.Record.Title, false)
		return m, tea.Batch(m.fetchSnapshot(), statusCmd)

	case UndoExpiredMsg:
		m.Undo.Drop(msg.ID, msg.DeletedAt)
		return m, nil

	case ClearStatusMsg:
		if msg.Seq != m.statusSeq {
			return m, nil
		}
		m.StatusMessage = ""
		m.StatusIsError = false
		return m, nil
	}

	// Anything else (cursor blink and similar) belongs to the form
	if m.formActive() {
		return m.handleFormUpdate(msg)
	}
	return m, nil
}

// handleSaved finishes a create or update
func (m Model) handleSaved(msg RecordSavedMsg) (tea.Model, tea.Cmd) {
	m.finish(msg.Op)
	if msg.Err != nil {
		if m.formActive() {
			m.FormState.Revive()
		}
		statusCmd := m.setStatus("Error saving data: "+msg.Err.Error(), true)
		return m, statusCmd
	}

	label := "Updated item"
	if msg.Op == models.OpCreate {
		label = "Added item"
	}
	cmds := []tea.Cmd{m.fetchSnapshot(), m.setStatus(label, false)}

	if m.formActive() && m.formOp() == msg.Op {
		if m.FormState.Committed() {
			cmds = append(cmds, m.FormState.Form.Init())
		} else {
			m.closeForm()
		}
	}
	return m, tea.Batch(cmds...)
}

// currentContext returns the keymap context for the current UI state
func (m Model) currentContext() keymap.Context {
	switch {
	case m.FormOpen:
		return keymap.ContextForm
	case m.HelpOpen:
		return keymap.ContextHelp
	default:
		return keymap.ContextMain
	}
}

// CurrentContextString returns the current keymap context as a string
func (m Model) CurrentContextString() string {
	return string(m.currentContext())
}

func (m Model) formActive() bool {
	return m.FormOpen && m.FormState != nil && m.FormState.Form != nil
}

// formOp returns the operation the open form submits with
func (m Model) formOp() models.Op {
	if m.FormState != nil && m.FormState.Mode() == form.ModeEdit {
		return models.OpUpdate
	}
	return models.OpCreate
}

// openForm shows fs. A key sequence started in the list does not carry
// over into the form.
func (m *Model) openForm(fs *FormState) tea.Cmd {
	m.Keymap.ResetPending()
	m.FormState = fs
	m.FormState.SetWidth(m.formWidth())
	m.FormOpen = true
	return m.FormState.Form.Init()
}

func (m *Model) closeForm() {
	m.FormOpen = false
	m.FormState = nil
}

func (m Model) formWidth() int {
	w := m.Width - 6
	if w < 20 {
		w = 60
	}
	return w
}

// PageRecords returns the records on the current page
func (m Model) PageRecords() []models.Record {
	return paging.Slice(m.Records, m.Page, m.Pager.PerPage)
}

// Pages returns the number of pages
func (m Model) Pages() int {
	return m.Pager.Pages(len(m.Records))
}

// Selected returns the record under the cursor
func (m Model) Selected() (models.Record, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.PageRecords()) {
		return models.Record{}, false
	}
	return m.Records[m.Pager.Offset(m.Page, m.Cursor)], true
}

// clampPosition keeps the page and cursor inside the data after it changed
func (m *Model) clampPosition() {
	m.Page = m.Pager.Clamp(m.Page, len(m.Records))
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.PageRecords())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
