package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/sbpo/datapoints/internal/form"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/pkg/monitor/keymap"
	"go.uber.org/zap"
)

// handleFormUpdate handles messages while the form is open
func (m Model) handleFormUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Form bindings first; everything else is typing
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd, found := m.Keymap.LookupExact(keyMsg, keymap.ContextForm); found {
			return m.executeCommand(cmd)
		}
	}

	f, cmd := m.FormState.Form.Update(msg)
	if hf, ok := f.(*huh.Form); ok {
		m.FormState.Form = hf
	}

	switch m.FormState.Form.State {
	case huh.StateCompleted:
		// Enter on the last field
		return m.executeCommand(keymap.CmdFormSubmit)
	case huh.StateAborted:
		return m.executeCommand(keymap.CmdFormCancel)
	}
	return m, cmd
}

// handleKey processes key input using the keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, found := m.Keymap.Lookup(msg, m.currentContext())
	if !found {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand runs a keymap command
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	m.log.Debug("command", zap.String("cmd", string(cmd)), zap.String("context", m.CurrentContextString()))

	if n, ok := keymap.UndoSlot(cmd); ok {
		return m.undo(n - 1)
	}

	switch cmd {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.Keymap.ResetPending()
		m.HelpOpen = !m.HelpOpen
		return m, nil

	case keymap.CmdCursorDown:
		if m.Cursor < len(m.PageRecords())-1 {
			m.Cursor++
		}
		return m, nil

	case keymap.CmdCursorUp:
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case keymap.CmdNextPage:
		return m.gotoPage(m.Pager.Next(m.Page, len(m.Records)))

	case keymap.CmdPrevPage:
		return m.gotoPage(m.Pager.Prev(m.Page))

	case keymap.CmdFirstPage:
		return m.gotoPage(1)

	case keymap.CmdLastPage:
		return m.gotoPage(m.Pages())

	case keymap.CmdRefresh:
		if m.Loading(models.OpList) {
			return m, nil
		}
		m.begin(models.OpList)
		return m, m.fetchList()

	case keymap.CmdNewRecord:
		formCmd := m.openForm(NewFormState())
		return m, formCmd

	case keymap.CmdEditRecord:
		r, ok := m.Selected()
		if !ok || m.Loading(models.OpGet) {
			return m, nil
		}
		m.begin(models.OpGet)
		return m, m.fetchRecord(r.ID)

	case keymap.CmdRemove:
		r, ok := m.Selected()
		if !ok || m.Loading(models.OpRemove) || m.Loading(models.OpRestore) {
			return m, nil
		}
		m.begin(models.OpRemove)
		return m, m.removeRecord(r.ID)

	case keymap.CmdUndo:
		return m.undo(0)

	case keymap.CmdFormSubmit:
		return m.submitForm()

	case keymap.CmdFormCancel:
		m.closeForm()
		return m, nil

	case keymap.CmdFormClearTitle:
		return m.dispatch(form.ClearTitle())

	case keymap.CmdFormClearDescription:
		return m.dispatch(form.ClearDescription())

	case keymap.CmdFormReset:
		return m.dispatch(form.Reset())
	}

	return m, nil
}

func (m Model) gotoPage(page int) (tea.Model, tea.Cmd) {
	page = m.Pager.Goto(page, len(m.Records))
	if page != m.Page {
		m.Page = page
		m.Cursor = 0
	}
	return m, nil
}

// undo restores the nth notification (0 = newest). The entry leaves the
// buffer before the restore call starts.
func (m Model) undo(n int) (tea.Model, tea.Cmd) {
	if m.Loading(models.OpRestore) || m.Loading(models.OpRemove) {
		return m, nil
	}
	entry, ok := m.Undo.At(n)
	if !ok {
		return m, nil
	}
	entry, _ = m.Undo.Take(entry.Record.ID)
	m.begin(models.OpRestore)
	return m, m.restoreRecord(entry)
}

// dispatch sends a reducer action to the open form
func (m Model) dispatch(a form.Action) (tea.Model, tea.Cmd) {
	if !m.formActive() {
		return m, nil
	}
	m.FormState.Dispatch(a)
	return m, m.FormState.Form.Init()
}

// submitForm validates the draft and starts the create or update
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if !m.formActive() {
		return m, nil
	}
	op := m.formOp()
	if m.Loading(op) {
		m.FormState.Revive()
		return m, nil
	}

	d := m.FormState.Draft()
	if !form.Valid(d) {
		m.FormState.Revive()
		statusCmd := m.setStatus("Form invalid", true)
		return m, statusCmd
	}

	m.begin(op)
	if op == models.OpUpdate {
		return m, m.updateRecord(m.FormState.State.ID, d)
	}
	return m, m.createRecord(d)
}
