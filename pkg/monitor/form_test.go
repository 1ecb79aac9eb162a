package monitor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sbpo/datapoints/internal/form"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/store"
)

var (
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestNewFormState(t *testing.T) {
	fs := NewFormState()
	if fs.Mode() != form.ModeCreate {
		t.Errorf("mode = %v, want create", fs.Mode())
	}
	if fs.Form == nil {
		t.Fatal("form not built")
	}
	if fs.Draft() != (models.Draft{}) {
		t.Errorf("draft = %+v, want empty", fs.Draft())
	}
}

func TestNewFormStateForEdit(t *testing.T) {
	r := models.Record{ID: "a", Title: "Hello", Description: "World"}
	fs := NewFormStateForEdit(r)
	if fs.Mode() != form.ModeEdit || fs.State.ID != "a" {
		t.Errorf("mode=%v id=%q", fs.Mode(), fs.State.ID)
	}
	if fs.Title != "Hello" || fs.Description != "World" {
		t.Errorf("bound values = %q/%q", fs.Title, fs.Description)
	}
}

func TestFormStateDispatch(t *testing.T) {
	fs := NewFormStateForEdit(models.Record{ID: "a", Title: "Hello", Description: "World"})
	old := fs.Form

	fs.Dispatch(form.ClearTitle())
	if fs.Title != "" || fs.Description != "World" {
		t.Errorf("after clear title: %q/%q", fs.Title, fs.Description)
	}
	if fs.Form == old {
		t.Error("dispatch should rebuild the form")
	}

	fs.Title = "typed"
	fs.Dispatch(form.ClearDescription())
	if fs.Title != "typed" || fs.Description != "" {
		t.Errorf("dispatch lost typed input: %q/%q", fs.Title, fs.Description)
	}
	if fs.State.Draft.Title != "typed" {
		t.Errorf("reducer state title = %q, want typed", fs.State.Draft.Title)
	}

	fs.Dispatch(form.Reset())
	if fs.Draft() != (models.Draft{}) {
		t.Errorf("reset = %+v", fs.Draft())
	}
}

func TestFormStateCommitted(t *testing.T) {
	create := NewFormState()
	create.Title, create.Description = "t", "d"
	if !create.Committed() {
		t.Error("create form should stay open")
	}
	if create.Draft() != (models.Draft{}) {
		t.Errorf("create form not reset: %+v", create.Draft())
	}

	edit := NewFormStateForEdit(models.Record{ID: "a", Title: "t", Description: "d"})
	if edit.Committed() {
		t.Error("edit form should close")
	}
}

func TestCreateFlow(t *testing.T) {
	m := newTestModel(t, records(2))

	m, cmd := press(t, m, runeKey("n"))
	if !m.FormOpen || m.CurrentContextString() != "form" {
		t.Fatalf("form open=%v context=%s", m.FormOpen, m.CurrentContextString())
	}
	if cmd == nil {
		t.Error("opening the form should init it")
	}
	if !strings.Contains(m.View(), "Add item") {
		t.Error("create form should show its submit label")
	}

	m.FormState.Title = "New title"
	m.FormState.Description = "New description"

	m, cmd = press(t, m, ctrlS)
	if !m.Loading(models.OpCreate) {
		t.Fatal("create should be pending")
	}
	_, again := press(t, m, ctrlS)
	if again != nil {
		t.Error("second submit while pending should be ignored")
	}

	m = settle(t, m, cmd)
	if m.StatusMessage != "Added item" {
		t.Errorf("status = %q", m.StatusMessage)
	}
	if !m.FormOpen {
		t.Error("create form should stay open")
	}
	if m.FormState.Draft() != (models.Draft{}) {
		t.Errorf("form not reset: %+v", m.FormState.Draft())
	}
	if len(m.Records) != 3 || m.Records[2].Title != "New title" {
		t.Errorf("records = %+v", m.Records)
	}
}

func TestSubmitInvalidForm(t *testing.T) {
	m := newTestModel(t, records(2))
	m, _ = press(t, m, runeKey("n"))
	m.FormState.Title = "   "
	m.FormState.Description = "only description"

	m, _ = press(t, m, ctrlS)
	if m.StatusMessage != "Form invalid" || !m.StatusIsError {
		t.Errorf("status = %q", m.StatusMessage)
	}
	if m.Busy() {
		t.Error("invalid submit should not call the API")
	}
	if !m.FormOpen {
		t.Error("form should stay open")
	}
}

func TestEditFlow(t *testing.T) {
	m := newTestModel(t, records(3))
	m, _ = press(t, m, runeKey("j"))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Loading(models.OpGet) {
		t.Fatal("edit should load the record first")
	}
	if !strings.Contains(m.View(), "Loading record") {
		t.Error("view should show the loading overlay")
	}
	m = update(t, m, cmd())
	if !m.FormOpen || m.FormState.Mode() != form.ModeEdit {
		t.Fatal("edit form should be open")
	}
	if m.FormState.Title != "Title 1" {
		t.Errorf("title = %q", m.FormState.Title)
	}

	m.FormState.Title = "Changed"
	m, cmd = press(t, m, ctrlS)
	m = settle(t, m, cmd)

	if m.FormOpen {
		t.Error("edit form should close after update")
	}
	if m.StatusMessage != "Updated item" {
		t.Errorf("status = %q", m.StatusMessage)
	}
	if m.Records[1].ID != "r1" || m.Records[1].Title != "Changed" {
		t.Errorf("record 1 = %+v", m.Records[1])
	}
}

func TestEditMissingRecord(t *testing.T) {
	m := newTestModel(t, records(1))
	m.begin(models.OpGet)
	m = update(t, m, RecordLoadedMsg{ID: "gone", Err: store.ErrNotFound})
	if m.FormOpen {
		t.Error("form should not open")
	}
	if m.StatusMessage != "Error finding data" {
		t.Errorf("status = %q", m.StatusMessage)
	}
}

func TestFormReducerKeys(t *testing.T) {
	m := newTestModel(t, records(1))
	m = update(t, m, RecordLoadedMsg{ID: "r0", Record: m.Records[0]})

	tests := []struct {
		key       tea.KeyMsg
		wantTitle string
		wantDesc  string
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlT}, "", "Description 0"},
		{tea.KeyMsg{Type: tea.KeyCtrlD}, "", ""},
	}
	for _, tt := range tests {
		m, _ = press(t, m, tt.key)
		if m.FormState.Title != tt.wantTitle || m.FormState.Description != tt.wantDesc {
			t.Errorf("after %v: %q/%q", tt.key, m.FormState.Title, m.FormState.Description)
		}
	}

	m.FormState.Title = "a"
	m.FormState.Description = "b"
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.FormState.Draft() != (models.Draft{}) {
		t.Errorf("reset = %+v", m.FormState.Draft())
	}
	if !m.FormOpen {
		t.Error("reducer keys should not close the form")
	}
}

func TestFormCancel(t *testing.T) {
	m := newTestModel(t, records(1))
	m, _ = press(t, m, runeKey("n"))

	// List keys are plain typing inside the form
	m, _ = press(t, m, runeKey("q"))
	if !m.FormOpen {
		t.Fatal("q should not close the form")
	}

	m, _ = press(t, m, esc)
	if m.FormOpen || m.FormState != nil {
		t.Error("esc should close the form")
	}
}

func TestSaveFailureKeepsForm(t *testing.T) {
	m := newTestModel(t, records(1))
	m, _ = press(t, m, runeKey("n"))
	m.FormState.Title, m.FormState.Description = "t", "d"
	m.begin(models.OpCreate)

	m = update(t, m, RecordSavedMsg{Op: models.OpCreate, Err: store.ErrExists})
	if !m.FormOpen || !m.StatusIsError {
		t.Errorf("open=%v status=%q", m.FormOpen, m.StatusMessage)
	}
	if m.FormState.Title != "t" {
		t.Error("failed save should keep the input")
	}
}
