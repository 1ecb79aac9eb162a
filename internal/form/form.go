// Package form holds the reducer behind the record form.
package form

import "github.com/sbpo/datapoints/internal/models"

// Mode says what a committed form does
type Mode int

const (
	// ModeCreate adds a new record; the form resets and stays open after commit
	ModeCreate Mode = iota
	// ModeEdit updates an existing record; the form closes after commit
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// SubmitLabel is the text on the form's submit button
func (m Mode) SubmitLabel() string {
	if m == ModeEdit {
		return "Update item"
	}
	return "Add item"
}

// ActionType names a form action
type ActionType string

const (
	ActionUpdateTitle       ActionType = "update_title"
	ActionUpdateDescription ActionType = "update_description"
	ActionClearTitle        ActionType = "clear_title"
	ActionClearDescription  ActionType = "clear_description"
	ActionReset             ActionType = "reset"
)

// Action is dispatched to Reduce. Payload is only read by the update actions.
type Action struct {
	Type    ActionType
	Payload string
}

func UpdateTitle(s string) Action       { return Action{Type: ActionUpdateTitle, Payload: s} }
func UpdateDescription(s string) Action { return Action{Type: ActionUpdateDescription, Payload: s} }
func ClearTitle() Action                { return Action{Type: ActionClearTitle} }
func ClearDescription() Action          { return Action{Type: ActionClearDescription} }
func Reset() Action                     { return Action{Type: ActionReset} }

// Reduce returns the draft after applying a. Unknown actions leave it as is.
func Reduce(d models.Draft, a Action) models.Draft {
	switch a.Type {
	case ActionUpdateTitle:
		d.Title = a.Payload
	case ActionUpdateDescription:
		d.Description = a.Payload
	case ActionClearTitle:
		d.Title = ""
	case ActionClearDescription:
		d.Description = ""
	case ActionReset:
		d = models.Draft{}
	}
	return d
}

// Valid reports whether d can be submitted
func Valid(d models.Draft) bool {
	return d.Validate() == nil
}

// State is a form in progress
type State struct {
	Mode  Mode
	ID    string // record being edited; empty in create mode
	Draft models.Draft
}

// NewCreate returns an empty create form
func NewCreate() State {
	return State{Mode: ModeCreate}
}

// NewEdit returns an edit form prefilled from r
func NewEdit(r models.Record) State {
	return State{Mode: ModeEdit, ID: r.ID, Draft: r.Draft()}
}

// Dispatch applies a to the form's draft
func (s State) Dispatch(a Action) State {
	s.Draft = Reduce(s.Draft, a)
	return s
}

// Committed returns the form after a successful submit and whether it
// should stay open
func (s State) Committed() (State, bool) {
	if s.Mode == ModeCreate {
		return s.Dispatch(Reset()), true
	}
	return s, false
}
