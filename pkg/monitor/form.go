package monitor

import (
	"github.com/charmbracelet/huh"
	"github.com/sbpo/datapoints/internal/form"
	"github.com/sbpo/datapoints/internal/models"
)

// FormState holds the record form. The huh inputs write straight into
// Title and Description; reducer actions rewrite those fields and
// rebuild the form so the inputs pick up the new values.
type FormState struct {
	State form.State
	Form  *huh.Form
	Width int

	// Bound form values
	Title       string
	Description string
}

// NewFormState creates an empty form for a new record
func NewFormState() *FormState {
	fs := &FormState{State: form.NewCreate()}
	fs.buildForm()
	return fs
}

// NewFormStateForEdit creates a form populated with an existing record
func NewFormStateForEdit(r models.Record) *FormState {
	fs := &FormState{State: form.NewEdit(r)}
	fs.Title = fs.State.Draft.Title
	fs.Description = fs.State.Draft.Description
	fs.buildForm()
	return fs
}

// buildForm constructs the huh.Form from the current values
func (fs *FormState) buildForm() {
	heading := "New data point"
	if fs.State.Mode == form.ModeEdit {
		heading = "Edit data point"
	}

	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fs.Title).
				Placeholder("Title..."),
			huh.NewText().
				Title("Description").
				Value(&fs.Description).
				Placeholder("Description...").
				Lines(5),
		).Title(heading),
	)
	fs.Form.WithTheme(huh.ThemeDracula())
	fs.Form.WithShowHelp(false)
	if fs.Width > 0 {
		fs.Form.WithWidth(fs.Width)
	}
}

// SetWidth sets the form width for text wrapping
func (fs *FormState) SetWidth(w int) {
	fs.Width = w
	fs.Form.WithWidth(w)
}

// Draft returns the current field values
func (fs *FormState) Draft() models.Draft {
	return models.Draft{Title: fs.Title, Description: fs.Description}
}

// Mode returns whether the form creates or edits
func (fs *FormState) Mode() form.Mode {
	return fs.State.Mode
}

// sync feeds what was typed into the inputs through the reducer
func (fs *FormState) sync() {
	fs.State = fs.State.
		Dispatch(form.UpdateTitle(fs.Title)).
		Dispatch(form.UpdateDescription(fs.Description))
}

// Dispatch runs a reducer action against the current values
func (fs *FormState) Dispatch(a form.Action) {
	fs.sync()
	fs.State = fs.State.Dispatch(a)
	fs.Title = fs.State.Draft.Title
	fs.Description = fs.State.Draft.Description
	fs.buildForm()
}

// Committed updates the form after a successful submit and reports
// whether it stays open
func (fs *FormState) Committed() bool {
	fs.sync()
	next, open := fs.State.Committed()
	fs.State = next
	if open {
		fs.Title = next.Draft.Title
		fs.Description = next.Draft.Description
		fs.buildForm()
	}
	return open
}

// Revive rebuilds a form that huh considers finished so editing can continue
func (fs *FormState) Revive() {
	if fs.Form.State != huh.StateNormal {
		fs.buildForm()
	}
}
