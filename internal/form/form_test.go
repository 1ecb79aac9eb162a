package form

import (
	"testing"

	"github.com/sbpo/datapoints/internal/models"
)

func TestReduce(t *testing.T) {
	start := models.Draft{Title: "title", Description: "desc"}
	tests := []struct {
		name   string
		action Action
		want   models.Draft
	}{
		{"update title", UpdateTitle("new"), models.Draft{Title: "new", Description: "desc"}},
		{"update description", UpdateDescription("new"), models.Draft{Title: "title", Description: "new"}},
		{"clear title", ClearTitle(), models.Draft{Description: "desc"}},
		{"clear description", ClearDescription(), models.Draft{Title: "title"}},
		{"reset", Reset(), models.Draft{}},
		{"unknown", Action{Type: "bogus", Payload: "x"}, start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reduce(start, tt.action); got != tt.want {
				t.Errorf("Reduce(%v) = %+v, want %+v", tt.action.Type, got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		draft models.Draft
		want  bool
	}{
		{models.Draft{Title: "a", Description: "b"}, true},
		{models.Draft{Title: "a"}, false},
		{models.Draft{Description: "b"}, false},
		{models.Draft{Title: " ", Description: "b"}, false},
		{models.Draft{}, false},
	}
	for _, tt := range tests {
		if got := Valid(tt.draft); got != tt.want {
			t.Errorf("Valid(%+v) = %v, want %v", tt.draft, got, tt.want)
		}
	}
}

func TestCommitted(t *testing.T) {
	create := NewCreate().Dispatch(UpdateTitle("t")).Dispatch(UpdateDescription("d"))
	next, open := create.Committed()
	if !open {
		t.Error("create form should stay open after commit")
	}
	if next.Draft != (models.Draft{}) {
		t.Errorf("create form draft = %+v, want empty", next.Draft)
	}

	edit := NewEdit(models.Record{ID: "1", Title: "t", Description: "d"})
	if edit.ID != "1" || edit.Draft.Title != "t" {
		t.Errorf("NewEdit() = %+v", edit)
	}
	next, open = edit.Committed()
	if open {
		t.Error("edit form should close after commit")
	}
	if next.Draft.Title != "t" {
		t.Errorf("edit draft changed: %+v", next.Draft)
	}
}

func TestModeLabels(t *testing.T) {
	if got := ModeCreate.SubmitLabel(); got != "Add item" {
		t.Errorf("ModeCreate.SubmitLabel() = %q", got)
	}
	if got := ModeEdit.SubmitLabel(); got != "Update item" {
		t.Errorf("ModeEdit.SubmitLabel() = %q", got)
	}
	if ModeEdit.String() != "edit" || ModeCreate.String() != "create" {
		t.Error("unexpected mode names")
	}
}
