package models

import (
	"errors"
	"testing"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name      string
		draft     Draft
		wantTitle bool
		wantDesc  bool
	}{
		{"both set", Draft{Title: "Hello", Description: "world"}, false, false},
		{"empty title", Draft{Title: "", Description: "world"}, true, false},
		{"empty description", Draft{Title: "Hello", Description: ""}, false, true},
		{"both empty", Draft{}, true, true},
		{"whitespace title", Draft{Title: "   ", Description: "x"}, true, false},
		{"whitespace description", Draft{Title: "x", Description: "\t\n"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if got := errors.Is(err, ErrTitleRequired); got != tt.wantTitle {
				t.Errorf("errors.Is(err, ErrTitleRequired) = %v, want %v (err=%v)", got, tt.wantTitle, err)
			}
			if got := errors.Is(err, ErrDescriptionRequired); got != tt.wantDesc {
				t.Errorf("errors.Is(err, ErrDescriptionRequired) = %v, want %v (err=%v)", got, tt.wantDesc, err)
			}
			if !tt.wantTitle && !tt.wantDesc && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestRecordDraftRoundTrip(t *testing.T) {
	r := Record{ID: "abc", Title: "Hello world", Description: "world hello"}
	d := r.Draft()
	if d.Title != r.Title || d.Description != r.Description {
		t.Fatalf("Draft() = %+v, want fields of %+v", d, r)
	}
	if got := d.Apply("abc"); got != r {
		t.Errorf("Apply() = %+v, want %+v", got, r)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpList, "list"},
		{OpGet, "get"},
		{OpCreate, "create"},
		{OpUpdate, "update"},
		{OpRemove, "remove"},
		{OpRestore, "restore"},
		{Op(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOpIsMutation(t *testing.T) {
	for _, op := range AllOps {
		want := op != OpList && op != OpGet
		if got := op.IsMutation(); got != want {
			t.Errorf("%s.IsMutation() = %v, want %v", op, got, want)
		}
	}
}
