package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrDescriptionRequired = errors.New("description is required")
)

// Record is a single data point
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Draft holds the editable fields of a record (everything except the ID)
type Draft struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Draft returns the editable fields of the record
func (r Record) Draft() Draft {
	return Draft{Title: r.Title, Description: r.Description}
}

// Apply returns a record with the draft's fields and the given ID
func (d Draft) Apply(id string) Record {
	return Record{ID: id, Title: d.Title, Description: d.Description}
}

// Validate checks that both fields are non-empty.
// Both failures are reported when both fields are blank.
func (d Draft) Validate() error {
	var errs []error
	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, ErrTitleRequired)
	}
	if strings.TrimSpace(d.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	return errors.Join(errs...)
}

// DeletedRecord is a removed record together with the absolute index it
// occupied, so it can be put back where it was
type DeletedRecord struct {
	Record    Record    `json:"record"`
	Index     int       `json:"index"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Op identifies an API operation
type Op int

const (
	OpList Op = iota
	OpGet
	OpCreate
	OpUpdate
	OpRemove
	OpRestore
)

// AllOps lists every operation in declaration order
var AllOps = []Op{OpList, OpGet, OpCreate, OpUpdate, OpRemove, OpRestore}

// String returns the operation name
func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpGet:
		return "get"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	case OpRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// IsMutation reports whether the operation changes the record list
func (o Op) IsMutation() bool {
	switch o {
	case OpCreate, OpUpdate, OpRemove, OpRestore:
		return true
	}
	return false
}
