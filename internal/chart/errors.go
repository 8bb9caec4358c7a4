package chart

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset indicates the dataset has zero rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// ErrUnsupportedKind indicates the requested chart kind is not supported.
var ErrUnsupportedKind = errors.New("unsupported chart kind")

// UnknownColumnError indicates a selection referenced a column that is not
// part of the dataset schema.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// UnsupportedColorScaleError indicates the requested color scale is not a
// member of the supported set.
type UnsupportedColorScaleError struct {
	Scale string
}

func (e *UnsupportedColorScaleError) Error() string {
	return fmt.Sprintf("unsupported color scale %q", e.Scale)
}

// InvalidTemporalColumnError indicates a Gantt start or end column holds a
// value that cannot be parsed as a date or timestamp.
type InvalidTemporalColumnError struct {
	Column string
	Value  string
}

func (e *InvalidTemporalColumnError) Error() string {
	return fmt.Sprintf("column %q is not temporal: cannot parse %q", e.Column, e.Value)
}

// MissingSelectionError indicates a required column role was left unselected.
type MissingSelectionError struct {
	Role string
}

func (e *MissingSelectionError) Error() string {
	return fmt.Sprintf("no column selected for role %q", e.Role)
}

// CollaboratorError wraps a failure raised by an external collaborator
// (dataset loader, suggestion service or chart renderer) so the presentation
// layer can report the failing component.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// NewCollaboratorError wraps err with the name of the failing collaborator.
func NewCollaboratorError(collaborator string, err error) *CollaboratorError {
	return &CollaboratorError{Collaborator: collaborator, Err: err}
}
