// Package errors holds the kinds of error a MukuroL compilation can fail with.
// They are always delivered wrapped in a situated error that knows the
// offending line, use errors.As to get at them.
package errors

import (
	goerrors "errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindStructuralFormat
	KindDuplicateIdentifier
	KindResourceLimit
)

func (k Kind) String() string {
	switch k {
	case KindStructuralFormat:
		return "structural format"
	case KindDuplicateIdentifier:
		return "duplicate identifier"
	case KindResourceLimit:
		return "resource limit"
	}

	return "<unknown>"
}

// KindOf reports which kind of compilation error err wraps.
func KindOf(err error) Kind {
	var (
		structural *StructuralFormatError
		duplicate  *DuplicateIdentifierError
		limit      *ResourceLimitError
	)

	switch {
	case goerrors.As(err, &structural):
		return KindStructuralFormat
	case goerrors.As(err, &duplicate):
		return KindDuplicateIdentifier
	case goerrors.As(err, &limit):
		return KindResourceLimit
	}

	return KindUnknown
}

// StructuralFormatError is returned for attribute values that can't be
// translated into layout, like a malformed gpos token.
type StructuralFormatError struct {
	Attribute string
	Value     string
	Reason    string
}

func (e *StructuralFormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Attribute, e.Value, e.Reason)
}

type DuplicateIdentifierError struct {
	ID string

	// Reserved is set when the id was rejected because it collides with the
	// space of automatically generated ids.
	Reserved bool
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Reserved {
		return fmt.Sprintf("id %q is reserved for generated ids", e.ID)
	}
	return fmt.Sprintf("duplicate id %q found, ids must be unique across the wireframe", e.ID)
}

type ResourceLimitError struct {
	Limit string
	Max   int
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("input exceeds %s limit of %d", e.Limit, e.Max)
}
