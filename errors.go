package activerecord

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAttribute field is not a column of the record's table
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnknownAssociation association was never declared, or declared after Finalize
	ErrUnknownAssociation = errors.New("unknown association")
	// ErrUnsupportedRelation association kind can't be used that way
	ErrUnsupportedRelation = errors.New("unsupported relations")
	// ErrModelNotFound no model registered under the name
	ErrModelNotFound = errors.New("model not found")
	// ErrMissingPrimaryKey record has no id to update
	ErrMissingPrimaryKey = errors.New("primary key required")
	// ErrNotFinalized accessors used before Finalize
	ErrNotFinalized = errors.New("model not finalized")
	// ErrInvalidDialector dialector is nil
	ErrInvalidDialector = errors.New("invalid dialector")
	// ErrInvalidValue value can't be converted to the requested type
	ErrInvalidValue = errors.New("invalid value")
)

// UnknownAttributeError names the field that is not a column of the table
type UnknownAttributeError struct {
	Model  string
	Column string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute: '%s'", e.Column)
}

func (e *UnknownAttributeError) Is(target error) bool {
	return target == ErrUnknownAttribute
}
