package statetree

import (
	"errors"
	"fmt"
)

var (
	// ErrReservedField is returned when a client payload sets a store-managed field.
	ErrReservedField = errors.New("statetree: reserved field in payload")

	// ErrLeafSkipped marks a leaf that could not be placed in the tree.
	ErrLeafSkipped = errors.New("statetree: leaf skipped")

	errEmptySegment = errors.New("empty path segment")
	errObjectValue  = errors.New("leaf value is an object")
)

// ReservedFields lists the leaf fields the store maintains.
var ReservedFields = []string{"value", "hasConflict", "lastModified"}

// ReservedFieldError reports the first reserved property found in a payload.
type ReservedFieldError struct {
	// Path is the slash-joined location of the property.
	Path  string
	Field string
}

func (e *ReservedFieldError) Error() string {
	return fmt.Sprintf("%s: %q at %q; insert plain pairs such as {\"color\":\"blue\"}, "+
		"value, hasConflict and lastModified are maintained by the system", ErrReservedField, e.Field, e.Path)
}

func (e *ReservedFieldError) Unwrap() error {
	return ErrReservedField
}

// PartialTreeBuildFailure describes one leaf left out of a tree.
type PartialTreeBuildFailure struct {
	Path string
	Err  error
}

func (f *PartialTreeBuildFailure) Error() string {
	return fmt.Sprintf("%s: %q: %v", ErrLeafSkipped, f.Path, f.Err)
}

func (f *PartialTreeBuildFailure) Unwrap() []error {
	return []error{ErrLeafSkipped, f.Err}
}
