package errors

import (
	"errors"
	"fmt"
)

// OpenError reports an include target that could not be resolved, fetched,
// or initialized as an XML document. Location is the reference as written
// when resolution failed, or the resolved system ID when fetching or
// initialization failed.
//
//nolint:errname // public API name follows the failure it describes.
type OpenError struct {
	Location string
	Err      error
}

// Error formats the failure with its location context.
func (e *OpenError) Error() string {
	if e == nil {
		return "include open <nil>"
	}
	return fmt.Sprintf("include %s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying failure.
func (e *OpenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MissingHrefError reports an include directive without the required href
// attribute. Location names the document containing the directive and
// Offset the position just past its start tag.
type MissingHrefError struct {
	Location string
	Offset   int64
}

// Error formats the failure with its location context.
func (e *MissingHrefError) Error() string {
	if e == nil {
		return "missing href <nil>"
	}
	return fmt.Sprintf("include in %s at offset %d: missing href attribute", e.Location, e.Offset)
}

// UnsupportedParseError reports an include directive requesting a parse
// mode other than "xml".
type UnsupportedParseError struct {
	Location string
	Parse    string
	Offset   int64
}

// Error formats the failure with its location context.
func (e *UnsupportedParseError) Error() string {
	if e == nil {
		return "unsupported parse <nil>"
	}
	return fmt.Sprintf("include in %s at offset %d: unsupported parse mode %q", e.Location, e.Offset, e.Parse)
}

// AsOpen extracts an OpenError from err.
func AsOpen(err error) (*OpenError, bool) {
	var target *OpenError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsMissingHref extracts a MissingHrefError from err.
func AsMissingHref(err error) (*MissingHrefError, bool) {
	var target *MissingHrefError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsUnsupportedParse extracts an UnsupportedParseError from err.
func AsUnsupportedParse(err error) (*UnsupportedParseError, bool) {
	var target *UnsupportedParseError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
