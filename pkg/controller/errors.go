package controller

import "errors"

// Error taxonomy mirroring the DirectInput result categories the wrapper
// layer translates these into.
var (
	// ErrInvalidParameter indicates a malformed request: bad structure
	// sizes, out-of-range packet sizes, conflicting or overlapping data
	// format entries, or out-of-bounds calibration values.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrObjectNotFound indicates a request targeted an instance or offset
	// that does not resolve under the current configuration.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnsupported indicates a recognized but unimplemented property, or
	// a property targeted at an element kind that does not carry it.
	ErrUnsupported = errors.New("unsupported")

	// ErrNoEffect indicates a property write that is valid but changes
	// nothing, such as re-asserting the only supported axis mode.
	ErrNoEffect = errors.New("property already in effect")

	// ErrInternal indicates an inconsistency in a layout table. It signals
	// a programming defect, not a runtime condition to recover from.
	ErrInternal = errors.New("internal layout inconsistency")
)
