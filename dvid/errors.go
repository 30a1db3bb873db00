package dvid

import (
	"errors"
	"fmt"
)

// Error kinds that callers distinguish with errors.Is.  Every fatal condition
// in a downsample invocation wraps exactly one of these.
var (
	// ErrUnsupportedType is returned for component types, pixel topologies or
	// label/non-label combinations that have no kernel.
	ErrUnsupportedType = errors.New("unsupported pixel or component type")

	// ErrDimensionality is returned for images that are not 2d or 3d.
	ErrDimensionality = errors.New("unsupported image dimensionality")

	// ErrIO covers unreadable input, unwritable output and storage failures.
	ErrIO = errors.New("image i/o failure")

	// ErrInvalidGeometry is returned for inconsistent size, spacing, origin or
	// direction, and for regions outside an image.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrBadArgument is returned for invocation parameters that fail validation.
	ErrBadArgument = errors.New("bad argument")
)

type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

func newKindError(kind error, format string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// UnsupportedTypeError returns an error of kind ErrUnsupportedType.
func UnsupportedTypeError(format string, args ...interface{}) error {
	return newKindError(ErrUnsupportedType, format, args...)
}

// DimensionalityError returns an error of kind ErrDimensionality.
func DimensionalityError(dims int) error {
	return newKindError(ErrDimensionality, "dimension %d not implemented, only 2d and 3d images are supported", dims)
}

// IOError wraps err as kind ErrIO, keeping err in the chain.
func IOError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: ErrIO, msg: fmt.Sprintf(format, args...), cause: err}
}

// GeometryError returns an error of kind ErrInvalidGeometry.
func GeometryError(format string, args ...interface{}) error {
	return newKindError(ErrInvalidGeometry, format, args...)
}

// ArgumentError returns an error of kind ErrBadArgument.
func ArgumentError(format string, args ...interface{}) error {
	return newKindError(ErrBadArgument, format, args...)
}
