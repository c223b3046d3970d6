// Package cterr is Cottontail's error-kind taxonomy: a closed set of struct
// errors, each tagged with an ErrorKind the wire layer maps to a status
// code. It has no dependency on the rest of the module so every layer
// (page, plan, exec, the root package) can return these errors without
// risking an import cycle.
package cterr

import (
	"errors"
	"fmt"
)

// ErrorKind tags the category of failure a Cottontail operation reports,
// matching the taxonomy the wire protocol maps to status codes.
type ErrorKind uint8

const (
	UnknownErrorKind ErrorKind = iota
	BindErrorKind
	SyntaxErrorKind
	TypeErrorKind
	SizeErrorKind
	BoundsErrorKind
	IoErrorKind
	ExecutionErrorKind
	CancelledErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case BindErrorKind:
		return "BindError"
	case SyntaxErrorKind:
		return "SyntaxError"
	case TypeErrorKind:
		return "TypeError"
	case SizeErrorKind:
		return "SizeError"
	case BoundsErrorKind:
		return "BoundsError"
	case IoErrorKind:
		return "IoError"
	case ExecutionErrorKind:
		return "ExecutionError"
	case CancelledErrorKind:
		return "CancelledError"
	default:
		return "UnknownError"
	}
}

// KindedError is satisfied by every error this package returns that carries
// an ErrorKind, letting callers (in particular the wire layer's status-code
// mapping) dispatch on Kind() without a long type switch.
type KindedError interface {
	error
	Kind() ErrorKind
}

// BindError reports that a query could not be bound against the catalogue:
// an unknown schema/entity/column reference, or a predicate that refers to
// a column the entity doesn't have.
type BindError struct {
	Reference string
	Reason    string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind error: %s: %s", e.Reference, e.Reason)
}
func (e *BindError) Kind() ErrorKind { return BindErrorKind }

// IsBindError reports whether err is (or wraps) a *BindError.
func IsBindError(err error) bool { _, ok := as[*BindError](err); return ok }

// SyntaxError reports a malformed incoming query message.
type SyntaxError struct {
	Detail string
}

func (e *SyntaxError) Error() string  { return fmt.Sprintf("syntax error: %s", e.Detail) }
func (e *SyntaxError) Kind() ErrorKind { return SyntaxErrorKind }

// IsSyntaxError reports whether err is (or wraps) a *SyntaxError.
func IsSyntaxError(err error) bool { _, ok := as[*SyntaxError](err); return ok }

// TypeError reports that a value's Kind didn't match what an operation
// required (e.g. a kNN predicate against a non-vector column).
type TypeError struct {
	Column   string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: column %s: expected %s, got %s", e.Column, e.Expected, e.Actual)
}
func (e *TypeError) Kind() ErrorKind { return TypeErrorKind }

// IsTypeError reports whether err is (or wraps) a *TypeError.
func IsTypeError(err error) bool { _, ok := as[*TypeError](err); return ok }

// SizeError reports a vector whose logical size doesn't match its column's
// declared logical size.
type SizeError struct {
	Column   string
	Expected int
	Actual   int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("size error: column %s: expected size %d, got %d", e.Column, e.Expected, e.Actual)
}
func (e *SizeError) Kind() ErrorKind { return SizeErrorKind }

// IsSizeError reports whether err is (or wraps) a *SizeError.
func IsSizeError(err error) bool { _, ok := as[*SizeError](err); return ok }

// BoundsErrorVariant distinguishes the two kinds of out-of-range Page
// access: Overflow for an access whose byte range runs past the end of the
// page, OutOfRange for a negative offset or width.
type BoundsErrorVariant uint8

const (
	Overflow BoundsErrorVariant = iota
	OutOfRange
)

func (v BoundsErrorVariant) String() string {
	if v == Overflow {
		return "overflow"
	}
	return "out-of-range"
}

// BoundsError reports a Page or column access outside its valid bounds.
type BoundsError struct {
	Variant BoundsErrorVariant
	Offset  int
	Limit   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("bounds error: %s: offset %d, limit %d", e.Variant, e.Offset, e.Limit)
}
func (e *BoundsError) Kind() ErrorKind { return BoundsErrorKind }

// IsBoundsError reports whether err is (or wraps) a *BoundsError, of either
// Variant.
func IsBoundsError(err error) bool { _, ok := as[*BoundsError](err); return ok }

// IoError reports a failure reading or writing the backing page store.
type IoError struct {
	Op  string
	Err error
}

func (e *IoError) Error() string  { return fmt.Sprintf("io error: %s: %v", e.Op, e.Err) }
func (e *IoError) Kind() ErrorKind { return IoErrorKind }
func (e *IoError) Unwrap() error  { return e.Err }

// IsIoError reports whether err is (or wraps) an *IoError.
func IsIoError(err error) bool { _, ok := as[*IoError](err); return ok }

// ExecutionError reports a failure while running an execution stage (a
// kernel evaluation error, a predicate evaluation error).
type ExecutionError struct {
	Stage string
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("execution error: stage %s: %v", e.Stage, e.Err)
}
func (e *ExecutionError) Kind() ErrorKind { return ExecutionErrorKind }
func (e *ExecutionError) Unwrap() error  { return e.Err }

// IsExecutionError reports whether err is (or wraps) an *ExecutionError.
func IsExecutionError(err error) bool { _, ok := as[*ExecutionError](err); return ok }

// CancelledError reports that a query was cancelled (by context
// cancellation or an explicit cancel call) before it completed.
type CancelledError struct {
	QueryID string
}

func (e *CancelledError) Error() string  { return fmt.Sprintf("cancelled: query %s", e.QueryID) }
func (e *CancelledError) Kind() ErrorKind { return CancelledErrorKind }

// IsCancelledError reports whether err is (or wraps) a *CancelledError.
func IsCancelledError(err error) bool { _, ok := as[*CancelledError](err); return ok }

// as is errors.As without requiring every caller to declare a local
// variable, used by the Is* helpers above.
func as[T error](err error) (T, bool) {
	var target T
	if errors.As(err, &target) {
		return target, true
	}
	return target, false
}
