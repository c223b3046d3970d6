package wire

import (
	"strings"

	"github.com/gabuzi/cottontaildb/cterr"
)

// Status is one of the small set of wire-level status codes spec.md §6
// maps query failures onto. No stack trace or internal detail crosses this
// boundary — StatusFor's Message is the only thing that does.
type Status string

const (
	StatusOK                 Status = "ok"
	StatusInvalidArgument    Status = "invalid-argument"
	StatusNotFound           Status = "not-found"
	StatusFailedPrecondition Status = "failed-precondition"
	StatusInternal           Status = "internal"
	StatusDeadlineExceeded   Status = "deadline-exceeded"
	StatusUnknown            Status = "unknown"
)

// StatusFor maps err's ErrorKind to a wire status code, following spec.md
// §6's table. A *cterr.BindError whose Reason names a missing reference
// maps to not-found; any other bind failure (e.g. a projection on a
// non-numeric column) maps to invalid-argument, since both are request
// problems spec.md's table groups under "syntax or bind".
func StatusFor(err error) (Status, string) {
	if err == nil {
		return StatusOK, ""
	}

	kinded, ok := err.(cterr.KindedError)
	if !ok {
		return StatusUnknown, err.Error()
	}

	switch kinded.Kind() {
	case cterr.SyntaxErrorKind:
		return StatusInvalidArgument, err.Error()
	case cterr.BindErrorKind:
		if be, ok := err.(*cterr.BindError); ok && looksMissing(be.Reason) {
			return StatusNotFound, err.Error()
		}
		return StatusInvalidArgument, err.Error()
	case cterr.TypeErrorKind, cterr.SizeErrorKind:
		return StatusFailedPrecondition, err.Error()
	case cterr.ExecutionErrorKind, cterr.IoErrorKind, cterr.BoundsErrorKind:
		return StatusInternal, err.Error()
	case cterr.CancelledErrorKind:
		return StatusDeadlineExceeded, err.Error()
	default:
		return StatusUnknown, err.Error()
	}
}

func looksMissing(reason string) bool {
	r := strings.ToLower(reason)
	return strings.Contains(r, "unknown") || strings.Contains(r, "not found") || strings.Contains(r, "no such")
}
