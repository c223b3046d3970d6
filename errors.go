package cottontail

import "github.com/gabuzi/cottontaildb/cterr"

// The error taxonomy lives in package cterr so lower layers (page, plan,
// exec) can return it without importing the root package. These aliases
// let callers of this package keep writing cottontail.BindError,
// cottontail.IsBindError, and so on.

type ErrorKind = cterr.ErrorKind

const (
	UnknownErrorKind   = cterr.UnknownErrorKind
	BindErrorKind      = cterr.BindErrorKind
	SyntaxErrorKind    = cterr.SyntaxErrorKind
	TypeErrorKind      = cterr.TypeErrorKind
	SizeErrorKind      = cterr.SizeErrorKind
	BoundsErrorKind    = cterr.BoundsErrorKind
	IoErrorKind        = cterr.IoErrorKind
	ExecutionErrorKind = cterr.ExecutionErrorKind
	CancelledErrorKind = cterr.CancelledErrorKind
)

type KindedError = cterr.KindedError

type BindError = cterr.BindError
type SyntaxError = cterr.SyntaxError
type TypeError = cterr.TypeError
type SizeError = cterr.SizeError
type BoundsError = cterr.BoundsError
type IoError = cterr.IoError
type ExecutionError = cterr.ExecutionError
type CancelledError = cterr.CancelledError

type BoundsErrorVariant = cterr.BoundsErrorVariant

const (
	Overflow   = cterr.Overflow
	OutOfRange = cterr.OutOfRange
)

var (
	IsBindError      = cterr.IsBindError
	IsSyntaxError    = cterr.IsSyntaxError
	IsTypeError      = cterr.IsTypeError
	IsSizeError      = cterr.IsSizeError
	IsBoundsError    = cterr.IsBoundsError
	IsIoError        = cterr.IsIoError
	IsExecutionError = cterr.IsExecutionError
	IsCancelledError = cterr.IsCancelledError
)
