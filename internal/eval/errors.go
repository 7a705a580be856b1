package eval

import "fmt"

// ErrorKind partitions evaluation failures. Each kind has exactly one
// production site category; tryEval catches only the evaluation family.
type ErrorKind string

const (
	TypeErrorKind   ErrorKind = "TypeError"
	RangeErrorKind  ErrorKind = "RangeError"
	ScopeErrorKind  ErrorKind = "ScopeError"
	EvalErrorKind   ErrorKind = "NixEvalError"
	AbortErrorKind  ErrorKind = "NixAbortError"
	AttrMissingKind ErrorKind = "AttrMissingError"
)

// Error is both a runtime Value (so builtins and operators can return it
// through Value-typed plumbing) and a Go error (so the import engine can
// hand it across the loader boundary).
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   *Error
}

func (e *Error) Type() ValueType { return ERROR_OBJ }
func (e *Error) NixType() string { return "error" }
func (e *Error) Inspect() string { return string(e.Kind) + ": " + e.Message }

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Inspect() + ": " + e.Cause.Error()
	}
	return e.Inspect()
}

func (e *Error) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

func newTypeError(format string, a ...interface{}) *Error {
	return &Error{Kind: TypeErrorKind, Message: fmt.Sprintf(format, a...)}
}

func newRangeError(format string, a ...interface{}) *Error {
	return &Error{Kind: RangeErrorKind, Message: fmt.Sprintf(format, a...)}
}

func newScopeError(format string, a ...interface{}) *Error {
	return &Error{Kind: ScopeErrorKind, Message: fmt.Sprintf(format, a...)}
}

func newEvalError(format string, a ...interface{}) *Error {
	return &Error{Kind: EvalErrorKind, Message: fmt.Sprintf(format, a...)}
}

func newAbortError(format string, a ...interface{}) *Error {
	return &Error{Kind: AbortErrorKind, Message: fmt.Sprintf(format, a...)}
}

func newAttrMissing(format string, a ...interface{}) *Error {
	return &Error{Kind: AttrMissingKind, Message: fmt.Sprintf(format, a...)}
}

// NewEvalError exposes the evaluation-error constructor to the import
// engine and facade packages.
func NewEvalError(format string, a ...interface{}) *Error {
	return newEvalError(format, a...)
}

// WrapEvalError wraps any failure as an evaluation error, preserving an
// existing *Error as the cause and its message in ours.
func WrapEvalError(context string, err error) *Error {
	if ev, ok := err.(*Error); ok {
		return &Error{Kind: EvalErrorKind, Message: context + ": " + ev.Error(), Cause: ev}
	}
	return &Error{Kind: EvalErrorKind, Message: context + ": " + err.Error()}
}

func isError(obj Value) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// IsError reports whether v is an error value.
func IsError(v Value) bool { return isError(v) }

// AsError returns v as *Error when it is one.
func AsError(v Value) (*Error, bool) {
	e, ok := v.(*Error)
	return e, ok
}

// isEvalFailure reports whether e belongs to the family tryEval converts
// to { success = false; }. Abort is deliberately non-catchable.
func isEvalFailure(e *Error) bool {
	return e.Kind == EvalErrorKind || e.Kind == AttrMissingKind
}
