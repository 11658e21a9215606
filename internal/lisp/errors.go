package lisp

import "fmt"

// ErrorKind classifies a LangError: generic failure, parse/runtime errors,
// arity and type mismatches, lookup failures, a requested exit, and failed
// assertions.
type ErrorKind int

const (
	ErrGeneric ErrorKind = iota
	ErrEndOfInput
	ErrSyntax
	ErrFileIO
	ErrTooManyArgs
	ErrTooFewArgs
	ErrWrongType
	ErrNotCallable
	ErrNotEvaluable
	ErrNotFound
	ErrExitRequest
	ErrAssertionFailed
	ErrBadValue
)

func (k ErrorKind) String() string {
	switch k {
	case ErrGeneric:
		return "generic"
	case ErrEndOfInput:
		return "end-of-input"
	case ErrSyntax:
		return "syntax"
	case ErrFileIO:
		return "file-i/o"
	case ErrTooManyArgs:
		return "too-many-args"
	case ErrTooFewArgs:
		return "too-few-args"
	case ErrWrongType:
		return "wrong-type"
	case ErrNotCallable:
		return "not-callable"
	case ErrNotEvaluable:
		return "not-evaluable"
	case ErrNotFound:
		return "not-found"
	case ErrExitRequest:
		return "exit-request"
	case ErrAssertionFailed:
		return "assertion-failed"
	case ErrBadValue:
		return "bad-value"
	default:
		return "unknown"
	}
}

// LangError is the structured detail mirrored onto the context's error
// channel every time an operation fails. It is also the payload
// returned as the Go `error` from Eval/Call/NativeFunc, so callers that only
// want the idiomatic Go path never have to touch the context directly.
type LangError struct {
	Message string
	Kind    ErrorKind
	Line    int
	Stack   []Frame
}

// Error implements the error interface, formatted as "at line N: Error
// KIND: MESSAGE". Line 0 means no source position is known, and is
// omitted.
func (e *LangError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("at line %d: Error %s: %s", e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("Error %s: %s", e.Kind, e.Message)
}

// SetError records a new LangError on the context (replacing any previous
// one), snapshots the current call stack into it, and returns it as an
// error so callers can `return nil, ctx.SetError(...)` in one line.
func (ctx *Context) SetError(kind ErrorKind, msg string) error {
	stack := make([]Frame, len(ctx.callStack))
	copy(stack, ctx.callStack)
	e := &LangError{Message: msg, Kind: kind, Stack: stack}
	ctx.err = e
	return e
}

// SetErrorLine is SetError with an explicit source line, used by the reader
// and by evaluator sites that already know the offending line number.
func (ctx *Context) SetErrorLine(kind ErrorKind, line int, msg string) error {
	e := ctx.SetError(kind, msg).(*LangError)
	e.Line = line
	return e
}

// GetError returns the most recently recorded error, or nil if none (or if
// it has been cleared since).
func (ctx *Context) GetError() *LangError { return ctx.err }

// ClearError discards the current error without affecting the heap.
func (ctx *Context) ClearError() { ctx.err = nil }

// ErrorKind returns the kind of the current error, or ErrGeneric if there is
// none.
func (ctx *Context) ErrorKind() ErrorKind {
	if ctx.err == nil {
		return ErrGeneric
	}
	return ctx.err.Kind
}

// PrintError writes the current error, followed by its call-stack trace
// most-recent-frame-first, to ctx.Diag. It is a no-op if there is no
// current error.
func (ctx *Context) PrintError() {
	if ctx.err == nil {
		return
	}
	fmt.Fprintln(ctx.Diag, ctx.err.Error())
	ctx.dumpFrames(ctx.err.Stack)
}

// DumpStack writes the live call stack (not the snapshot attached to the
// last error) to ctx.Diag, most-recent-frame-first. It backs the
// `dump-stack` builtin.
func (ctx *Context) DumpStack() {
	ctx.dumpFrames(ctx.callStack)
}

func (ctx *Context) dumpFrames(frames []Frame) {
	for i := len(frames) - 1; i >= 0; i-- {
		fmt.Fprint(ctx.Diag, "  at ")
		descOf(frames[i].Callee).Print(ctx.Diag, frames[i].Callee)
		fmt.Fprintln(ctx.Diag)
	}
}
