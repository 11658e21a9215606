// Package funlisp is the host-facing embedding surface for the funlisp
// interpreter: create a context, seed a scope, read and evaluate source,
// and inspect errors, without reaching into internal/lisp directly.
package funlisp

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/funlisp/internal/builtins"
	"github.com/cwbudde/funlisp/internal/lisp"
	"github.com/cwbudde/funlisp/internal/reader"
)

// Value is a handle to a language value. It is opaque outside this package
// beyond what Sprint and the typed accessors expose.
type Value = lisp.Value

// Scope is a symbol-to-value binding environment.
type Scope = lisp.Scope

// ErrorKind classifies an Error.
type ErrorKind = lisp.ErrorKind

// Re-exported error-kind constants, so a host never needs to import
// internal/lisp to compare against ctx.ErrorKind().
const (
	ErrGeneric         = lisp.ErrGeneric
	ErrEndOfInput      = lisp.ErrEndOfInput
	ErrSyntax          = lisp.ErrSyntax
	ErrFileIO          = lisp.ErrFileIO
	ErrTooManyArgs     = lisp.ErrTooManyArgs
	ErrTooFewArgs      = lisp.ErrTooFewArgs
	ErrWrongType       = lisp.ErrWrongType
	ErrNotCallable     = lisp.ErrNotCallable
	ErrNotEvaluable    = lisp.ErrNotEvaluable
	ErrNotFound        = lisp.ErrNotFound
	ErrExitRequest     = lisp.ErrExitRequest
	ErrAssertionFailed = lisp.ErrAssertionFailed
	ErrBadValue        = lisp.ErrBadValue
)

// NativeFunc is the signature for a host function bound with Bind. It
// takes the public *Context rather than the internal lisp.Context so that
// hosts outside this module never need to import internal/lisp.
type NativeFunc func(ctx *Context, scope *Scope, args Value, userdata any) (Value, error)

// Context owns the heap, call stack, error channel and interning caches for
// one interpreter instance. A Context is not safe for concurrent use:
// evaluating on it from multiple goroutines at once is unsupported.
type Context struct {
	ctx *lisp.Context
}

// New creates a context with diagnostic output (print, dump-stack, error
// printing) directed at w. Passing nil directs it to os.Stderr.
func New(w io.Writer) *Context {
	if w == nil {
		w = os.Stderr
	}
	return &Context{ctx: lisp.New(w)}
}

// SetInterning toggles the optional string/symbol interning caches.
func (c *Context) SetInterning(strings, symbols bool) { c.ctx.SetInterning(strings, symbols) }

// SetUserPointer attaches an opaque host value to the context, retrievable
// via UserPointer (for instance from a native function's ctx argument). It
// is separate from the per-function userdata given to Bind.
func (c *Context) SetUserPointer(p any) { c.ctx.SetUserPointer(p) }

// UserPointer retrieves the opaque host value set by SetUserPointer.
func (c *Context) UserPointer() any { return c.ctx.UserPointer() }

// Nil returns the empty list, the canonical false/absent-data value.
func (c *Context) Nil() Value { return c.ctx.Nil() }

// NewScope creates a scope whose parent is parent (nil for a root scope).
func (c *Context) NewScope(parent *Scope) *Scope { return c.ctx.NewScope(parent) }

// DefaultScope returns a fresh root scope seeded with every special form
// and primitive native to the language.
func (c *Context) DefaultScope() *Scope { return builtins.DefaultScope(c.ctx) }

// Bind installs a host function as a callable value named name in scope.
// preEval controls whether the evaluator evaluates the argument list before
// invoking fn.
func (c *Context) Bind(scope *Scope, name string, fn NativeFunc, preEval bool, userdata any) {
	wrapped := func(_ *lisp.Context, innerScope *lisp.Scope, args lisp.Value, ud any) (lisp.Value, error) {
		return fn(c, innerScope, args, ud)
	}
	scope.Bind(name, c.ctx.NewNative(name, wrapped, preEval, userdata))
}

// NewInteger allocates an integer value.
func (c *Context) NewInteger(n int64) Value { return c.ctx.NewInteger(n) }

// NewString allocates a string value.
func (c *Context) NewString(s string) Value { return c.ctx.NewString(s, true) }

// NewSymbol allocates (or returns the cached) symbol value.
func (c *Context) NewSymbol(name string) Value { return c.ctx.NewSymbol(name) }

// Read parses one datum from input starting at offset, returning the value
// and the offset of the next unread byte.
func (c *Context) Read(input string, offset int) (Value, int, error) {
	return reader.New(c.ctx, input).Read(offset)
}

// ReadProgn parses all of input and wraps the top-level forms in
// `(progn ...)` so the whole thing can be evaluated in one call to Eval.
func (c *Context) ReadProgn(input string) (Value, error) {
	return reader.New(c.ctx, input).ReadProgn()
}

// ReadFile reads path and parses it with ReadProgn.
func (c *Context) ReadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, c.ctx.SetError(lisp.ErrFileIO, err.Error())
	}
	return c.ReadProgn(string(data))
}

// Eval evaluates v in scope.
func (c *Context) Eval(scope *Scope, v Value) (Value, error) {
	return lisp.Eval(c.ctx, scope, v)
}

// RunMain is the common embedding entry point: read, then evaluate, a
// complete source string in scope.
func (c *Context) RunMain(scope *Scope, source string) (Value, error) {
	form, err := c.ReadProgn(source)
	if err != nil {
		return nil, err
	}
	return c.Eval(scope, form)
}

// Call invokes an already-evaluated callee with an argument list (for
// example one built with NewList), useful when a host holds a callable
// obtained from a lookup or a previous Eval rather than source text. The
// arguments are handled as in any call: a lambda or a pre-evaluating
// native evaluates each element in scope first, so values that must pass
// through unchanged need to be quoted.
func (c *Context) Call(scope *Scope, callee Value, args Value) (Value, error) {
	return lisp.Call(c.ctx, scope, callee, args)
}

// RunMainIfExists looks up a `main` binding in scope and, if present, calls
// it with a single argument: a list of the given program argument strings.
// It reports false if no `main` was bound, mirroring the reference host's
// behavior of falling back to just having evaluated the file's top-level
// forms for effect (original_source/src/public_util.c).
func (c *Context) RunMainIfExists(scope *Scope, args []string) (Value, bool, error) {
	mainFn, ok := scope.Lookup("main")
	if !ok {
		return nil, false, nil
	}
	argValues := make([]Value, len(args))
	for i, a := range args {
		argValues[i] = c.ctx.NewString(a, true)
	}
	argList := lisp.SliceToList(c.ctx, argValues)
	// lisp.Call evaluates each element of the argument list it is given, the
	// same as any other call, so argList (itself a list) must be quoted:
	// otherwise evalArgs would try to evaluate it as a call form. This
	// mirrors the reference host's lisp_quote + lisp_singleton_list pairing
	// (original_source/src/public_util.c).
	quoted := c.ctx.NewCell(c.ctx.NewSymbol("quote"), c.ctx.NewCell(argList, c.ctx.Nil()))
	callArgs := c.ctx.NewCell(quoted, c.ctx.Nil())
	result, err := lisp.Call(c.ctx, scope, mainFn, callArgs)
	return result, true, err
}

// LoadFile reads and evaluates the file at path in scope.
func (c *Context) LoadFile(scope *Scope, path string) (Value, error) {
	form, err := c.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Eval(scope, form)
}

// Mark marks v (and everything reachable from it) as live for the next
// Sweep. Call it once per host-held root before sweeping.
func (c *Context) Mark(v Value) { c.ctx.Mark(v) }

// Sweep reclaims every value not marked since the last Sweep.
func (c *Context) Sweep() { c.ctx.Sweep() }

// Free releases every value owned by the context. After Free the context
// may still be used; it starts a fresh heap.
func (c *Context) Free() { c.ctx.Free() }

// Error is the structured detail behind any error returned by this
// package: a message, a kind, an optional source line, and a call-stack
// snapshot.
type Error = lisp.LangError

// GetError returns the most recently recorded error, or nil.
func (c *Context) GetError() *Error { return c.ctx.GetError() }

// ClearError discards the current error.
func (c *Context) ClearError() { c.ctx.ClearError() }

// ErrorKind returns the kind of the current error, or ErrGeneric if none.
func (c *Context) ErrorKind() ErrorKind { return c.ctx.ErrorKind() }

// PrintError writes the current error and its call-stack trace to the
// context's diagnostic writer.
func (c *Context) PrintError() { c.ctx.PrintError() }

// DumpStack writes the live call stack to the context's diagnostic writer.
func (c *Context) DumpStack() { c.ctx.DumpStack() }

// Print writes v's textual representation to w.
func Print(w io.Writer, v Value) { lisp.Print(w, v) }

// Sprint returns v's textual representation as a string.
func Sprint(v Value) string { return lisp.Sprint(v) }

// StackDepth returns the current call-stack depth.
func (c *Context) StackDepth() int { return c.ctx.StackDepth() }

// IsNil reports whether v is the empty list.
func IsNil(v Value) bool { return lisp.IsNil(v) }

// AsSlice collects the elements of a proper list into a Go slice. The
// caller is responsible for knowing v is a proper list, e.g. from having
// received it as a pre-evaluated argument list.
func AsSlice(v Value) []Value { return lisp.ListSlice(v) }

// NewList builds a nil-terminated proper list from vals.
func (c *Context) NewList(vals ...Value) Value { return lisp.SliceToList(c.ctx, vals) }

// Equal reports whether a and b are structurally equal.
func Equal(a, b Value) bool { return lisp.ValuesEqual(a, b) }

// AsInteger returns v's integer payload, or an error if v is not an
// Integer.
func AsInteger(v Value) (int64, error) {
	i, ok := v.(*lisp.Integer)
	if !ok {
		return 0, fmt.Errorf("value is not an integer")
	}
	return i.Value, nil
}

// AsString returns v's string payload, or an error if v is not a String.
func AsString(v Value) (string, error) {
	s, ok := v.(*lisp.String)
	if !ok {
		return "", fmt.Errorf("value is not a string")
	}
	return s.Value, nil
}
