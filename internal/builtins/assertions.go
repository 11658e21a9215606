package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

func registerAssertions(ctx *lisp.Context, scope *lisp.Scope) {
	scope.Bind("assert", ctx.NewNative("assert", assertFn, true, nil))
	// assert-error is bound in registerSpecialForms since it is no-preeval.
}

// assertFn signals assertion-failed if x is not truthy: the integer zero or
// any non-integer value.
func assertFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 1 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "assert takes exactly one argument")
	}
	if !truthy(items[0]) {
		return nil, ctx.SetError(lisp.ErrAssertionFailed, "assertion failed")
	}
	return ctx.Nil(), nil
}

var errorKindNames = map[string]lisp.ErrorKind{
	"generic":          lisp.ErrGeneric,
	"end-of-input":     lisp.ErrEndOfInput,
	"syntax":           lisp.ErrSyntax,
	"file-i/o":         lisp.ErrFileIO,
	"too-many-args":    lisp.ErrTooManyArgs,
	"too-few-args":     lisp.ErrTooFewArgs,
	"wrong-type":       lisp.ErrWrongType,
	"not-callable":     lisp.ErrNotCallable,
	"not-evaluable":    lisp.ErrNotEvaluable,
	"not-found":        lisp.ErrNotFound,
	"exit-request":     lisp.ErrExitRequest,
	"assertion-failed": lisp.ErrAssertionFailed,
	"bad-value":        lisp.ErrBadValue,
}

// assertErrorForm evaluates expr expecting it to fail with the error kind
// named by sym. sym is evaluated before use (so callers quote it, e.g.
// `(assert-error 'not-found expr)`), matching the reference host's
// assert-error, which also evaluates its first argument despite taking the
// whole call unevaluated. A failure with a matching kind is the success
// case and clears the error channel; anything else (success, or a
// mismatched kind) is itself an assertion failure.
func assertErrorForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "assert-error takes exactly two arguments")
	}
	symVal, err := lisp.Eval(ctx, scope, items[0])
	if err != nil {
		return nil, err
	}
	sym, ok := symVal.(*lisp.Symbol)
	if !ok {
		return nil, ctx.SetError(lisp.ErrWrongType, "assert-error's first argument must be a symbol")
	}
	wanted, ok := errorKindNames[sym.Value]
	if !ok {
		return nil, ctx.SetError(lisp.ErrBadValue, "unknown error kind: "+sym.Value)
	}

	_, err = lisp.Eval(ctx, scope, items[1])
	if err == nil {
		return nil, ctx.SetError(lisp.ErrAssertionFailed, "expected evaluation to fail with error kind "+sym.Value)
	}
	if ctx.ErrorKind() != wanted {
		return nil, err
	}
	ctx.ClearError()
	return ctx.Nil(), nil
}
