package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

func registerEquality(ctx *lisp.Context, scope *lisp.Scope) {
	scope.Bind("eq?", ctx.NewNative("eq?", eqPFn, true, nil))
	scope.Bind("equal?", ctx.NewNative("equal?", equalPFn, true, nil))
}

// eqPFn is identity comparison: the same heap cell.
func eqPFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "eq? takes exactly two arguments")
	}
	return boolToInt(ctx, items[0] == items[1]), nil
}

// equalPFn is structural equality: same variant and, recursively, same
// content.
func equalPFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "equal? takes exactly two arguments")
	}
	return boolToInt(ctx, lisp.ValuesEqual(items[0], items[1])), nil
}
