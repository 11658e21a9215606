package builtins

import (
	"fmt"

	"github.com/cwbudde/funlisp/internal/lisp"
)

func registerIntrospection(ctx *lisp.Context, scope *lisp.Scope) {
	scope.Bind("print", ctx.NewNative("print", printFn, true, nil))
	scope.Bind("dump-stack", ctx.NewNative("dump-stack", dumpStackFn, true, nil))
}

// printFn prints each argument with no separator between them, then a
// trailing newline, and returns nil. Output goes to the context's
// diagnostic writer, not directly to stdout, so embedders can redirect it.
func printFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	for _, v := range argList(args) {
		lisp.Print(ctx.Diag, v)
	}
	fmt.Fprintln(ctx.Diag)
	return ctx.Nil(), nil
}

func dumpStackFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	if len(argList(args)) != 0 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "dump-stack takes no arguments")
	}
	ctx.DumpStack()
	return ctx.Nil(), nil
}
