package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

// DefaultScope builds a fresh root scope seeded with every special form and
// primitive function native to the language. Hosts that want a
// restricted environment can build their own scope and bind only a subset
// by calling the individual register functions directly.
func DefaultScope(ctx *lisp.Context) *lisp.Scope {
	scope := ctx.NewScope(nil)
	registerSpecialForms(ctx, scope)
	registerArithmetic(ctx, scope)
	registerListOps(ctx, scope)
	registerEquality(ctx, scope)
	registerIntrospection(ctx, scope)
	registerAssertions(ctx, scope)
	return scope
}
