package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

// registerSpecialForms binds the no-preeval special forms into scope.
func registerSpecialForms(ctx *lisp.Context, scope *lisp.Scope) {
	bind := func(name string, fn lisp.NativeFunc) {
		scope.Bind(name, ctx.NewNative(name, fn, false, nil))
	}

	bind("quote", quoteForm)
	bind("quasiquote", quasiquoteForm)
	bind("unquote", unquoteForm)
	bind("define", defineForm)
	bind("lambda", lambdaForm)
	bind("macro", macroForm)
	bind("if", ifForm)
	bind("cond", condForm)
	bind("progn", prognForm)
	bind("assert-error", assertErrorForm)
}

func argList(args lisp.Value) []lisp.Value {
	return lisp.ListSlice(args)
}

func quoteForm(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 1 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "quote takes exactly one argument")
	}
	return items[0], nil
}

// quasiquoteForm returns x with every (unquote y) found anywhere in the
// tree replaced by the evaluation of y, preserving all other list structure.
func quasiquoteForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 1 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "quasiquote takes exactly one argument")
	}
	return expandQuasiquote(ctx, scope, items[0])
}

func expandQuasiquote(ctx *lisp.Context, scope *lisp.Scope, v lisp.Value) (lisp.Value, error) {
	cell, ok := v.(*lisp.Cell)
	if !ok || lisp.IsNil(cell) {
		return v, nil
	}
	if sym, ok := cell.Left.(*lisp.Symbol); ok && sym.Value == "unquote" {
		rest := lisp.ListSlice(cell.Right)
		if len(rest) != 1 {
			return nil, ctx.SetError(lisp.ErrSyntax, "unquote takes exactly one argument")
		}
		return lisp.Eval(ctx, scope, rest[0])
	}
	left, err := expandQuasiquote(ctx, scope, cell.Left)
	if err != nil {
		return nil, err
	}
	right, err := expandQuasiquote(ctx, scope, cell.Right)
	if err != nil {
		return nil, err
	}
	return ctx.NewCell(left, right), nil
}

func unquoteForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 1 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "unquote takes exactly one argument")
	}
	return lisp.Eval(ctx, scope, items[0])
}

func defineForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "define takes exactly two arguments")
	}
	sym, ok := items[0].(*lisp.Symbol)
	if !ok {
		return nil, ctx.SetError(lisp.ErrWrongType, "define's first argument must be a symbol")
	}
	val, err := lisp.Eval(ctx, scope, items[1])
	if err != nil {
		return nil, err
	}
	scope.Bind(sym.Value, val)
	return val, nil
}

func lambdaForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return buildLambda(ctx, scope, args, lisp.KindFunction)
}

func macroForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return buildLambda(ctx, scope, args, lisp.KindMacro)
}

func buildLambda(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, kind lisp.LambdaKind) (lisp.Value, error) {
	cell, ok := args.(*lisp.Cell)
	if !ok || lisp.IsNil(cell) {
		return nil, ctx.SetError(lisp.ErrTooFewArgs, "expected a parameter list and a body")
	}
	params := cell.Left
	if !isValidParamList(params) {
		return nil, ctx.SetError(lisp.ErrWrongType, "parameter list must be symbols")
	}
	return ctx.NewLambda(params, cell.Right, scope, kind), nil
}

func isValidParamList(v lisp.Value) bool {
	cur := v
	for {
		if lisp.IsNil(cur) {
			return true
		}
		if _, ok := cur.(*lisp.Symbol); ok {
			return true
		}
		c, ok := cur.(*lisp.Cell)
		if !ok {
			return false
		}
		if _, ok := c.Left.(*lisp.Symbol); !ok {
			return false
		}
		cur = c.Right
	}
}

func ifForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 3 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "if takes exactly three arguments")
	}
	cond, err := lisp.Eval(ctx, scope, items[0])
	if err != nil {
		return nil, err
	}
	if truthy(cond) {
		return lisp.Eval(ctx, scope, items[1])
	}
	return lisp.Eval(ctx, scope, items[2])
}

// truthy treats an integer with a nonzero value as true; every other
// value, including the empty list, is false.
func truthy(v lisp.Value) bool {
	i, ok := v.(*lisp.Integer)
	return ok && i.Value != 0
}

func condForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	for _, clause := range argList(args) {
		pair := argList(clause)
		if len(pair) != 2 {
			return nil, ctx.SetError(lisp.ErrSyntax, "cond clause must be (test value)")
		}
		test, err := lisp.Eval(ctx, scope, pair[0])
		if err != nil {
			return nil, err
		}
		if truthy(test) {
			return lisp.Eval(ctx, scope, pair[1])
		}
	}
	return ctx.Nil(), nil
}

func prognForm(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	var result lisp.Value = ctx.Nil()
	for _, expr := range argList(args) {
		v, err := lisp.Eval(ctx, scope, expr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
