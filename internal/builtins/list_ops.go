package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

func registerListOps(ctx *lisp.Context, scope *lisp.Scope) {
	bindPre := func(name string, fn lisp.NativeFunc) {
		scope.Bind(name, ctx.NewNative(name, fn, true, nil))
	}

	bindPre("eval", evalFn)
	bindPre("car", carFn)
	bindPre("cdr", cdrFn)
	bindPre("cons", consFn)
	bindPre("null?", nullFn)
	bindPre("list", listFn)
	bindPre("map", mapFn)
	bindPre("reduce", reduceFn)
}

func evalFn(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 1 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "eval takes exactly one argument")
	}
	return lisp.Eval(ctx, scope, items[0])
}

func carFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if err := checkShape(ctx, "l", items); err != nil {
		return nil, err
	}
	c := items[0].(*lisp.Cell)
	if lisp.IsNil(c) {
		return nil, ctx.SetError(lisp.ErrBadValue, "car of the empty list")
	}
	return c.Left, nil
}

func cdrFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if err := checkShape(ctx, "l", items); err != nil {
		return nil, err
	}
	c := items[0].(*lisp.Cell)
	if lisp.IsNil(c) {
		return nil, ctx.SetError(lisp.ErrBadValue, "cdr of the empty list")
	}
	return c.Right, nil
}

func consFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "cons takes exactly two arguments")
	}
	return ctx.NewCell(items[0], items[1]), nil
}

func nullFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if err := checkShape(ctx, "*", items); err != nil {
		return nil, err
	}
	return boolToInt(ctx, lisp.IsNil(items[0])), nil
}

// listFn is `list`, a convenience primitive not present in the historical
// C runtime's builtin set but implied by every scenario that needs to build
// a list from already-evaluated values without nested cons calls.
func listFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return lisp.SliceToList(ctx, argList(args)), nil
}

// mapFn zips the heads of each list argument, invoking f with those heads
// quoted so they pass through f unevaluated regardless of f's pre-evaluate
// flag, stopping as soon as any list is exhausted.
func mapFn(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	if len(items) < 2 {
		return nil, ctx.SetError(lisp.ErrTooFewArgs, "map requires a function and at least one list")
	}
	f := items[0]
	lists := items[1:]
	for _, l := range lists {
		if !lisp.IsProperList(l) {
			return nil, ctx.SetError(lisp.ErrWrongType, "map requires proper lists")
		}
	}

	var results []lisp.Value
	for {
		heads := make([]lisp.Value, len(lists))
		for i, l := range lists {
			if lisp.IsNil(l) {
				return lisp.SliceToList(ctx, results), nil
			}
			heads[i] = l.(*lisp.Cell).Left
		}
		quoted := make([]lisp.Value, len(heads))
		quoteSym := ctx.NewSymbol("quote")
		for i, h := range heads {
			quoted[i] = ctx.NewCell(quoteSym, ctx.NewCell(h, ctx.Nil()))
		}
		v, err := lisp.Call(ctx, scope, f, lisp.SliceToList(ctx, quoted))
		if err != nil {
			return nil, err
		}
		results = append(results, v)
		for i, l := range lists {
			lists[i] = l.(*lisp.Cell).Right
		}
	}
}

// reduceFn implements both the 2-arg form (init taken as the first element
// of L) and the 3-arg form (init given verbatim), folding left.
func reduceFn(ctx *lisp.Context, scope *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	items := argList(args)
	var f, acc, list lisp.Value
	switch len(items) {
	case 2:
		f = items[0]
		l, ok := items[1].(*lisp.Cell)
		if !ok || lisp.IsNil(l) {
			return nil, ctx.SetError(lisp.ErrBadValue, "reduce of an empty list with no init")
		}
		acc = l.Left
		list = l.Right
	case 3:
		f = items[0]
		acc = items[1]
		list = items[2]
	default:
		return nil, ctx.SetError(lisp.ErrTooManyArgs, "reduce takes two or three arguments")
	}
	if !lisp.IsProperList(list) {
		return nil, ctx.SetError(lisp.ErrWrongType, "reduce requires a proper list")
	}
	quoteSym := ctx.NewSymbol("quote")
	quote := func(v lisp.Value) lisp.Value { return ctx.NewCell(quoteSym, ctx.NewCell(v, ctx.Nil())) }
	for !lisp.IsNil(list) {
		c := list.(*lisp.Cell)
		v, err := lisp.Call(ctx, scope, f, ctx.NewCell(quote(acc), ctx.NewCell(quote(c.Left), ctx.Nil())))
		if err != nil {
			return nil, err
		}
		acc = v
		list = c.Right
	}
	return acc, nil
}
