package builtins

import "github.com/cwbudde/funlisp/internal/lisp"

func registerArithmetic(ctx *lisp.Context, scope *lisp.Scope) {
	bindPre := func(name string, fn lisp.NativeFunc) {
		scope.Bind(name, ctx.NewNative(name, fn, true, nil))
	}

	bindPre("+", addFn)
	bindPre("-", subFn)
	bindPre("*", mulFn)
	bindPre("/", divFn)
	bindPre("=", eqNumFn)
	bindPre("==", eqNumFn)
	bindPre("!=", neNumFn)
	bindPre("<", ltFn)
	bindPre("<=", leFn)
	bindPre(">", gtFn)
	bindPre(">=", geFn)
}

func intArgs(ctx *lisp.Context, args lisp.Value) ([]int64, error) {
	items := argList(args)
	out := make([]int64, len(items))
	for i, v := range items {
		n, ok := v.(*lisp.Integer)
		if !ok {
			return nil, ctx.SetError(lisp.ErrWrongType, "expected an integer")
		}
		out[i] = n.Value
	}
	return out, nil
}

func addFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	ns, err := intArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range ns {
		sum += n
	}
	return ctx.NewInteger(sum), nil
}

func subFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	ns, err := intArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 0 {
		return nil, ctx.SetError(lisp.ErrTooFewArgs, "- requires at least one argument")
	}
	if len(ns) == 1 {
		return ctx.NewInteger(-ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		result -= n
	}
	return ctx.NewInteger(result), nil
}

func mulFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	ns, err := intArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	result := int64(1)
	for _, n := range ns {
		result *= n
	}
	return ctx.NewInteger(result), nil
}

func divFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	ns, err := intArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(ns) == 0 {
		return nil, ctx.SetError(lisp.ErrTooFewArgs, "/ requires at least one argument")
	}
	if len(ns) == 1 {
		if ns[0] == 0 {
			return nil, ctx.SetError(lisp.ErrBadValue, "division by zero")
		}
		return ctx.NewInteger(1 / ns[0]), nil
	}
	result := ns[0]
	for _, n := range ns[1:] {
		if n == 0 {
			return nil, ctx.SetError(lisp.ErrBadValue, "division by zero")
		}
		result /= n
	}
	return ctx.NewInteger(result), nil
}

func boolToInt(ctx *lisp.Context, b bool) lisp.Value {
	if b {
		return ctx.NewInteger(1)
	}
	return ctx.NewInteger(0)
}

// compareTwo enforces the reference host's comparison arity: exactly two
// integer arguments, for every one of =, ==, !=, <, <=, >, >=.
func compareTwo(ctx *lisp.Context, name string, args lisp.Value, ok func(a, b int64) bool) (lisp.Value, error) {
	ns, err := intArgs(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(ns) != 2 {
		return nil, ctx.SetError(lisp.ErrTooManyArgs, name+" takes exactly two arguments")
	}
	return boolToInt(ctx, ok(ns[0], ns[1])), nil
}

func eqNumFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, "=", args, func(a, b int64) bool { return a == b })
}

func neNumFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, "!=", args, func(a, b int64) bool { return a != b })
}

func ltFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, "<", args, func(a, b int64) bool { return a < b })
}

func leFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, "<=", args, func(a, b int64) bool { return a <= b })
}

func gtFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, ">", args, func(a, b int64) bool { return a > b })
}

func geFn(ctx *lisp.Context, _ *lisp.Scope, args lisp.Value, _ any) (lisp.Value, error) {
	return compareTwo(ctx, ">=", args, func(a, b int64) bool { return a >= b })
}
