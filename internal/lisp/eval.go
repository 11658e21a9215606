package lisp

// Eval evaluates v in scope by dispatching to its descriptor's Eval field.
// This is the single entry point used by the reader-eval loop, by native
// functions that need to force an argument, and by pkg/funlisp's
// host-facing Eval.
func Eval(ctx *Context, scope *Scope, v Value) (Value, error) {
	if v == nil {
		return ctx.Nil(), nil
	}
	return descOf(v).Eval(ctx, scope, v)
}

// Call invokes an already-evaluated callee with an unevaluated argument
// list, the same dispatch evalList uses once it has resolved the head of a
// call form. It lets a host invoke a value it obtained some other way (a
// scope lookup, a return value) without re-wrapping it in source syntax.
func Call(ctx *Context, scope *Scope, callee Value, args Value) (Value, error) {
	return descOf(callee).Call(ctx, scope, callee, args)
}

func evalSymbol(ctx *Context, scope *Scope, v Value) (Value, error) {
	sym := v.(*Symbol)
	if val, ok := scope.Lookup(sym.Value); ok {
		return val, nil
	}
	return nil, ctx.SetError(ErrNotFound, "unbound symbol: "+sym.Value)
}

// evalList implements the call protocol: the head is evaluated
// to produce a callee, and dispatch from there is delegated entirely to the
// callee's own descriptor Call field. Native functions and lambdas decide
// for themselves whether the remaining elements are evaluated.
func evalList(ctx *Context, scope *Scope, v Value) (Value, error) {
	cell := v.(*Cell)
	if IsNil(cell) {
		return nil, ctx.SetError(ErrNotEvaluable, "cannot evaluate the empty list")
	}
	callee, err := Eval(ctx, scope, cell.Left)
	if err != nil {
		return nil, err
	}
	return descOf(callee).Call(ctx, scope, callee, cell.Right)
}

func traceList(v Value) []Value {
	c := v.(*Cell)
	if c.Left == nil && c.Right == nil {
		return nil
	}
	return []Value{c.Left, c.Right}
}

func compareList(a, b Value) bool {
	for {
		an, bn := IsNil(a), IsNil(b)
		if an || bn {
			return an == bn
		}
		ac, aok := a.(*Cell)
		bc, bok := b.(*Cell)
		if !aok || !bok {
			return a == b
		}
		if !ValuesEqual(ac.Left, bc.Left) {
			return false
		}
		a, b = ac.Right, bc.Right
	}
}

// ValuesEqual is the structural equality used by compareList/compareLambda
// and by the `equal?` builtin: two values are equal if they share a
// descriptor and that descriptor's Compare says so.
func ValuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if descOf(a) != descOf(b) {
		return false
	}
	return descOf(a).Compare(a, b)
}

// evalArgs evaluates every element of a proper argument list in scope,
// stopping at the first error.
func evalArgs(ctx *Context, scope *Scope, args Value) ([]Value, error) {
	var out []Value
	for !IsNil(args) {
		c, ok := args.(*Cell)
		if !ok {
			return nil, ctx.SetError(ErrSyntax, "improper argument list")
		}
		v, err := Eval(ctx, scope, c.Left)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		args = c.Right
	}
	return out, nil
}

func callNative(ctx *Context, scope *Scope, callee Value, args Value) (Value, error) {
	n := callee.(*Native)
	if n.PreEval {
		evaluated, err := evalArgs(ctx, scope, args)
		if err != nil {
			return nil, err
		}
		args = SliceToList(ctx, evaluated)
	}
	ctx.pushFrame(callee)
	defer ctx.popFrame()
	return n.Fn(ctx, scope, args, n.UserData)
}

// bindParams binds args (a Go slice already chosen for evaluated-or-raw per
// caller) to the lambda's parameter list into dest. A proper parameter list
// requires an exact argument count; an improper one (dotted rest parameter)
// requires at least as many arguments as the fixed prefix, binding the
// remainder as a list to the final symbol.
func bindParams(ctx *Context, dest *Scope, params Value, args []Value) error {
	i := 0
	cur := params
	for {
		c, ok := cur.(*Cell)
		if !ok || IsNil(cur) {
			break
		}
		sym, ok := c.Left.(*Symbol)
		if !ok {
			return ctx.SetError(ErrWrongType, "lambda parameter is not a symbol")
		}
		if i >= len(args) {
			return ctx.SetError(ErrTooFewArgs, "too few arguments")
		}
		dest.Bind(sym.Value, args[i])
		i++
		cur = c.Right
	}
	if sym, ok := cur.(*Symbol); ok {
		dest.Bind(sym.Value, SliceToList(ctx, args[i:]))
		return nil
	}
	if i != len(args) {
		return ctx.SetError(ErrTooManyArgs, "too many arguments")
	}
	return nil
}

func callLambda(ctx *Context, scope *Scope, callee Value, args Value) (Value, error) {
	l := callee.(*Lambda)
	if ctx.StackDepth() >= maxCallDepth {
		return nil, ctx.SetError(ErrGeneric, "call stack depth exceeded")
	}
	ctx.pushFrame(callee)
	defer ctx.popFrame()

	switch l.Kind {
	case KindMacro:
		rawArgs := ListSlice(args)
		local := ctx.NewScope(l.Closure)
		if err := bindParams(ctx, local, l.Params, rawArgs); err != nil {
			return nil, err
		}
		expansion, err := evalBody(ctx, local, l.Body)
		if err != nil {
			return nil, err
		}
		return Eval(ctx, scope, expansion)

	default:
		evaluated, err := evalArgs(ctx, scope, args)
		if err != nil {
			return nil, err
		}
		local := ctx.NewScope(l.Closure)
		if err := bindParams(ctx, local, l.Params, evaluated); err != nil {
			return nil, err
		}
		return evalBody(ctx, local, l.Body)
	}
}

// maxCallDepth guards against runaway non-tail recursion; stack-overflow
// behavior beyond this point is host-defined.
const maxCallDepth = 10000

// evalBody evaluates a proper list of body expressions in order, returning
// the value of the last one. An empty body evaluates to nil.
func evalBody(ctx *Context, scope *Scope, body Value) (Value, error) {
	var result Value = ctx.Nil()
	for !IsNil(body) {
		c, ok := body.(*Cell)
		if !ok {
			return nil, ctx.SetError(ErrSyntax, "improper body list")
		}
		v, err := Eval(ctx, scope, c.Left)
		if err != nil {
			return nil, err
		}
		result = v
		body = c.Right
	}
	return result, nil
}

func traceLambda(v Value) []Value {
	l := v.(*Lambda)
	out := []Value{l.Params, l.Body}
	if l.Closure != nil {
		out = append(out, l.Closure)
	}
	return out
}

func compareLambda(a, b Value) bool {
	la, lb := a.(*Lambda), b.(*Lambda)
	if la.Kind != lb.Kind || la.Closure != lb.Closure {
		return false
	}
	return ValuesEqual(la.Params, lb.Params) && ValuesEqual(la.Body, lb.Body)
}

func compareInteger(a, b Value) bool {
	return a.(*Integer).Value == b.(*Integer).Value
}

func compareText(a, b Value) bool {
	switch av := a.(type) {
	case *String:
		return av.Value == b.(*String).Value
	case *Symbol:
		return av.Value == b.(*Symbol).Value
	default:
		return false
	}
}
