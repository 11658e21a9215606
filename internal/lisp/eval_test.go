package lisp

import "testing"

// build constructs a proper list from the given values, a small helper to
// keep the call-protocol tests above low-level cons chains.
func build(ctx *Context, vals ...Value) Value {
	return SliceToList(ctx, vals)
}

func TestCallProtocolFunctionLambda(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)

	// (f 1 2) with f bound to (lambda (x y) x)
	params := build(ctx, ctx.NewSymbol("x"), ctx.NewSymbol("y"))
	body := build(ctx, ctx.NewSymbol("x"))
	lambda := ctx.NewLambda(params, body, scope, KindFunction)
	scope.Bind("f", lambda)
	call := build(ctx, ctx.NewSymbol("f"), ctx.NewInteger(1), ctx.NewInteger(2))

	result, err := Eval(ctx, scope, call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(*Integer).Value != 1 {
		t.Errorf("got %v, want 1", Sprint(result))
	}
}

func TestCallProtocolMacroDoubleEvaluation(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)
	scope.Bind("val", ctx.NewInteger(9))

	// (macro (s) s) called with the unevaluated symbol `val` should expand
	// to `val`, and that expansion is evaluated again in the caller's scope.
	params := build(ctx, ctx.NewSymbol("s"))
	body := build(ctx, ctx.NewSymbol("s"))
	macro := ctx.NewLambda(params, body, scope, KindMacro)
	scope.Bind("m", macro)
	call := build(ctx, ctx.NewSymbol("m"), ctx.NewSymbol("val"))

	result, err := Eval(ctx, scope, call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(*Integer).Value != 9 {
		t.Errorf("got %v, want 9 (macro should substitute then re-evaluate)", Sprint(result))
	}
}

func TestCallProtocolNativePreEval(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)
	scope.Bind("x", ctx.NewInteger(3))

	var seen Value
	native := ctx.NewNative("capture", func(_ *Context, _ *Scope, args Value, _ any) (Value, error) {
		seen = args.(*Cell).Left
		return seen, nil
	}, true, nil)
	scope.Bind("capture", native)

	call := build(ctx, ctx.NewSymbol("capture"), ctx.NewSymbol("x"))
	if _, err := Eval(ctx, scope, call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.(*Integer).Value != 3 {
		t.Errorf("pre-eval native should receive the evaluated argument")
	}
}

func TestCallProtocolNativeNoPreEval(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)
	scope.Bind("x", ctx.NewInteger(3))

	var seen Value
	native := ctx.NewNative("capture-raw", func(_ *Context, _ *Scope, args Value, _ any) (Value, error) {
		seen = args.(*Cell).Left
		return ctx.Nil(), nil
	}, false, nil)
	scope.Bind("capture-raw", native)

	call := build(ctx, ctx.NewSymbol("capture-raw"), ctx.NewSymbol("x"))
	if _, err := Eval(ctx, scope, call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := seen.(*Symbol); !ok {
		t.Errorf("no-preeval native should receive the raw, unevaluated argument")
	}
}

func TestCallingNonCallableIsAnError(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)

	call := build(ctx, ctx.NewInteger(5))
	_, err := Eval(ctx, scope, call)
	if err == nil {
		t.Fatal("expected not-callable error")
	}
	if ctx.ErrorKind() != ErrNotCallable {
		t.Errorf("got kind %v, want not-callable", ctx.ErrorKind())
	}
}

func TestCallStackPushPop(t *testing.T) {
	ctx := newTestContext()
	scope := ctx.NewScope(nil)
	native := ctx.NewNative("depth-check", func(c *Context, _ *Scope, _ Value, _ any) (Value, error) {
		return c.NewInteger(int64(c.StackDepth())), nil
	}, true, nil)
	scope.Bind("depth-check", native)

	call := build(ctx, ctx.NewSymbol("depth-check"))
	result, err := Eval(ctx, scope, call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(*Integer).Value == 0 {
		t.Errorf("stack depth should be nonzero during the call")
	}
	if ctx.StackDepth() != 0 {
		t.Errorf("stack depth should return to zero after the call returns")
	}
}
