package funlisp

import (
	"bytes"
	"testing"
)

func TestRunMainArithmetic(t *testing.T) {
	ctx := New(&bytes.Buffer{})
	scope := ctx.DefaultScope()

	result, err := ctx.RunMain(scope, "(+ 1 2 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := AsInteger(result)
	if err != nil || n != 6 {
		t.Errorf("got %v (%v), want 6", n, err)
	}
}

func TestRunMainDefinesPersistAcrossCalls(t *testing.T) {
	ctx := New(&bytes.Buffer{})
	scope := ctx.DefaultScope()

	if _, err := ctx.RunMain(scope, "(define counter 0)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := ctx.RunMain(scope, "(define counter (+ counter 1)) counter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := AsInteger(result)
	if n != 1 {
		t.Errorf("got %d, want 1", n)
	}
}

func TestErrorChannelReportsKindAndLine(t *testing.T) {
	ctx := New(&bytes.Buffer{})
	scope := ctx.DefaultScope()

	_, err := ctx.RunMain(scope, "undefined-name")
	if err == nil {
		t.Fatal("expected an error")
	}
	if ctx.ErrorKind() != ErrNotFound {
		t.Errorf("got kind %v, want not-found", ctx.ErrorKind())
	}

	ctx.ClearError()
	if _, err := ctx.RunMain(scope, "(+ 1 2)\n)"); err == nil {
		t.Fatal("expected a syntax error")
	}
	if e := ctx.GetError(); e == nil || e.Line != 2 {
		t.Errorf("got error %v, want one reported at line 2", e)
	}
}

func TestHostBoundNativeFunction(t *testing.T) {
	ctx := New(&bytes.Buffer{})
	scope := ctx.DefaultScope()

	ctx.Bind(scope, "host-double", func(c *Context, _ *Scope, args Value, _ any) (Value, error) {
		items := AsSlice(args)
		n, err := AsInteger(items[0])
		if err != nil {
			return nil, err
		}
		return c.NewInteger(n * 2), nil
	}, true, nil)

	result, err := ctx.RunMain(scope, "(host-double 21)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := AsInteger(result)
	if n != 42 {
		t.Errorf("got %d, want 42", n)
	}
}
