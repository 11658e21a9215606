package builtins

import (
	"bytes"
	"testing"

	"github.com/cwbudde/funlisp/internal/lisp"
	"github.com/cwbudde/funlisp/internal/reader"
)

// run reads source as a whole program and evaluates it against a fresh
// default scope, returning the final value.
func run(t *testing.T, source string) (lisp.Value, *lisp.Context) {
	t.Helper()
	ctx := lisp.New(&bytes.Buffer{})
	scope := DefaultScope(ctx)
	form, err := reader.New(ctx, source).ReadProgn()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	result, err := lisp.Eval(ctx, scope, form)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return result, ctx
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		source string
		want   int64
	}{
		{"(+ 1 2 3)", 6},
		{"(- 10 3 2)", 5},
		{"(- 5)", -5},
		{"(* 2 3 4)", 24},
		{"(/ 20 2 2)", 5},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			result, _ := run(t, tt.source)
			n, ok := result.(*lisp.Integer)
			if !ok || n.Value != tt.want {
				t.Errorf("got %v, want %d", lisp.Sprint(result), tt.want)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	ctx := lisp.New(&bytes.Buffer{})
	scope := DefaultScope(ctx)
	form, _ := reader.New(ctx, "(/ 1 0)").ReadProgn()
	_, err := lisp.Eval(ctx, scope, form)
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
	if ctx.ErrorKind() != lisp.ErrBadValue {
		t.Errorf("got kind %v, want bad-value", ctx.ErrorKind())
	}
}

func TestComparisons(t *testing.T) {
	tests := []struct {
		source string
		want   int64
	}{
		{"(= 1 1)", 1},
		{"(== 1 2)", 0},
		{"(!= 1 2)", 1},
		{"(< 1 2)", 1},
		{"(< 3 2)", 0},
		{"(>= 3 3)", 1},
		{"(<= 2 3)", 1},
		{"(> 3 2)", 1},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			result, _ := run(t, tt.source)
			if result.(*lisp.Integer).Value != tt.want {
				t.Errorf("got %v, want %d", lisp.Sprint(result), tt.want)
			}
		})
	}
}

func TestComparisonArity(t *testing.T) {
	for _, source := range []string{"(< 1 2 3)", "(< 1)", "(= 1)", "(!= 1 2 3)"} {
		t.Run(source, func(t *testing.T) {
			ctx := lisp.New(&bytes.Buffer{})
			scope := DefaultScope(ctx)
			form, _ := reader.New(ctx, source).ReadProgn()
			if _, err := lisp.Eval(ctx, scope, form); err == nil {
				t.Fatalf("expected an arity error for %s", source)
			}
			if ctx.ErrorKind() != lisp.ErrTooManyArgs {
				t.Errorf("got kind %v, want too-many-args", ctx.ErrorKind())
			}
		})
	}
}

func TestIfForm(t *testing.T) {
	result, _ := run(t, "(if 1 10 20)")
	if result.(*lisp.Integer).Value != 10 {
		t.Errorf("got %v, want 10", lisp.Sprint(result))
	}
	result, _ = run(t, "(if 0 10 20)")
	if result.(*lisp.Integer).Value != 20 {
		t.Errorf("got %v, want 20", lisp.Sprint(result))
	}
}

func TestCondForm(t *testing.T) {
	result, _ := run(t, "(cond (0 1) (0 2) (1 3))")
	if result.(*lisp.Integer).Value != 3 {
		t.Errorf("got %v, want 3", lisp.Sprint(result))
	}
	result, _ = run(t, "(cond (0 1) (0 2))")
	if !lisp.IsNil(result) {
		t.Errorf("all-false cond should return nil, got %v", lisp.Sprint(result))
	}
}

func TestDefineAndLambda(t *testing.T) {
	result, _ := run(t, "(progn (define square (lambda (x) (* x x))) (square 6))")
	if result.(*lisp.Integer).Value != 36 {
		t.Errorf("got %v, want 36", lisp.Sprint(result))
	}
}

func TestClosureCapturesDefiningScope(t *testing.T) {
	result, _ := run(t, `(progn
		(define make-adder (lambda (n) (lambda (x) (+ x n))))
		(define add5 (make-adder 5))
		(add5 10))`)
	if result.(*lisp.Integer).Value != 15 {
		t.Errorf("got %v, want 15", lisp.Sprint(result))
	}
}

func TestQuoteAndQuasiquote(t *testing.T) {
	result, _ := run(t, "(quote (1 2 3))")
	if lisp.ListLen(result) != 3 {
		t.Errorf("quote should return its argument unevaluated")
	}

	result, _ = run(t, "(progn (define x 5) `(a ,x c))")
	items := lisp.ListSlice(result)
	if len(items) != 3 || items[1].(*lisp.Integer).Value != 5 {
		t.Errorf("got %v, want (a 5 c)", lisp.Sprint(result))
	}
}

func TestMacroSubstitution(t *testing.T) {
	result, _ := run(t, `(progn
		(define my-if (macro (c t e) (list (quote cond) (list c t) (list 1 e))))
		(my-if 0 100 200))`)
	if result.(*lisp.Integer).Value != 200 {
		t.Errorf("got %v, want 200", lisp.Sprint(result))
	}
}

func TestListOps(t *testing.T) {
	result, _ := run(t, "(car (cons 1 2))")
	if result.(*lisp.Integer).Value != 1 {
		t.Errorf("got %v, want 1", lisp.Sprint(result))
	}
	result, _ = run(t, "(cdr (cons 1 2))")
	if result.(*lisp.Integer).Value != 2 {
		t.Errorf("got %v, want 2", lisp.Sprint(result))
	}
	result, _ = run(t, "(null? (list))")
	if result.(*lisp.Integer).Value != 1 {
		t.Errorf("empty list should be null?")
	}
}

func TestMapZipwise(t *testing.T) {
	result, _ := run(t, "(map + (list 1 2 3) (list 10 20 30))")
	items := lisp.ListSlice(result)
	if len(items) != 3 || items[0].(*lisp.Integer).Value != 11 {
		t.Errorf("got %v, want (11 22 33)", lisp.Sprint(result))
	}
}

func TestMapStopsAtShortestList(t *testing.T) {
	result, _ := run(t, "(map + (list 1 2 3) (list 10 20))")
	if lisp.ListLen(result) != 2 {
		t.Errorf("map should stop at the shortest list")
	}
}

func TestReduceTwoAndThreeArg(t *testing.T) {
	result, _ := run(t, "(reduce + (list 1 2 3 4))")
	if result.(*lisp.Integer).Value != 10 {
		t.Errorf("got %v, want 10", lisp.Sprint(result))
	}
	result, _ = run(t, "(reduce + 100 (list 1 2 3))")
	if result.(*lisp.Integer).Value != 106 {
		t.Errorf("got %v, want 106", lisp.Sprint(result))
	}
}

func TestEqVsEqual(t *testing.T) {
	result, _ := run(t, "(eq? (list 1 2) (list 1 2))")
	if result.(*lisp.Integer).Value != 0 {
		t.Errorf("eq? on distinct cells should be false")
	}
	result, _ = run(t, "(equal? (list 1 2) (list 1 2))")
	if result.(*lisp.Integer).Value != 1 {
		t.Errorf("equal? on structurally-equal lists should be true")
	}
}

func TestAssert(t *testing.T) {
	ctx := lisp.New(&bytes.Buffer{})
	scope := DefaultScope(ctx)
	form, _ := reader.New(ctx, "(assert 0)").ReadProgn()
	_, err := lisp.Eval(ctx, scope, form)
	if err == nil {
		t.Fatal("expected assertion-failed error")
	}
	if ctx.ErrorKind() != lisp.ErrAssertionFailed {
		t.Errorf("got kind %v, want assertion-failed", ctx.ErrorKind())
	}
}

func TestAssertError(t *testing.T) {
	result, _ := run(t, "(assert-error 'not-found undefined-symbol)")
	if !lisp.IsNil(result) {
		t.Errorf("successful assert-error should return nil")
	}
}

func TestAssertErrorWrongKindPropagates(t *testing.T) {
	ctx := lisp.New(&bytes.Buffer{})
	scope := DefaultScope(ctx)
	form, _ := reader.New(ctx, "(assert-error 'syntax undefined-symbol)").ReadProgn()
	_, err := lisp.Eval(ctx, scope, form)
	if err == nil {
		t.Fatal("expected an error when the kind does not match")
	}
	if ctx.ErrorKind() != lisp.ErrNotFound {
		t.Errorf("got kind %v, want the original not-found to propagate", ctx.ErrorKind())
	}
}

func TestTooFewArgsFromShapeChecker(t *testing.T) {
	ctx := lisp.New(&bytes.Buffer{})
	scope := DefaultScope(ctx)
	form, _ := reader.New(ctx, "(car)").ReadProgn()
	_, err := lisp.Eval(ctx, scope, form)
	if err == nil {
		t.Fatal("expected too-few-args error")
	}
	if ctx.ErrorKind() != lisp.ErrTooFewArgs {
		t.Errorf("got kind %v, want too-few-args", ctx.ErrorKind())
	}
}
