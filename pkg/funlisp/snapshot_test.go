package funlisp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps clean up any snapshot file entries that no test
// matched this run.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

// TestPrintedOutputSnapshots captures the diagnostic output (via `print`)
// of a handful of representative programs, the same way the interpreter's
// fixture suite pins down output text.
func TestPrintedOutputSnapshots(t *testing.T) {
	programs := map[string]string{
		"factorial": `
			(define fact (lambda (n) (if (< n 2) 1 (* n (fact (- n 1))))))
			(print (fact 10))`,
		"quasiquote": `(print ` + "`" + `(a ,(+ 1 2) c))`,
		"closure": `
			(define make-adder (lambda (n) (lambda (x) (+ x n))))
			(define add5 (make-adder 5))
			(define add10 (make-adder 10))
			(print (add5 1) (add10 1))`,
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			ctx := New(&out)
			scope := ctx.DefaultScope()
			if _, err := ctx.RunMain(scope, src); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			snaps.MatchSnapshot(t, name+"_output", out.String())
		})
	}
}
