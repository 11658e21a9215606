// Package builtins seeds a default root scope with the special forms and
// primitive functions native to funlisp.
package builtins

import (
	"github.com/cwbudde/funlisp/internal/lisp"
)

// checkShape validates args against a format string where each letter
// constrains the corresponding positional argument:
//
//	d integer, l list, s symbol, S string, o scope, b native callable,
//	t type descriptor, * any, R rest (accepts every remaining argument;
//	at least one must remain).
//
// It reports too-many, too-few, or wrong-type errors and never attempts
// partial binding: either every position is satisfied or the call fails
// outright.
func checkShape(ctx *lisp.Context, format string, args []lisp.Value) error {
	i := 0
	for fi := 0; fi < len(format); fi++ {
		letter := format[fi]
		if letter == 'R' {
			if i >= len(args) {
				return ctx.SetError(lisp.ErrTooFewArgs, "expected at least one more argument")
			}
			return nil
		}
		if i >= len(args) {
			return ctx.SetError(lisp.ErrTooFewArgs, "too few arguments")
		}
		if err := checkOne(ctx, letter, args[i]); err != nil {
			return err
		}
		i++
	}
	if i < len(args) {
		return ctx.SetError(lisp.ErrTooManyArgs, "too many arguments")
	}
	return nil
}

func checkOne(ctx *lisp.Context, letter byte, v lisp.Value) error {
	ok := false
	switch letter {
	case 'd':
		_, ok = v.(*lisp.Integer)
	case 'l':
		_, ok = v.(*lisp.Cell)
	case 's':
		_, ok = v.(*lisp.Symbol)
	case 'S':
		_, ok = v.(*lisp.String)
	case 'o':
		_, ok = v.(*lisp.Scope)
	case 'b':
		_, ok = v.(*lisp.Native)
	case 't':
		_, ok = v.(*lisp.Descriptor)
	case '*':
		ok = true
	default:
		ok = true
	}
	if !ok {
		return ctx.SetError(lisp.ErrWrongType, "argument has the wrong type")
	}
	return nil
}
