package lisp

import "io"

// Descriptor is both the per-variant vtable and, since funlisp
// treats "type descriptor" as a value variant in its own right, a Value.
// Descriptors are statically allocated package data; they are never placed
// on a context's allocation list and are never collected. Dispatch is a
// field lookup on the descriptor, not a type switch or an inheritance
// hierarchy.
type Descriptor struct {
	Header
	Name string

	Print   func(w io.Writer, v Value)
	Trace   func(v Value) []Value
	Eval    func(ctx *Context, scope *Scope, v Value) (Value, error)
	Call    func(ctx *Context, scope *Scope, callee Value, args Value) (Value, error)
	Compare func(a, b Value) bool
	Free    func(ctx *Context, v Value)
}

func (d *Descriptor) header() *Header { return &d.Header }

// default behaviors shared by several descriptors.

func evalSelf(_ *Context, _ *Scope, v Value) (Value, error) { return v, nil }

func evalNotEvaluable(ctx *Context, _ *Scope, v Value) (Value, error) {
	return nil, ctx.SetError(ErrNotEvaluable, "cannot evaluate a "+descOf(v).Name)
}

func callNotCallable(ctx *Context, _ *Scope, callee Value, _ Value) (Value, error) {
	return nil, ctx.SetError(ErrNotCallable, "cannot call a "+descOf(callee).Name)
}

func compareIdentity(a, b Value) bool { return a == b }

func traceNone(Value) []Value { return nil }

func freeNoop(*Context, Value) {}

// descType, descInt etc. are the eight static, self-describing singletons.
var (
	descType   = &Descriptor{Name: "type"}
	descInt    = &Descriptor{Name: "integer"}
	descString = &Descriptor{Name: "string"}
	descSymbol = &Descriptor{Name: "symbol"}
	descList   = &Descriptor{Name: "list"}
	descScope  = &Descriptor{Name: "scope"}
	descNative = &Descriptor{Name: "builtin"}
	descLambda = &Descriptor{Name: "lambda"}
)

func init() {
	// Every descriptor's own Header.desc points at descType, mirroring the
	// self-referential lisp_type->type pointer in the original C runtime.
	for _, d := range []*Descriptor{descType, descInt, descString, descSymbol, descList, descScope, descNative, descLambda} {
		d.Header.desc = descType
	}

	descType.Print = func(w io.Writer, v Value) { io.WriteString(w, v.(*Descriptor).Name) }
	descType.Trace = traceNone
	descType.Eval = evalNotEvaluable
	descType.Call = callNotCallable
	descType.Compare = compareIdentity
	descType.Free = freeNoop

	descInt.Print = printInteger
	descInt.Trace = traceNone
	descInt.Eval = evalSelf
	descInt.Call = callNotCallable
	descInt.Compare = compareInteger
	descInt.Free = freeNoop

	descString.Print = printString
	descString.Trace = traceNone
	descString.Eval = evalSelf
	descString.Call = callNotCallable
	descString.Compare = compareText
	descString.Free = func(ctx *Context, v Value) { ctx.uncacheString(v.(*String)) }

	descSymbol.Print = printSymbol
	descSymbol.Trace = traceNone
	descSymbol.Eval = evalSymbol
	descSymbol.Call = callNotCallable
	descSymbol.Compare = compareText
	descSymbol.Free = func(ctx *Context, v Value) { ctx.uncacheSymbol(v.(*Symbol)) }

	descList.Print = printList
	descList.Trace = traceList
	descList.Eval = evalList
	descList.Call = callNotCallable
	descList.Compare = compareList
	descList.Free = freeNoop

	descScope.Print = printScope
	descScope.Trace = traceScope
	descScope.Eval = evalNotEvaluable
	descScope.Call = callNotCallable
	descScope.Compare = compareScope
	descScope.Free = freeNoop

	descNative.Print = printNative
	descNative.Trace = traceNone
	descNative.Eval = evalNotEvaluable
	descNative.Call = callNative
	descNative.Compare = compareIdentity
	descNative.Free = freeNoop

	descLambda.Print = printLambda
	descLambda.Trace = traceLambda
	descLambda.Eval = evalNotEvaluable
	descLambda.Call = callLambda
	descLambda.Compare = compareLambda
	descLambda.Free = freeNoop
}
