package lisp

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print writes v's textual representation to w, dispatching through its
// descriptor.
func Print(w io.Writer, v Value) {
	if v == nil {
		io.WriteString(w, "#<no-value>")
		return
	}
	descOf(v).Print(w, v)
}

// Sprint is a convenience wrapper returning Print's output as a string.
func Sprint(v Value) string {
	var b strings.Builder
	Print(&b, v)
	return b.String()
}

func printInteger(w io.Writer, v Value) {
	io.WriteString(w, strconv.FormatInt(v.(*Integer).Value, 10))
}

// printString writes a String's raw contents with no surrounding quotes and
// no escaping: printing is lossy by design.
func printString(w io.Writer, v Value) {
	io.WriteString(w, v.(*String).Value)
}

func printSymbol(w io.Writer, v Value) {
	io.WriteString(w, v.(*Symbol).Value)
}

// printList renders a proper list as "(a b c)", a dotted pair as "(a . b)",
// and the empty list as "()".
func printList(w io.Writer, v Value) {
	c := v.(*Cell)
	if IsNil(c) {
		io.WriteString(w, "()")
		return
	}
	io.WriteString(w, "(")
	first := true
	var cur Value = c
	for {
		cell, ok := cur.(*Cell)
		if !ok {
			io.WriteString(w, " . ")
			Print(w, cur)
			break
		}
		if IsNil(cell) {
			break
		}
		if !first {
			io.WriteString(w, " ")
		}
		first = false
		Print(w, cell.Left)
		cur = cell.Right
	}
	io.WriteString(w, ")")
}

// printScope renders "(scope: K1: V1 K2: V2 ...)", listing only the
// bindings made directly in this scope, not inherited ones. Scope values
// are diagnostic and not meant to round-trip through the reader.
func printScope(w io.Writer, v Value) {
	s := v.(*Scope)
	io.WriteString(w, "(scope:")
	for _, k := range s.keys {
		io.WriteString(w, " "+k+": ")
		Print(w, s.vars[k])
	}
	io.WriteString(w, ")")
}

func printNative(w io.Writer, v Value) {
	fmt.Fprintf(w, "<builtin function %s>", v.(*Native).Name)
}

// printLambda renders "<lambda NAME>" or "<macro NAME>", falling back to
// "(anonymous)" for a lambda never bound to a name.
func printLambda(w io.Writer, v Value) {
	l := v.(*Lambda)
	kind := "lambda"
	if l.Kind == KindMacro {
		kind = "macro"
	}
	name := l.FirstBinding
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(w, "<%s %s>", kind, name)
}
