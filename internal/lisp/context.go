package lisp

import "io"

// Frame is a single call-stack entry: the callee being invoked. Every call
// pushes a frame onto the context's call stack and pops it on return, error
// paths included.
type Frame struct {
	Callee Value
}

// Context is the top-level container owning the heap, call stack, error
// channel and interning caches (GLOSSARY). Everything the interpreter needs
// to run lives on a *Context; there is no package-level mutable state.
type Context struct {
	head, tail Value
	nilValue   *Cell

	queue              ringQueue
	hasMarkedThisCycle bool

	userPointer any

	err *LangError

	callStack  []Frame
	stackDepth int

	internStrings bool
	internSymbols bool
	strCache      map[string]*String
	symCache      map[string]*Symbol

	// Diag is where `print` and `dump-stack` write their output.
	Diag io.Writer
}

// New creates a fresh context with interning enabled for both strings and
// symbols and diagnostic output directed at w.
func New(w io.Writer) *Context {
	ctx := &Context{
		internStrings: true,
		internSymbols: true,
		strCache:      make(map[string]*String),
		symCache:      make(map[string]*Symbol),
		Diag:          w,
	}
	ctx.nilValue = &Cell{}
	ctx.nilValue.desc = descList
	ctx.head = ctx.nilValue
	ctx.tail = ctx.nilValue
	ctx.queue = newRingQueue(16)
	return ctx
}

// SetInterning toggles the string/symbol interning caches. Disabling
// interning after values have already been cached does not evict them; it
// only stops new factories from consulting the cache.
func (ctx *Context) SetInterning(strings, symbols bool) {
	ctx.internStrings = strings
	ctx.internSymbols = symbols
}

// Nil returns the context-singleton empty list.
func (ctx *Context) Nil() Value { return ctx.nilValue }

// SetUserPointer attaches an opaque host pointer to the context. It is
// never inspected or traced by the collector.
func (ctx *Context) SetUserPointer(p any) { ctx.userPointer = p }

// UserPointer retrieves the opaque host pointer, or nil if none was set.
func (ctx *Context) UserPointer() any { return ctx.userPointer }

// Free releases every value still associated with the context. It is
// equivalent to calling Sweep without having marked anything first, which
// triggers the collector's full-teardown mode.
func (ctx *Context) Free() {
	ctx.Sweep()
}

func (ctx *Context) alloc(v Value) {
	h := v.header()
	h.mark = unmarked
	h.next = nil
	ctx.tail.header().next = v
	ctx.tail = v
}

// NewInteger allocates an Integer with the given value.
func (ctx *Context) NewInteger(n int64) *Integer {
	v := &Integer{Value: n}
	v.desc = descInt
	ctx.alloc(v)
	return v
}

// NewCell allocates a cons cell (left . right).
func (ctx *Context) NewCell(left, right Value) *Cell {
	v := &Cell{Left: left, Right: right}
	v.desc = descList
	ctx.alloc(v)
	return v
}

// NewString returns a String value for s, honoring interning when enabled.
// owned marks whether the payload should be considered interpreter-owned;
// on a cache hit the cached value is returned and owned is ignored.
func (ctx *Context) NewString(s string, owned bool) *String {
	if ctx.internStrings {
		if cached, ok := ctx.strCache[s]; ok {
			return cached
		}
	}
	v := &String{Value: s, Owned: owned}
	v.desc = descString
	ctx.alloc(v)
	if ctx.internStrings {
		ctx.strCache[s] = v
	}
	return v
}

// NewSymbol returns a Symbol value for name, honoring interning when
// enabled.
func (ctx *Context) NewSymbol(name string) *Symbol {
	if ctx.internSymbols {
		if cached, ok := ctx.symCache[name]; ok {
			return cached
		}
	}
	v := &Symbol{Value: name, Owned: true}
	v.desc = descSymbol
	ctx.alloc(v)
	if ctx.internSymbols {
		ctx.symCache[name] = v
	}
	return v
}

// NewScope allocates an empty scope with the given optional parent.
func (ctx *Context) NewScope(parent *Scope) *Scope {
	v := &Scope{parent: parent, vars: make(map[string]Value)}
	v.desc = descScope
	ctx.alloc(v)
	return v
}

// NewNative binds a host function as a callable value. It is not inserted
// into any scope; use Bind for that.
func (ctx *Context) NewNative(name string, fn NativeFunc, preEval bool, userdata any) *Native {
	v := &Native{Name: name, Fn: fn, UserData: userdata, PreEval: preEval}
	v.desc = descNative
	ctx.alloc(v)
	return v
}

// NewLambda allocates a function- or macro-kind lambda closing over scope.
func (ctx *Context) NewLambda(params, body Value, closure *Scope, kind LambdaKind) *Lambda {
	v := &Lambda{Params: params, Body: body, Closure: closure, Kind: kind}
	v.desc = descLambda
	ctx.alloc(v)
	return v
}

func (ctx *Context) uncacheString(s *String) {
	if cached, ok := ctx.strCache[s.Value]; ok && cached == s {
		delete(ctx.strCache, s.Value)
	}
}

func (ctx *Context) uncacheSymbol(s *Symbol) {
	if cached, ok := ctx.symCache[s.Value]; ok && cached == s {
		delete(ctx.symCache, s.Value)
	}
}

func (ctx *Context) pushFrame(callee Value) {
	ctx.callStack = append(ctx.callStack, Frame{Callee: callee})
	ctx.stackDepth++
}

func (ctx *Context) popFrame() {
	ctx.callStack = ctx.callStack[:len(ctx.callStack)-1]
	ctx.stackDepth--
}

// StackDepth returns the current call-stack depth.
func (ctx *Context) StackDepth() int { return ctx.stackDepth }
