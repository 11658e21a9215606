package lisp

// ringQueue is the preallocated FIFO work queue used by Mark.
// It grows by doubling when full, mirroring the C runtime's ringbuf.c
// (see DESIGN.md / _examples/original_source/src/ringbuf.c).
type ringQueue struct {
	data  []Value
	start int
	count int
}

func newRingQueue(initial int) ringQueue {
	return ringQueue{data: make([]Value, initial)}
}

func (q *ringQueue) grow() {
	old := q.data
	next := make([]Value, len(old)*2)
	for i := 0; i < q.count; i++ {
		next[i] = old[(q.start+i)%len(old)]
	}
	q.data = next
	q.start = 0
}

func (q *ringQueue) pushBack(v Value) {
	if q.count >= len(q.data) {
		q.grow()
	}
	idx := (q.start + q.count) % len(q.data)
	q.data[idx] = v
	q.count++
}

func (q *ringQueue) popFront() Value {
	v := q.data[q.start]
	q.data[q.start] = nil
	q.start = (q.start + 1) % len(q.data)
	q.count--
	return v
}

// Mark performs a breadth-first walk from v, marking every value reachable
// from it. Call it once per root before Sweep; any value (and everything it
// transitively references) that was not reached by some call to Mark since
// the last Sweep is reclaimed.
func (ctx *Context) Mark(v Value) {
	if v == nil {
		return
	}
	ctx.hasMarkedThisCycle = true
	h := v.header()
	if h.mark == marked {
		return
	}
	ctx.queue.pushBack(v)
	h.mark = queued

	for ctx.queue.count > 0 {
		cur := ctx.queue.popFront()
		ch := cur.header()
		ch.mark = marked
		for _, child := range descOf(cur).Trace(cur) {
			if child == nil {
				continue
			}
			cm := child.header()
			if cm.mark == unmarked {
				cm.mark = queued
				ctx.queue.pushBack(child)
			}
		}
	}
}

// markInternalRoots marks the context-owned roots that are not exposed
// directly to the host: the call stack, the error channel's stack-trace
// snapshot, and the interning caches.
func (ctx *Context) markInternalRoots() {
	for _, f := range ctx.callStack {
		ctx.markNoFlag(f.Callee)
	}
	if ctx.err != nil {
		for _, f := range ctx.err.Stack {
			ctx.markNoFlag(f.Callee)
		}
	}
	for _, s := range ctx.strCache {
		ctx.markNoFlag(s)
	}
	for _, s := range ctx.symCache {
		ctx.markNoFlag(s)
	}
}

// markNoFlag marks v without flipping hasMarkedThisCycle; it is used for
// internal roots, which must not by themselves turn a teardown sweep into a
// partial one.
func (ctx *Context) markNoFlag(v Value) {
	if v == nil {
		return
	}
	h := v.header()
	if h.mark == marked {
		return
	}
	ctx.queue.pushBack(v)
	h.mark = queued
	for ctx.queue.count > 0 {
		cur := ctx.queue.popFront()
		ch := cur.header()
		ch.mark = marked
		for _, child := range descOf(cur).Trace(cur) {
			if child == nil {
				continue
			}
			cm := child.header()
			if cm.mark == unmarked {
				cm.mark = queued
				ctx.queue.pushBack(child)
			}
		}
	}
}

// Sweep reclaims every value not marked since the last call to Mark.
//
// If the host marked anything this cycle, the internal roots (call stack,
// error stack, interning caches) are additionally marked before sweeping.
// If the host marked nothing, this is a full teardown: the call stack is
// reset, the error channel is cleared, and the internal roots are left
// unmarked so they are reclaimed along with everything else. This two-mode
// behavior is what lets Context.Free cascade into freeing everything.
func (ctx *Context) Sweep() {
	if ctx.hasMarkedThisCycle {
		ctx.markInternalRoots()
	} else {
		ctx.callStack = nil
		ctx.stackDepth = 0
		ctx.err = nil
	}

	prev := ctx.head
	cur := prev.header().next
	for cur != nil {
		ch := cur.header()
		if ch.mark != marked {
			next := ch.next
			descOf(cur).Free(ctx, cur)
			prev.header().next = next
			cur = next
			continue
		}
		ch.mark = unmarked
		prev = cur
		cur = ch.next
	}
	ctx.tail = prev
	ctx.head.header().mark = unmarked

	ctx.hasMarkedThisCycle = false
}
