package lisp

// Bind associates name with v in scope, shadowing any binding of the same
// name in an enclosing scope. Keys are compared by string
// content, never by Symbol pointer identity, so interning is purely an
// optimization and never observable here.
//
// Binding a Lambda that has not yet been given a display name records name
// as its FirstBinding; later rebindings do not overwrite it, matching the
// "functions remember the first name they were bound under" rule used by
// print and dump-stack.
func (s *Scope) Bind(name string, v Value) {
	if _, exists := s.vars[name]; !exists {
		s.keys = append(s.keys, name)
	}
	s.vars[name] = v
	if l, ok := v.(*Lambda); ok && l.FirstBinding == "" {
		l.FirstBinding = name
	}
}

// Lookup searches s and its ancestors for name, returning the bound value
// and true, or nil and false if no scope in the chain binds it.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set rebinds name in the nearest enclosing scope that already binds it,
// without creating a new binding. It reports whether such a scope was
// found.
func (s *Scope) Set(name string, v Value) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return true
		}
	}
	return false
}

// Keys returns the names bound directly in s, in bind order, not including
// ancestor scopes.
func (s *Scope) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func traceScope(v Value) []Value {
	s := v.(*Scope)
	out := make([]Value, 0, len(s.keys)+1)
	for _, k := range s.keys {
		out = append(out, s.vars[k])
	}
	if s.parent != nil {
		out = append(out, s.parent)
	}
	return out
}

func compareScope(a, b Value) bool { return a == b }
