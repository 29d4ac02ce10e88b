// FILE: lixenwraith/recorder/redact/redact.go
// Package redact applies mask rules to every string field of a node tree, in place.
package redact

import (
	"github.com/lixenwraith/recorder/node"
)

// Evaluator maps a field key and value to the value that should be written.
// mask.Chain and mask.Set satisfy it.
type Evaluator interface {
	Evaluate(key, value string) string
}

// Redact masks string fields of root in place and returns the resulting root.
//
// Object fields are evaluated with their own key; array elements carry no field
// name and are evaluated with the empty key. Numbers, booleans and null are left
// untouched. A container reached a second time, through a cycle or a shared
// reference, is not descended into again.
//
// A bare string root cannot be updated in place, so its masked value is returned.
func Redact(root any, ev Evaluator) any {
	if ev == nil {
		return root
	}
	if s, ok := root.(string); ok {
		return ev.Evaluate("", s)
	}
	r := &redactor{ev: ev, visited: make(map[any]struct{})}
	r.walk(root)
	return root
}

type redactor struct {
	ev      Evaluator
	visited map[any]struct{}
}

// enter marks a container as visited, reporting false if it was seen before
func (r *redactor) enter(n any) bool {
	if _, ok := r.visited[n]; ok {
		return false
	}
	r.visited[n] = struct{}{}
	return true
}

func (r *redactor) walk(v any) {
	switch n := v.(type) {
	case *node.Object:
		if n == nil || !r.enter(n) {
			return
		}
		for _, key := range n.Keys() {
			child, _ := n.Get(key)
			if s, ok := child.(string); ok {
				n.Set(key, r.ev.Evaluate(key, s))
				continue
			}
			r.walk(child)
		}
	case *node.Array:
		if n == nil || !r.enter(n) {
			return
		}
		for i := 0; i < n.Len(); i++ {
			if s, ok := n.Get(i).(string); ok {
				n.Set(i, r.ev.Evaluate("", s))
				continue
			}
			r.walk(n.Get(i))
		}
	}
}
