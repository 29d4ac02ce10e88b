// FILE: lixenwraith/recorder/node/node.go
// Package node models the JSON-like trees carried by structured log entries.
//
// A tree is built from *Object (string keys in insertion order), *Array and the
// scalars string, json.Number, bool and nil. Containers are pointers so that node
// identity is well defined, which lets traversals detect reference cycles.
package node

// Object is a string-keyed map that preserves key insertion order
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key. An existing key keeps its original position.
func (o *Object) Set(key string, v any) *Object {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.keys)
}

// Array is an ordered sequence of values
type Array struct {
	items []any
}

// NewArray creates an array holding items
func NewArray(items ...any) *Array {
	a := &Array{items: make([]any, 0, len(items))}
	a.items = append(a.items, items...)
	return a
}

// Append adds v at the end
func (a *Array) Append(v any) *Array {
	a.items = append(a.items, v)
	return a
}

// Get returns the element at index i
func (a *Array) Get(i int) any {
	return a.items[i]
}

// Set replaces the element at index i
func (a *Array) Set(i int, v any) {
	a.items[i] = v
}

// Len returns the number of elements
func (a *Array) Len() int {
	return len(a.items)
}

// IsContainer reports whether v is an *Object or *Array
func IsContainer(v any) bool {
	switch v.(type) {
	case *Object, *Array:
		return true
	}
	return false
}
