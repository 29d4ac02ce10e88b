// FILE: lixenwraith/recorder/node/copy.go
package node

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// copier deep-copies caller values into a fresh tree.
// seen maps source container identity to its copy so shared and cyclic references
// keep the same shape in the copy instead of recursing forever.
type copier struct {
	seen  map[containerID]any
	depth int
}

// maxCopyDepth bounds pointer chains that never pass through a tracked container
const maxCopyDepth = 10000

type containerID struct {
	ptr uintptr
	len int // distinguishes sub-slices sharing a backing array
	typ reflect.Type
}

// Copy returns a deep, independent copy of v as a tree.
//
// Accepted inputs are *Object, *Array, map[string]any, []any, json.RawMessage, strings,
// bools, integers, finite floats, json.Number and nil. Maps with string keys, slices and
// arrays of any element type are traversed by reflection; Go maps carry no order, so their
// keys are copied in sorted order. Other values (structs, json.Marshaler and
// encoding.TextMarshaler implementations) are converted through encoding/json, which
// preserves struct field order.
func Copy(v any) (any, error) {
	c := &copier{seen: make(map[containerID]any)}
	return c.copy(v)
}

func (c *copier) copy(v any) (any, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > maxCopyDepth {
		return nil, fmt.Errorf("node: value nested deeper than %d levels", maxCopyDepth)
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case string, bool:
		return val, nil
	case json.Number:
		if _, err := val.Float64(); err != nil {
			return nil, fmt.Errorf("node: invalid number %q", string(val))
		}
		return val, nil
	case int:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(val, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(val, 10)), nil
	case float32:
		return floatNumber(float64(val), 32)
	case float64:
		return floatNumber(val, 64)
	case *Object:
		if val == nil {
			return nil, nil
		}
		return c.copyObject(val)
	case *Array:
		if val == nil {
			return nil, nil
		}
		return c.copyArray(val)
	case json.RawMessage:
		return Parse(val)
	case json.Marshaler, encoding.TextMarshaler:
		return viaJSON(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("node: unsupported map key type %s", rv.Type().Key())
		}
		if rv.IsNil() {
			return nil, nil
		}
		return c.copyMap(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return viaJSON(v) // []byte encodes as base64 text
		}
		return c.copySlice(rv)
	case reflect.Array:
		return c.copySlice(rv)
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return json.Number(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return json.Number(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return floatNumber(rv.Float(), rv.Type().Bits())
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return viaJSON(v)
		}
		return c.copy(rv.Elem().Interface())
	case reflect.Struct:
		return viaJSON(v)
	}

	return nil, fmt.Errorf("node: unsupported value of type %T", v)
}

func (c *copier) copyObject(src *Object) (any, error) {
	id := containerID{ptr: reflect.ValueOf(src).Pointer(), typ: reflect.TypeOf(src)}
	if dup, ok := c.seen[id]; ok {
		return dup, nil
	}
	dst := NewObject()
	c.seen[id] = dst
	for _, k := range src.keys {
		cv, err := c.copy(src.values[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		dst.Set(k, cv)
	}
	return dst, nil
}

func (c *copier) copyArray(src *Array) (any, error) {
	id := containerID{ptr: reflect.ValueOf(src).Pointer(), typ: reflect.TypeOf(src)}
	if dup, ok := c.seen[id]; ok {
		return dup, nil
	}
	dst := &Array{items: make([]any, 0, len(src.items))}
	c.seen[id] = dst
	for i, item := range src.items {
		cv, err := c.copy(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		dst.items = append(dst.items, cv)
	}
	return dst, nil
}

func (c *copier) copyMap(rv reflect.Value) (any, error) {
	id := containerID{ptr: rv.Pointer(), typ: rv.Type()}
	if dup, ok := c.seen[id]; ok {
		return dup, nil
	}
	dst := NewObject()
	c.seen[id] = dst

	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		byKey[k] = iter.Value()
	}
	sort.Strings(keys)

	for _, k := range keys {
		cv, err := c.copy(byKey[k].Interface())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		dst.Set(k, cv)
	}
	return dst, nil
}

func (c *copier) copySlice(rv reflect.Value) (any, error) {
	var id containerID
	tracked := rv.Kind() == reflect.Slice && rv.Len() > 0
	if tracked {
		id = containerID{ptr: rv.Pointer(), len: rv.Len(), typ: rv.Type()}
		if dup, ok := c.seen[id]; ok {
			return dup, nil
		}
	}
	dst := &Array{items: make([]any, 0, rv.Len())}
	if tracked {
		c.seen[id] = dst
	}
	for i := 0; i < rv.Len(); i++ {
		cv, err := c.copy(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		dst.items = append(dst.items, cv)
	}
	return dst, nil
}

func floatNumber(f float64, bits int) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("node: unsupported float value %v", f)
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, bits)), nil
}

// viaJSON converts v by marshaling it and parsing the result back into a tree
func viaJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}
	return Parse(data)
}
