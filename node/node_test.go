// FILE: lixenwraith/recorder/node/node_test.go
package node

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject(t *testing.T) {
	obj := NewObject().Set("b", 1).Set("a", 2).Set("c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())

	// Overwrite keeps position
	obj.Set("b", 10)
	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
	v, ok := obj.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	obj.Delete("a")
	obj.Delete("missing")
	assert.Equal(t, []string{"b", "c"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	// Keys returns a copy
	keys := obj.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"b", "c"}, obj.Keys())

	var zero Object
	zero.Set("x", nil)
	assert.Equal(t, 1, zero.Len())
}

func TestArray(t *testing.T) {
	arr := NewArray("a", "b")
	arr.Append("c")
	arr.Set(0, "z")
	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, "z", arr.Get(0))
	assert.Equal(t, "c", arr.Get(2))

	assert.True(t, IsContainer(arr))
	assert.True(t, IsContainer(NewObject()))
	assert.False(t, IsContainer("s"))
}

func TestCopyIsIndependent(t *testing.T) {
	inner := NewObject().Set("name", "alice")
	src := NewObject().Set("user", inner).Set("tags", NewArray("x"))

	cp, err := Copy(src)
	require.NoError(t, err)

	// Mutating the source after the copy must not affect it
	inner.Set("name", "bob")
	src.Set("added", true)

	dst := cp.(*Object)
	assert.Equal(t, []string{"user", "tags"}, dst.Keys())
	user, _ := dst.Get("user")
	name, _ := user.(*Object).Get("name")
	assert.Equal(t, "alice", name)
}

func TestCopyConvertsGoValues(t *testing.T) {
	type account struct {
		Zeta  string `json:"zeta"`
		Alpha int    `json:"alpha"`
	}

	src := map[string]any{
		"b":       int64(7),
		"a":       []string{"x", "y"},
		"f":       1.5,
		"struct":  account{Zeta: "z", Alpha: 1},
		"raw":     json.RawMessage(`{"q":1,"p":2}`),
		"nothing": nil,
	}

	cp, err := Copy(src)
	require.NoError(t, err)
	obj := cp.(*Object)

	// Go maps are copied in sorted key order
	assert.Equal(t, []string{"a", "b", "f", "nothing", "raw", "struct"}, obj.Keys())

	b, _ := obj.Get("b")
	assert.Equal(t, json.Number("7"), b)
	f, _ := obj.Get("f")
	assert.Equal(t, json.Number("1.5"), f)

	a, _ := obj.Get("a")
	require.IsType(t, &Array{}, a)
	assert.Equal(t, "y", a.(*Array).Get(1))

	// Structs keep field declaration order
	s, _ := obj.Get("struct")
	assert.Equal(t, []string{"zeta", "alpha"}, s.(*Object).Keys())

	// Raw JSON keeps document order
	raw, _ := obj.Get("raw")
	assert.Equal(t, []string{"q", "p"}, raw.(*Object).Keys())
}

func TestCopyPreservesCycles(t *testing.T) {
	src := NewObject().Set("name", "loop")
	src.Set("self", src)

	cp, err := Copy(src)
	require.NoError(t, err)

	dst := cp.(*Object)
	self, _ := dst.Get("self")
	assert.Same(t, dst, self)
	assert.NotSame(t, src, dst)

	m := map[string]any{}
	m["me"] = m
	cp, err = Copy(m)
	require.NoError(t, err)
	me, _ := cp.(*Object).Get("me")
	assert.Same(t, cp, me)
}

func TestCopyRejectsUnsupported(t *testing.T) {
	for name, v := range map[string]any{
		"nan":        math.NaN(),
		"inf":        math.Inf(1),
		"nested nan": map[string]any{"x": []any{math.NaN()}},
		"int keys":   map[int]string{1: "a"},
		"channel":    make(chan int),
		"bad raw":    json.RawMessage(`{"a":`),
	} {
		_, err := Copy(v)
		assert.Error(t, err, name)
	}
}

func TestParse(t *testing.T) {
	v, err := ParseString(`{"z":1,"a":{"y":[true,null,"s"],"b":12345678901234567890}}`)
	require.NoError(t, err)

	obj := v.(*Object)
	assert.Equal(t, []string{"z", "a"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, []string{"y", "b"}, a.(*Object).Keys())

	// Large integers survive without float rounding
	big, _ := a.(*Object).Get("b")
	assert.Equal(t, json.Number("12345678901234567890"), big)

	y, _ := a.(*Object).Get("y")
	arr := y.(*Array)
	assert.Equal(t, true, arr.Get(0))
	assert.Nil(t, arr.Get(1))
	assert.Equal(t, "s", arr.Get(2))

	v, err = ParseString(`"scalar"`)
	require.NoError(t, err)
	assert.Equal(t, "scalar", v)

	_, err = ParseString(`{} {}`)
	assert.Error(t, err)
	_, err = ParseString(`[1,`)
	assert.Error(t, err)
}
