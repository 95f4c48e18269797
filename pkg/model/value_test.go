package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Equal(t *testing.T) {
	assert.True(t, Value{Kind: KindString, String: "BSc"}.Equal(Value{Kind: KindString, String: "BSc"}))
	assert.False(t, Value{Kind: KindString, String: "BSc"}.Equal(Value{Kind: KindString, String: "MSc"}))
	assert.False(t, Value{Kind: KindString, String: "1"}.Equal(Value{Kind: KindInt, Int: 1}))

	arr1 := Value{Kind: KindArray, Array: []Value{{Kind: KindInt, Int: 1}, {Kind: KindInt, Int: 2}}}
	arr2 := Value{Kind: KindArray, Array: []Value{{Kind: KindInt, Int: 1}, {Kind: KindInt, Int: 2}}}
	arr3 := Value{Kind: KindArray, Array: []Value{{Kind: KindInt, Int: 2}, {Kind: KindInt, Int: 1}}}
	assert.True(t, arr1.Equal(arr2))
	assert.False(t, arr1.Equal(arr3))

	m1 := Value{Kind: KindMap, Map: map[string]Value{"a": {Kind: KindBool, Bool: true}}}
	m2 := Value{Kind: KindMap, Map: map[string]Value{"a": {Kind: KindBool, Bool: true}}}
	m3 := Value{Kind: KindMap, Map: map[string]Value{"a": {Kind: KindBool, Bool: false}}}
	assert.True(t, m1.Equal(m2))
	assert.False(t, m1.Equal(m3))
}

func TestValue_FromAny_ToAny_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "BSc",
		"count": float64(3),
		"active": true,
		"tags": []any{"a", "b"},
		"nested": map[string]any{"x": float64(1)},
		"missing": nil,
	}
	v, err := FromAny(in)
	require.NoError(t, err)
	requireKindMap(t, v)
	out := v.ToAny().(map[string]any)
	assert.Equal(t, in["name"], out["name"])
	assert.Equal(t, in["count"], out["count"])
	assert.Equal(t, in["active"], out["active"])
	assert.Equal(t, in["tags"], out["tags"])
	assert.Nil(t, out["missing"])
}

func requireKindMap(t *testing.T, v Value) {
	t.Helper()
	assert.Equal(t, KindMap, v.Kind)
}

func TestValue_FromAny_Bytes(t *testing.T) {
	v, err := FromAny([]byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, KindBytes, v.Kind)
	assert.Equal(t, []byte{1, 2, 3}, v.ToAny())
}

func TestValue_FromAny_NonStringMapKeyErrors(t *testing.T) {
	_, err := FromAny(map[any]any{1: "a"})
	assert.Error(t, err)
}

func TestValue_FromAny_NonStringMapKeyErrors_Nested(t *testing.T) {
	_, err := FromAny(map[any]any{"ok": map[any]any{2: "b"}})
	assert.Error(t, err)
}
