package model

import "vc/pkg/vcerr"

// ValueKind tags the variant carried by a Value.
type ValueKind int

// The claim-value sum type used wherever a format-neutral claim leaf needs
// structural comparison (partition/value-preservation properties P1/P3 in
// SPEC_FULL) without committing to JSON's or CBOR's native Go mapping.
const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindMap
)

// Value is a dynamic claim value: Null | Bool | Int | Float | String | Bytes | Array | Map.
// Redactors parse the format-native tree (JSON object/array/scalar or CBOR
// map/array/scalar) into trees of Value so that C3/C4 can reason about
// leaves structurally, independent of JSON vs CBOR typing quirks (float64
// vs int64, []byte vs string, etc).
type Value struct {
	Kind   ValueKind
	Bool   bool
	Int    int64
	Float  float64
	String string
	Bytes  []byte
	Array  []Value
	Map    map[string]Value
}

// Equal reports structural (canonical) equality between two values, as
// required by P3 (value preservation) and the redactor's determinism
// contract.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindString:
		return v.String == o.String
	case KindBytes:
		if len(v.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range v.Bytes {
			if v.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	case KindArray:
		if len(v.Array) != len(o.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(o.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, vv := range v.Map {
			ov, ok := o.Map[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// FromAny lifts a decoded JSON/CBOR value (the shapes produced by
// encoding/json and fxamacker/cbor when unmarshalled into `any`) into a
// Value tree. A map[any]any entry keyed by anything other than a string
// (fxamacker/cbor's generic decoding of any CBOR map, at any nesting depth,
// not just the registered-integer-key root a format's own ParseClaims
// already translates) is a malformed-input error rather than silently
// dropped data: the decoded tree must account for every entry the wire
// bytes carried.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case bool:
		return Value{Kind: KindBool, Bool: x}, nil
	case int64:
		return Value{Kind: KindInt, Int: x}, nil
	case int:
		return Value{Kind: KindInt, Int: int64(x)}, nil
	case uint64:
		return Value{Kind: KindInt, Int: int64(x)}, nil
	case float64:
		return Value{Kind: KindFloat, Float: x}, nil
	case string:
		return Value{Kind: KindString, String: x}, nil
	case []byte:
		return Value{Kind: KindBytes, Bytes: x}, nil
	case []any:
		arr := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{Kind: KindArray, Array: arr}, nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = ev
		}
		return Value{Kind: KindMap, Map: m}, nil
	case map[any]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return Value{}, vcerr.ErrMalformedDisclosure
			}
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			m[ks] = ev
		}
		return Value{Kind: KindMap, Map: m}, nil
	default:
		return Value{Kind: KindNull}, nil
	}
}

// ToAny lowers a Value tree back into the native `any` shapes JSON/CBOR
// marshallers expect.
func (v Value) ToAny() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.String
	case KindBytes:
		return v.Bytes
	case KindArray:
		arr := make([]any, len(v.Array))
		for i, e := range v.Array {
			arr[i] = e.ToAny()
		}
		return arr
	case KindMap:
		m := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			m[k] = e.ToAny()
		}
		return m
	}
	return nil
}
