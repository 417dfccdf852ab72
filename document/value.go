// Package document models schema-less JSON documents as a tree of tagged
// values. Object keys keep their source order so a document can be loaded,
// edited and written back without reshuffling unrelated entries.
package document

import (
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single JSON value. The zero Value is JSON null.
//
// Numbers are held as their literal text so that values read from disk are
// written back exactly as they were.
type Value struct {
	kind  Kind
	b     bool
	s     string
	items []Value
	obj   *Object
}

func NullValue() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue converts f to a JSON number. NaN and infinities have no JSON
// form and become null.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue()
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'f', -1, 64)}
	}
	return Value{kind: KindNumber, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NumberLiteral wraps an already valid JSON number literal.
func NumberLiteral(lit string) Value { return Value{kind: KindNumber, s: lit} }

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// ObjectValue wraps o. A nil o is treated as an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for any other kind.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Str returns the string payload; empty for any other kind.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Float parses the number payload.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Items returns the array elements, or nil for non-arrays.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Object returns the object payload, or nil for non-objects. The returned
// object is shared with v: edits through it are visible in v.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// String renders v the way a record field is compared during search:
// strings are returned bare, numbers as their literal, booleans and null by
// their JSON keyword, arrays and objects as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber, KindString:
		return v.s
	default:
		b, err := Encode(v, "")
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Equal reports deep equality. Object key order is ignored; numbers compare
// by numeric value when both literals parse.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.s == o.s
	case KindNumber:
		if v.s == o.s {
			return true
		}
		a, aok := v.Float()
		b, bok := o.Float()
		return aok && bok && a == b
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, it := range v.items {
			items[i] = it.Clone()
		}
		return Value{kind: KindArray, items: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler with compact output.
func (v Value) MarshalJSON() ([]byte, error) {
	return Encode(v, "")
}
