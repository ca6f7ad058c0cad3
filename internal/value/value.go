package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is one node of a decoded output tree.
//
// A nil *Value behaves like a null value in every accessor, so codecs
// can treat absent and null uniformly.
type Value struct {
	kind Kind

	boolVal bool
	numVal  float64
	strVal  string

	listVal []*Value
	mapVal  []Entry
}

// Entry is a single key/value pair of a map value. Entries keep the
// order in which they were added.
type Entry struct {
	Key   string
	Value *Value
}

// Null returns a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Number returns a numeric value. Numbers are float64 because the
// upstream producers are dynamic-language agents with double-precision
// numerics only.
func Number(v float64) *Value {
	return &Value{kind: KindNumber, numVal: v}
}

// String returns a string value.
func String(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// List returns a list value holding the given elements.
func List(elems ...*Value) *Value {
	return &Value{kind: KindList, listVal: elems}
}

// Map returns a map value holding the given entries in order.
func Map(entries ...Entry) *Value {
	return &Value{kind: KindMap, mapVal: entries}
}

// Field builds an Entry for Map construction.
func Field(key string, v *Value) Entry {
	return Entry{Key: key, Value: v}
}

// Kind returns the variant of this value. A nil value reports KindNull.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is null (or nil).
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean payload and whether the value is a bool.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// AsNumber returns the numeric payload and whether the value is a number.
func (v *Value) AsNumber() (float64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	return v.numVal, true
}

// AsString returns the string payload and whether the value is a string.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.strVal, true
}

// AsList returns the element slice and whether the value is a list.
// The returned slice must not be mutated.
func (v *Value) AsList() ([]*Value, bool) {
	if v == nil || v.kind != KindList {
		return nil, false
	}
	return v.listVal, true
}

// AsMap returns the ordered entries and whether the value is a map.
// The returned slice must not be mutated.
func (v *Value) AsMap() ([]Entry, bool) {
	if v == nil || v.kind != KindMap {
		return nil, false
	}
	return v.mapVal, true
}

// Len returns the element count of a list or map, zero otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindList:
		return len(v.listVal)
	case KindMap:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Get returns the value stored under key in a map value, or nil when
// the value is not a map or the key is absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Index returns the i-th element of a list value, or nil when out of
// range or not a list.
func (v *Value) Index(i int) *Value {
	if v == nil || v.kind != KindList || i < 0 || i >= len(v.listVal) {
		return nil
	}
	return v.listVal[i]
}

// Equal reports structural equality: same kind, same payload, same
// element order, same key order.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == other.boolVal
	case KindNumber:
		return v.numVal == other.numVal
	case KindString:
		return v.strVal == other.strVal
	case KindList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for i := range v.mapVal {
			if v.mapVal[i].Key != other.mapVal[i].Key {
				return false
			}
			if !v.mapVal[i].Value.Equal(other.mapVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the value tree.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindList:
		elems := make([]*Value, len(v.listVal))
		for i, e := range v.listVal {
			elems[i] = e.Clone()
		}
		return List(elems...)
	case KindMap:
		entries := make([]Entry, len(v.mapVal))
		for i, e := range v.mapVal {
			entries[i] = Entry{Key: e.Key, Value: e.Value.Clone()}
		}
		return Map(entries...)
	default:
		clone := *v
		return &clone
	}
}

// FormatNumber renders a float64 the way the native form prints it:
// integers without a decimal point or exponent when exactly
// representable, shortest round-trip form otherwise.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// GoString aids debugging output in tests.
func (v *Value) GoString() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindNumber:
		return FormatNumber(v.numVal)
	case KindString:
		return strconv.Quote(v.strVal)
	case KindList:
		out := "["
		for i, e := range v.listVal {
			if i > 0 {
				out += ", "
			}
			out += e.GoString()
		}
		return out + "]"
	case KindMap:
		out := "{"
		for i, e := range v.mapVal {
			if i > 0 {
				out += ", "
			}
			out += fmt.Sprintf("%s: %s", e.Key, e.Value.GoString())
		}
		return out + "}"
	default:
		return "<invalid>"
	}
}
