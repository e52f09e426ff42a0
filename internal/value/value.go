// Package value defines the tagged union used for every attribute and data
// context entry: string, number, boolean, array or object.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	String
	Number
	Bool
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable tagged union. The zero Value is Null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// StringVal wraps a string.
func StringVal(s string) Value { return Value{kind: String, str: s} }

// NumberVal wraps a number.
func NumberVal(n float64) Value { return Value{kind: Number, num: n} }

// BoolVal wraps a boolean.
func BoolVal(b bool) Value { return Value{kind: Bool, b: b} }

// ArrayVal wraps a sequence. The slice is copied.
func ArrayVal(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: Array, arr: cp}
}

// ObjectVal wraps a map. The map is copied.
func ObjectVal(m map[string]Value) Value {
	cp := make(map[string]Value, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: Object, obj: cp}
}

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == Null }
func (v Value) IsString() bool { return v.kind == String }
func (v Value) IsNumber() bool { return v.kind == Number }
func (v Value) IsBool() bool   { return v.kind == Bool }
func (v Value) IsArray() bool  { return v.kind == Array }
func (v Value) IsObject() bool { return v.kind == Object }

// AsString returns the string payload when v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the numeric payload. Numeric strings are accepted too,
// since layout files frequently quote sizes.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsBool returns the boolean payload. The strings "true" and "false" are
// accepted.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case Bool:
		return v.b, true
	case String:
		switch v.str {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// Elements returns the elements of an Array, or nil.
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// Len is the element count of an Array or the key count of an Object.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	}
	return 0
}

// Index returns the i-th element of an Array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Get returns the entry for key in an Object.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	e, ok := v.obj[key]
	return e, ok
}

// Keys returns the Object keys in sorted order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fields returns a copy of the Object entries.
func (v Value) Fields() map[string]Value {
	if v.kind != Object {
		return nil
	}
	cp := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		cp[k] = e
	}
	return cp
}

// Equal reports deep equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case String:
		return v.str == o.str
	case Number:
		return v.num == o.num
	case Bool:
		return v.b == o.b
	case Array:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value the way it appears when spliced into text.
// Integral numbers have no decimal point.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return ""
	case String:
		return v.str
	case Number:
		return FormatNumber(v.num)
	case Bool:
		return strconv.FormatBool(v.b)
	default:
		b, err := json.Marshal(v.ToAny())
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// FormatNumber prints integral floats without a fractional part.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToAny converts v to plain Go values (string, float64, bool, []any,
// map[string]any or nil).
func (v Value) ToAny() any {
	switch v.kind {
	case String:
		return v.str
	case Number:
		return v.num
	case Bool:
		return v.b
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.ToAny()
		}
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToAny())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
