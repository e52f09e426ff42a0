package value

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromAny converts decoded JSON or YAML data into a Value. Unsupported Go
// types are rendered through fmt and stored as strings.
func FromAny(raw any) Value {
	switch t := raw.(type) {
	case nil:
		return NullValue()
	case Value:
		return t
	case string:
		return StringVal(t)
	case bool:
		return BoolVal(t)
	case float64:
		return NumberVal(t)
	case float32:
		return NumberVal(float64(t))
	case int:
		return NumberVal(float64(t))
	case int64:
		return NumberVal(float64(t))
	case int32:
		return NumberVal(float64(t))
	case uint64:
		return NumberVal(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return StringVal(t.String())
		}
		return NumberVal(f)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Value{kind: Array, arr: elems}
	case []Value:
		return ArrayVal(t...)
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			obj[k] = FromAny(e)
		}
		return Value{kind: Object, obj: obj}
	case map[string]Value:
		return ObjectVal(t)
	case map[any]any:
		obj := make(map[string]Value, len(t))
		for k, e := range t {
			obj[fmt.Sprint(k)] = FromAny(e)
		}
		return Value{kind: Object, obj: obj}
	default:
		return StringVal(fmt.Sprint(t))
	}
}

// FromCty converts a known cty value into a Value.
func FromCty(v cty.Value) (Value, error) {
	if v.IsNull() {
		return NullValue(), nil
	}
	if !v.IsKnown() {
		return Value{}, fmt.Errorf("cannot convert unknown value of type %s", v.Type().FriendlyName())
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		var s string
		if err := gocty.FromCtyValue(v, &s); err != nil {
			return Value{}, err
		}
		return StringVal(s), nil
	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return Value{}, err
		}
		return NumberVal(f), nil
	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return Value{}, err
		}
		return BoolVal(b), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		elems := make([]Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e, err := FromCty(ev)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, e)
		}
		return Value{kind: Array, arr: elems}, nil
	case ty.IsMapType() || ty.IsObjectType():
		obj := make(map[string]Value, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			e, err := FromCty(ev)
			if err != nil {
				return Value{}, err
			}
			obj[kv.AsString()] = e
		}
		return Value{kind: Object, obj: obj}, nil
	}
	return Value{}, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
}

// ToCty converts v into a cty value. Arrays become tuples and objects become
// cty objects so heterogeneous content survives the round trip.
func ToCty(v Value) cty.Value {
	switch v.kind {
	case String:
		return cty.StringVal(v.str)
	case Number:
		return cty.NumberVal(new(big.Float).SetFloat64(v.num))
	case Bool:
		return cty.BoolVal(v.b)
	case Array:
		if len(v.arr) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = ToCty(e)
		}
		return cty.TupleVal(elems)
	case Object:
		if len(v.obj) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v.obj))
		for k, e := range v.obj {
			attrs[k] = ToCty(e)
		}
		return cty.ObjectVal(attrs)
	}
	return cty.NullVal(cty.DynamicPseudoType)
}
