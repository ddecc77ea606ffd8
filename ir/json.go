package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// FromYAML decodes a YAML document (or, YAML being a superset, a JSON
// document such as an .ipynb file) into a node tree.  Mapping key order is
// preserved.
func FromYAML(data []byte) (*Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return FromAny(v)
}

// FromAny builds a node tree from decoded document values
// (yaml.MapSlice / map[string]any / []any / scalars).
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return &Node{Type: NumberType, Number: fmt.Sprintf("%d", x)}, nil
		}
		return FromInt(int64(x)), nil
	case float64:
		return FromFloat(x), nil
	case yaml.MapSlice:
		kvs := make([]KeyVal, 0, len(x))
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", ErrParse, item.Key)
			}
			val, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: FromString(key), Val: val})
		}
		return FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*Node, len(x))
		for k, mv := range x {
			val, err := FromAny(mv)
			if err != nil {
				return nil, err
			}
			m[k] = val
		}
		return FromMap(m), nil
	case []any:
		vals := make([]*Node, 0, len(x))
		for _, e := range x {
			val, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals = append(vals, val)
		}
		return FromSlice(vals), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value %T", ErrParse, v)
	}
}

// ToJSON encodes a node tree as compact JSON, preserving object field
// order.
func ToJSON(y *Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		if y.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberType:
		switch {
		case y.Int64 != nil:
			fmt.Fprintf(buf, "%d", *y.Int64)
		case y.Float64 != nil:
			d, err := json.Marshal(*y.Float64)
			if err != nil {
				return err
			}
			buf.Write(d)
		default:
			buf.WriteString(y.Number)
		}
	case StringType:
		d, err := json.Marshal(y.String)
		if err != nil {
			return err
		}
		buf.Write(d)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			d, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		panic("type")
	}
	return nil
}
