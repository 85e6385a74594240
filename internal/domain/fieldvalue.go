package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUnsupportedFieldValue is returned when a field payload falls outside
// the closed set of shapes a section field may carry.
var ErrUnsupportedFieldValue = errors.New("unsupported field value")

// FieldKind enumerates the closed variant of shapes a section field value
// can take on the wire: scalar string, number, boolean, string array, or a
// nested map of further field values.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldBool
	FieldStringList
	FieldMap
)

// FieldValue is the tagged value stored under Section.Fields. The zero
// value is an empty string, which renderers treat as "not answered".
type FieldValue struct {
	kind FieldKind
	str  string
	num  float64
	b    bool
	list []string
	m    map[string]FieldValue
}

func StringValue(s string) FieldValue  { return FieldValue{kind: FieldString, str: s} }
func NumberValue(n float64) FieldValue { return FieldValue{kind: FieldNumber, num: n} }
func BoolValue(b bool) FieldValue      { return FieldValue{kind: FieldBool, b: b} }

func ListValue(items []string) FieldValue {
	return FieldValue{kind: FieldStringList, list: items}
}

func MapValue(m map[string]FieldValue) FieldValue {
	return FieldValue{kind: FieldMap, m: m}
}

func (v FieldValue) Kind() FieldKind            { return v.kind }
func (v FieldValue) String() string             { return v.str }
func (v FieldValue) Number() float64            { return v.num }
func (v FieldValue) Bool() bool                 { return v.b }
func (v FieldValue) List() []string             { return v.list }
func (v FieldValue) Map() map[string]FieldValue { return v.m }

// IsEmpty reports whether the value should be omitted from rendered output
// (null, undefined and empty string all decode to this state).
func (v FieldValue) IsEmpty() bool {
	return v.kind == FieldString && v.str == ""
}

// Interface returns the plain Go representation used for JSON and BSON
// encoding.
func (v FieldValue) Interface() interface{} {
	switch v.kind {
	case FieldNumber:
		return v.num
	case FieldBool:
		return v.b
	case FieldStringList:
		return v.list
	case FieldMap:
		out := make(map[string]interface{}, len(v.m))
		for k, nested := range v.m {
			out[k] = nested.Interface()
		}
		return out
	default:
		return v.str
	}
}

// FieldValueOf converts a decoded wire value into the closed variant.
func FieldValueOf(raw interface{}) (FieldValue, error) {
	switch val := raw.(type) {
	case nil:
		return FieldValue{}, nil
	case string:
		return StringValue(val), nil
	case bool:
		return BoolValue(val), nil
	case float64:
		return NumberValue(val), nil
	case float32:
		return NumberValue(float64(val)), nil
	case int:
		return NumberValue(float64(val)), nil
	case int32:
		return NumberValue(float64(val)), nil
	case int64:
		return NumberValue(float64(val)), nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("%w: %v", ErrUnsupportedFieldValue, raw)
		}
		return NumberValue(f), nil
	case []string:
		return ListValue(val), nil
	case []interface{}:
		return listValueOf(val)
	case primitive.A:
		return listValueOf(val)
	case map[string]interface{}:
		return mapValueOf(val)
	case primitive.M:
		return mapValueOf(val)
	case primitive.D:
		m := make(map[string]interface{}, len(val))
		for _, elem := range val {
			m[elem.Key] = elem.Value
		}
		return mapValueOf(m)
	default:
		return FieldValue{}, fmt.Errorf("%w: %T", ErrUnsupportedFieldValue, raw)
	}
}

func listValueOf(items []interface{}) (FieldValue, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return FieldValue{}, fmt.Errorf("%w: array element %T", ErrUnsupportedFieldValue, item)
		}
		out = append(out, s)
	}
	return ListValue(out), nil
}

func mapValueOf(m map[string]interface{}) (FieldValue, error) {
	out := make(map[string]FieldValue, len(m))
	for k, raw := range m {
		nested, err := FieldValueOf(raw)
		if err != nil {
			return FieldValue{}, err
		}
		out[k] = nested
	}
	return MapValue(out), nil
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FieldValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v FieldValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(v.Interface())
}

func (v *FieldValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	var raw interface{}
	if err := rv.Unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := FieldValueOf(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
