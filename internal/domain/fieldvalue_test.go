package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFieldValueOf(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want FieldValue
	}{
		{name: "nil", raw: nil, want: FieldValue{}},
		{name: "string", raw: "acme", want: StringValue("acme")},
		{name: "bool", raw: true, want: BoolValue(true)},
		{name: "float64", raw: 12.5, want: NumberValue(12.5)},
		{name: "int", raw: 7, want: NumberValue(7)},
		{name: "string slice", raw: []string{"a", "b"}, want: ListValue([]string{"a", "b"})},
		{name: "interface slice", raw: []interface{}{"a", "b"}, want: ListValue([]string{"a", "b"})},
		{name: "bson array", raw: primitive.A{"x"}, want: ListValue([]string{"x"})},
		{
			name: "map",
			raw:  map[string]interface{}{"currency": "EUR"},
			want: MapValue(map[string]FieldValue{"currency": StringValue("EUR")}),
		},
		{
			name: "bson document",
			raw:  primitive.D{{Key: "currency", Value: "EUR"}},
			want: MapValue(map[string]FieldValue{"currency": StringValue("EUR")}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FieldValueOf(tt.raw)
			if err != nil {
				t.Fatalf("FieldValueOf() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FieldValueOf() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFieldValueOfRejectsUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
	}{
		{name: "struct", raw: struct{}{}},
		{name: "mixed array", raw: []interface{}{"a", 1}},
		{name: "nested bad map", raw: map[string]interface{}{"k": struct{}{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FieldValueOf(tt.raw); !errors.Is(err, ErrUnsupportedFieldValue) {
				t.Errorf("error = %v, want ErrUnsupportedFieldValue", err)
			}
		})
	}
}

func TestFieldValueIsEmpty(t *testing.T) {
	if !StringValue("").IsEmpty() {
		t.Error("empty string not empty")
	}
	if !(FieldValue{}).IsEmpty() {
		t.Error("zero value not empty")
	}
	for _, v := range []FieldValue{
		StringValue("x"),
		NumberValue(0),
		BoolValue(false),
		ListValue(nil),
		MapValue(nil),
	} {
		if v.IsEmpty() {
			t.Errorf("%+v reported empty", v)
		}
	}
}

func TestFieldValueJSONRoundTrip(t *testing.T) {
	section := Section{
		Fields: map[string]FieldValue{
			"company_name": StringValue("Acme"),
			"spend":        NumberValue(1200),
			"managed":      BoolValue(true),
			"providers":    ListValue([]string{"aws", "gcp"}),
			"billing":      MapValue(map[string]FieldValue{"currency": StringValue("EUR")}),
		},
	}

	encoded, err := json.Marshal(section)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded Section
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(decoded.Fields, section.Fields) {
		t.Errorf("round trip = %+v, want %+v", decoded.Fields, section.Fields)
	}
}

func TestFieldValueUnmarshalRejectsBadJSON(t *testing.T) {
	var v FieldValue
	if err := json.Unmarshal([]byte(`{"k": [1, 2]}`), &v); err == nil {
		t.Error("non-string array accepted")
	}
}
