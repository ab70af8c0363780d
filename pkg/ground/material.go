package ground

import (
	"encoding/json"
	"fmt"

	"github.com/strataforge/agsi/pkg/errors"
)

// MaterialType tags the broad class of a geotechnical material.
type MaterialType string

// Material types.
const (
	MaterialSoil          MaterialType = "SOIL"
	MaterialRock          MaterialType = "ROCK"
	MaterialFill          MaterialType = "FILL"
	MaterialMadeGround    MaterialType = "MADE_GROUND"
	MaterialAnthropogenic MaterialType = "ANTHROPOGENIC"
	MaterialWater         MaterialType = "WATER"
	MaterialVoid          MaterialType = "VOID"
	MaterialUnknown       MaterialType = "UNKNOWN"
)

// Material is a named geotechnical substance with engineering properties.
// Materials are building blocks referenced by components via string id.
type Material struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Type        MaterialType       `json:"materialType"`
	Geology     string             `json:"geology,omitempty"`
	Properties  []MaterialProperty `json:"properties"`
	Metadata    map[string]any     `json:"metadata"`
}

// PropertySource tags where a property value came from.
type PropertySource string

// Property sources.
const (
	SourceTested     PropertySource = "TESTED"
	SourceEstimated  PropertySource = "ESTIMATED"
	SourceLiterature PropertySource = "LITERATURE"
	SourceAssumed    PropertySource = "ASSUMED"
	SourceCalculated PropertySource = "CALCULATED"
)

// MaterialProperty is one engineering property. Material science values vary
// in shape, so Value is a tagged union, not a number.
type MaterialProperty struct {
	Name   string         `json:"name"`
	Value  PropertyValue  `json:"value"`
	Unit   string         `json:"unit,omitempty"`
	Method string         `json:"method,omitempty"`
	Source PropertySource `json:"source,omitempty"`
}

// PropertyKind discriminates the value shapes a property can take.
type PropertyKind string

// Property value kinds.
const (
	PropertyNumber PropertyKind = "number"
	PropertyText   PropertyKind = "text"
	PropertyBool   PropertyKind = "boolean"
	PropertyRange  PropertyKind = "range"
	PropertyArray  PropertyKind = "array"
)

// PropertyValue is the closed union of property value shapes. On the wire it
// is untagged (a bare number, string, boolean, {min,max} object, or number
// array); in memory the Kind accessor makes the shape explicit so consumers
// handle every case.
type PropertyValue struct {
	kind     PropertyKind
	number   float64
	text     string
	boolean  bool
	min, max float64
	array    []float64
}

// NumberValue creates a numeric property value.
func NumberValue(v float64) PropertyValue {
	return PropertyValue{kind: PropertyNumber, number: v}
}

// TextValue creates a text property value.
func TextValue(v string) PropertyValue {
	return PropertyValue{kind: PropertyText, text: v}
}

// BoolValue creates a boolean property value.
func BoolValue(v bool) PropertyValue {
	return PropertyValue{kind: PropertyBool, boolean: v}
}

// RangeValue creates a {min,max} property value.
func RangeValue(min, max float64) PropertyValue {
	return PropertyValue{kind: PropertyRange, min: min, max: max}
}

// ArrayValue creates a number-array property value.
func ArrayValue(v []float64) PropertyValue {
	return PropertyValue{kind: PropertyArray, array: v}
}

// Kind returns the value's shape tag.
func (v PropertyValue) Kind() PropertyKind {
	return v.kind
}

// Number returns the numeric value; valid only when Kind is PropertyNumber.
func (v PropertyValue) Number() float64 { return v.number }

// Text returns the text value; valid only when Kind is PropertyText.
func (v PropertyValue) Text() string { return v.text }

// Bool returns the boolean value; valid only when Kind is PropertyBool.
func (v PropertyValue) Bool() bool { return v.boolean }

// Range returns the min and max; valid only when Kind is PropertyRange.
func (v PropertyValue) Range() (min, max float64) { return v.min, v.max }

// Array returns the number array; valid only when Kind is PropertyArray.
func (v PropertyValue) Array() []float64 { return v.array }

// String renders the value for display.
func (v PropertyValue) String() string {
	switch v.kind {
	case PropertyNumber:
		return fmt.Sprintf("%v", v.number)
	case PropertyText:
		return v.text
	case PropertyBool:
		return fmt.Sprintf("%v", v.boolean)
	case PropertyRange:
		return fmt.Sprintf("%v–%v", v.min, v.max)
	case PropertyArray:
		return fmt.Sprintf("%v", v.array)
	}
	return ""
}

type rangeJSON struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarshalJSON writes the untagged wire form of the value.
func (v PropertyValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case PropertyNumber:
		return json.Marshal(v.number)
	case PropertyText:
		return json.Marshal(v.text)
	case PropertyBool:
		return json.Marshal(v.boolean)
	case PropertyRange:
		return json.Marshal(rangeJSON{Min: v.min, Max: v.max})
	case PropertyArray:
		return json.Marshal(v.array)
	}
	return nil, errors.New(errors.ErrCodeSerialization, "property value has no kind")
}

// UnmarshalJSON sniffs the untagged wire form: string, boolean, {min,max}
// object, number array, or bare number.
func (v *PropertyValue) UnmarshalJSON(data []byte) error {
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch p := probe.(type) {
	case string:
		*v = TextValue(p)
		return nil
	case bool:
		*v = BoolValue(p)
		return nil
	case float64:
		*v = NumberValue(p)
		return nil
	case []any:
		arr := make([]float64, len(p))
		for i, e := range p {
			n, ok := e.(float64)
			if !ok {
				return errors.New(errors.ErrCodeDeserialization,
					"property array element %d is not a number", i)
			}
			arr[i] = n
		}
		*v = ArrayValue(arr)
		return nil
	case map[string]any:
		var r rangeJSON
		if err := json.Unmarshal(data, &r); err != nil {
			return errors.Wrap(errors.ErrCodeDeserialization, err, "decode range value")
		}
		*v = RangeValue(r.Min, r.Max)
		return nil
	}
	return errors.New(errors.ErrCodeDeserialization, "unsupported property value shape")
}

// NewMaterial creates a material with empty property and metadata sets.
func NewMaterial(id, name string, typ MaterialType) Material {
	return Material{
		ID:         id,
		Name:       name,
		Type:       typ,
		Properties: []MaterialProperty{},
		Metadata:   map[string]any{},
	}
}

// AddProperty appends a property. Names are not unique; repeated names are
// all retained.
func (m *Material) AddProperty(p MaterialProperty) {
	m.Properties = append(m.Properties, p)
}

// Property returns the first property with the given name, or nil.
func (m *Material) Property(name string) *MaterialProperty {
	for i := range m.Properties {
		if m.Properties[i].Name == name {
			return &m.Properties[i]
		}
	}
	return nil
}

// PropertiesByName returns every property with the given name, in order.
func (m *Material) PropertiesByName(name string) []*MaterialProperty {
	var out []*MaterialProperty
	for i := range m.Properties {
		if m.Properties[i].Name == name {
			out = append(out, &m.Properties[i])
		}
	}
	return out
}

// NumericProperty builds a numeric property with an optional unit.
func NumericProperty(name string, value float64, unit string) MaterialProperty {
	return MaterialProperty{Name: name, Value: NumberValue(value), Unit: unit}
}

// TextProperty builds a text property.
func TextProperty(name, value string) MaterialProperty {
	return MaterialProperty{Name: name, Value: TextValue(value)}
}

// RangeProperty builds a {min,max} property with an optional unit.
func RangeProperty(name string, min, max float64, unit string) MaterialProperty {
	return MaterialProperty{Name: name, Value: RangeValue(min, max), Unit: unit}
}
