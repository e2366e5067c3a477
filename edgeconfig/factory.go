package edgeconfig

import (
	"github.com/timzifer/edgeconf/jsonval"
)

// Property describes one configurable field of a Factory.
type Property struct {
	id           string
	name         string
	description  string
	isRequired   bool
	defaultValue jsonval.Value
	schema       jsonval.Object
}

// NewProperty builds an immutable property descriptor.
func NewProperty(id, name, description string, isRequired bool, defaultValue jsonval.Value, schema jsonval.Object) Property {
	return Property{
		id:           id,
		name:         name,
		description:  description,
		isRequired:   isRequired,
		defaultValue: defaultValue,
		schema:       schema,
	}
}

// ID returns the property id.
func (p Property) ID() string { return p.id }

// Name returns the human readable name.
func (p Property) Name() string { return p.name }

// Description returns the property description.
func (p Property) Description() string { return p.description }

// IsRequired reports whether the property must be configured.
func (p Property) IsRequired() bool { return p.isRequired }

// DefaultValue returns the default value, nil when none is declared.
func (p Property) DefaultValue() jsonval.Value { return p.defaultValue }

// Schema returns the JSON schema fragment describing the property type.
func (p Property) Schema() jsonval.Object { return p.schema }

// ToJSON returns the property in wire form:
//
//	{
//	  "id": string, "name": string, "description": string,
//	  "isRequired": bool, "defaultValue": any, "schema": { "type": string }
//	}
func (p Property) ToJSON() jsonval.Object {
	return jsonval.BuildObject().
		AddString("id", p.id).
		AddString("name", p.name).
		AddString("description", p.description).
		AddBool("isRequired", p.isRequired).
		Add("defaultValue", p.defaultValue).
		Add("schema", p.schema).
		Build()
}

// PropertyFromJSON decodes a property from its wire form. The default value
// is optional and stays nil when the member is absent.
func PropertyFromJSON(v jsonval.Value) (Property, error) {
	id, err := jsonval.StringMember(v, "id")
	if err != nil {
		return Property{}, err
	}
	name, err := jsonval.StringMember(v, "name")
	if err != nil {
		return Property{}, err
	}
	description, err := jsonval.StringMember(v, "description")
	if err != nil {
		return Property{}, err
	}
	isRequired, err := jsonval.BoolMember(v, "isRequired")
	if err != nil {
		return Property{}, err
	}
	defaultValue, _ := jsonval.OptionalMember(v, "defaultValue")
	schema, err := jsonval.ObjectMember(v, "schema")
	if err != nil {
		return Property{}, err
	}
	return NewProperty(id, name, description, isRequired, defaultValue, schema), nil
}

// Factory describes a class of configurable component. The nature ids name
// the capability interfaces its instances implement.
type Factory struct {
	name        string
	description string
	properties  []Property
	natureIDs   []string
}

// NewFactory builds an immutable factory. Both slices are copied.
func NewFactory(name, description string, properties []Property, natureIDs []string) *Factory {
	return &Factory{
		name:        name,
		description: description,
		properties:  append([]Property(nil), properties...),
		natureIDs:   append([]string(nil), natureIDs...),
	}
}

// Name returns the factory name.
func (f *Factory) Name() string { return f.name }

// Description returns the factory description.
func (f *Factory) Description() string { return f.description }

// Properties returns a copy of the declared property descriptors.
func (f *Factory) Properties() []Property {
	return append([]Property(nil), f.properties...)
}

// NatureIDs returns a copy of the implemented capability ids.
func (f *Factory) NatureIDs() []string {
	return append([]string(nil), f.natureIDs...)
}

// ImplementsNature reports whether the factory declares the given nature.
func (f *Factory) ImplementsNature(natureID string) bool {
	for _, id := range f.natureIDs {
		if id == natureID {
			return true
		}
	}
	return false
}

// ToJSON returns the factory in wire form:
//
//	{
//	  "name": string, "description": string,
//	  "natureIds": string[], "properties": Property[]
//	}
func (f *Factory) ToJSON() jsonval.Object {
	natureIDs := make(jsonval.Array, 0, len(f.natureIDs))
	for _, id := range f.natureIDs {
		natureIDs = append(natureIDs, id)
	}
	properties := make(jsonval.Array, 0, len(f.properties))
	for _, property := range f.properties {
		properties = append(properties, property.ToJSON())
	}
	return jsonval.BuildObject().
		AddString("name", f.name).
		AddString("description", f.description).
		Add("natureIds", natureIDs).
		Add("properties", properties).
		Build()
}

// FactoryFromJSON decodes a factory from its wire form.
func FactoryFromJSON(v jsonval.Value) (*Factory, error) {
	name, err := jsonval.StringMember(v, "name")
	if err != nil {
		return nil, err
	}
	description, err := jsonval.StringMember(v, "description")
	if err != nil {
		return nil, err
	}
	natureArr, err := jsonval.ArrayMember(v, "natureIds")
	if err != nil {
		return nil, err
	}
	natureIDs, err := jsonval.StringsFromArray(natureArr)
	if err != nil {
		return nil, err
	}
	propsArr, err := jsonval.ArrayMember(v, "properties")
	if err != nil {
		return nil, err
	}
	var properties []Property
	for _, elem := range propsArr {
		property, err := PropertyFromJSON(elem)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	if len(natureIDs) == 0 {
		natureIDs = nil
	}
	return &Factory{
		name:        name,
		description: description,
		properties:  properties,
		natureIDs:   natureIDs,
	}, nil
}
