// Package edgeconfig models the runtime configuration of an edge device as
// a typed object graph and maps it to and from the generic JSON wire format.
// An obsolete legacy wire shape is detected and upgraded transparently on
// read.
package edgeconfig

import (
	"sort"

	"github.com/timzifer/edgeconf/jsonval"
)

// Component is one configured instance of a Factory. The factory reference
// is logical only; it is not validated to exist.
type Component struct {
	factoryID  string
	properties map[string]jsonval.Value
}

// NewComponent builds an immutable component. The property map is copied.
func NewComponent(factoryID string, properties map[string]jsonval.Value) *Component {
	props := make(map[string]jsonval.Value, len(properties))
	for key, value := range properties {
		props[key] = value
	}
	return &Component{factoryID: factoryID, properties: props}
}

// FactoryID returns the id of the factory this component is configured from.
func (c *Component) FactoryID() string { return c.factoryID }

// Properties returns a copy of the property map.
func (c *Component) Properties() map[string]jsonval.Value {
	out := make(map[string]jsonval.Value, len(c.properties))
	for key, value := range c.properties {
		out[key] = value
	}
	return out
}

// PropertyKeys returns the property keys in ascending lexicographic order.
func (c *Component) PropertyKeys() []string {
	keys := make([]string, 0, len(c.properties))
	for key := range c.properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Property returns a single property value by key.
func (c *Component) Property(key string) (jsonval.Value, bool) {
	value, ok := c.properties[key]
	return value, ok
}

// ToJSON returns the component in wire form:
//
//	{
//	  "factoryId": string,
//	  "properties": { [key: string]: value }
//	}
func (c *Component) ToJSON() jsonval.Object {
	properties := make(jsonval.Object, len(c.properties))
	for key, value := range c.properties {
		properties[key] = value
	}
	return jsonval.BuildObject().
		AddString("factoryId", c.factoryID).
		Add("properties", properties).
		Build()
}

// ComponentFromJSON decodes a component from its wire form.
func ComponentFromJSON(v jsonval.Value) (*Component, error) {
	factoryID, err := jsonval.StringMember(v, "factoryId")
	if err != nil {
		return nil, err
	}
	propsObj, err := jsonval.ObjectMember(v, "properties")
	if err != nil {
		return nil, err
	}
	properties := make(map[string]jsonval.Value, len(propsObj))
	for key, value := range propsObj {
		properties[key] = value
	}
	return &Component{factoryID: factoryID, properties: properties}, nil
}
