package edgeconfig

import (
	"sort"

	"github.com/timzifer/edgeconf/jsonval"
)

// EdgeConfig aggregates the full runtime configuration of one edge device:
// its configured components and the factories they instantiate. Components
// and factories are keyed by id; serialization lists ids in ascending
// lexicographic order so output stays deterministic and diffable.
//
// An EdgeConfig is populated by Add calls and treated as read-only
// afterwards. It provides no internal synchronization.
type EdgeConfig struct {
	components map[string]*Component
	factories  map[string]*Factory
}

// New returns an empty configuration.
func New() *EdgeConfig {
	return &EdgeConfig{
		components: make(map[string]*Component),
		factories:  make(map[string]*Factory),
	}
}

// AddComponent upserts a component by id; a previous entry with the same id
// is replaced entirely.
func (e *EdgeConfig) AddComponent(id string, component *Component) {
	e.components[id] = component
}

// AddFactory upserts a factory by id; a previous entry with the same id is
// replaced entirely.
func (e *EdgeConfig) AddFactory(id string, factory *Factory) {
	e.factories[id] = factory
}

// Component returns a component by id.
func (e *EdgeConfig) Component(id string) (*Component, bool) {
	component, ok := e.components[id]
	return component, ok
}

// Factory returns a factory by id.
func (e *EdgeConfig) Factory(id string) (*Factory, bool) {
	factory, ok := e.factories[id]
	return factory, ok
}

// Components returns a copy of the component map.
func (e *EdgeConfig) Components() map[string]*Component {
	out := make(map[string]*Component, len(e.components))
	for id, component := range e.components {
		out[id] = component
	}
	return out
}

// Factories returns a copy of the factory map.
func (e *EdgeConfig) Factories() map[string]*Factory {
	out := make(map[string]*Factory, len(e.factories))
	for id, factory := range e.factories {
		out[id] = factory
	}
	return out
}

// ComponentIDs returns all component ids in ascending order.
func (e *EdgeConfig) ComponentIDs() []string {
	ids := make([]string, 0, len(e.components))
	for id := range e.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FactoryIDs returns all factory ids in ascending order.
func (e *EdgeConfig) FactoryIDs() []string {
	ids := make([]string, 0, len(e.factories))
	for id := range e.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ComponentIDsByFactory returns the ids of all components configured from
// the given factory, in ascending id order.
func (e *EdgeConfig) ComponentIDsByFactory(factoryID string) []string {
	var out []string
	for _, id := range e.ComponentIDs() {
		if e.components[id].factoryID == factoryID {
			out = append(out, id)
		}
	}
	return out
}

// ComponentsByFactory returns all components configured from the given
// factory, in ascending id order.
func (e *EdgeConfig) ComponentsByFactory(factoryID string) []*Component {
	var out []*Component
	for _, id := range e.ComponentIDs() {
		if component := e.components[id]; component.factoryID == factoryID {
			out = append(out, component)
		}
	}
	return out
}

// ComponentsImplementingNature returns the ids of all components whose
// factory declares the given nature. A component referencing an unknown
// factory is skipped silently; the reference is not validated.
func (e *EdgeConfig) ComponentsImplementingNature(natureID string) []string {
	var out []string
	for _, id := range e.ComponentIDs() {
		factory, ok := e.factories[e.components[id].factoryID]
		if !ok {
			continue
		}
		if factory.ImplementsNature(natureID) {
			out = append(out, id)
		}
	}
	return out
}

// ToJSON returns the configuration in wire form:
//
//	{
//	  "components": { [id: string]: Component },
//	  "factories":  { [id: string]: Factory }
//	}
func (e *EdgeConfig) ToJSON() jsonval.Object {
	return jsonval.BuildObject().
		Add("components", e.ComponentsToJSON()).
		Add("factories", e.FactoriesToJSON()).
		Build()
}

// ComponentsToJSON returns only the components map in wire form.
func (e *EdgeConfig) ComponentsToJSON() jsonval.Object {
	components := make(jsonval.Object, len(e.components))
	for id, component := range e.components {
		components[id] = component.ToJSON()
	}
	return components
}

// FactoriesToJSON returns only the factories map in wire form.
func (e *EdgeConfig) FactoriesToJSON() jsonval.Object {
	factories := make(jsonval.Object, len(e.factories))
	for id, factory := range e.factories {
		factories[id] = factory.ToJSON()
	}
	return factories
}

// FromJSON decodes a configuration from wire form using the default
// decoder. Payloads in the obsolete legacy shape are detected and upgraded.
func FromJSON(v jsonval.Value) (*EdgeConfig, error) {
	return defaultDecoder.Decode(v)
}
