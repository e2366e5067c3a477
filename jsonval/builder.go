package jsonval

import (
	"encoding/json"
	"strconv"
)

// ObjectBuilder accumulates members for a JSON object. Building is
// append-only and never fails; later sets of the same key overwrite.
type ObjectBuilder struct {
	obj Object
}

// BuildObject starts an empty object builder.
func BuildObject() *ObjectBuilder {
	return &ObjectBuilder{obj: Object{}}
}

// BuildObjectFrom starts a builder seeded with an existing object.
func BuildObjectFrom(obj Object) *ObjectBuilder {
	seeded := make(Object, len(obj))
	for k, v := range obj {
		seeded[k] = v
	}
	return &ObjectBuilder{obj: seeded}
}

// AddString sets a string member.
func (b *ObjectBuilder) AddString(key, value string) *ObjectBuilder {
	b.obj[key] = value
	return b
}

// AddInt sets an integer member.
func (b *ObjectBuilder) AddInt(key string, value int) *ObjectBuilder {
	b.obj[key] = json.Number(strconv.Itoa(value))
	return b
}

// AddInt64 sets a 64-bit integer member.
func (b *ObjectBuilder) AddInt64(key string, value int64) *ObjectBuilder {
	b.obj[key] = json.Number(strconv.FormatInt(value, 10))
	return b
}

// AddBool sets a boolean member.
func (b *ObjectBuilder) AddBool(key string, value bool) *ObjectBuilder {
	b.obj[key] = value
	return b
}

// Add sets a member to an arbitrary tree value.
func (b *ObjectBuilder) Add(key string, value Value) *ObjectBuilder {
	b.obj[key] = value
	return b
}

// Build returns the accumulated object.
func (b *ObjectBuilder) Build() Object {
	return b.obj
}
