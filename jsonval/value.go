// Package jsonval provides typed, checked access to untyped JSON value
// trees. A tree is the canonical output of Parse: objects are
// map[string]any, arrays are []any, numbers are json.Number, and scalars
// are bool, string or nil. All narrowing accessors fail with coded errors
// from the faults package.
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/timzifer/edgeconf/faults"
)

// Value is any node of a JSON tree in canonical form.
type Value = any

// Object is a JSON object node.
type Object = map[string]any

// Array is a JSON array node.
type Array = []any

// Parse decodes raw text into a canonical JSON tree. Numbers are kept as
// json.Number so integer payloads survive round-trips unchanged.
func Parse(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v Value
	if err := dec.Decode(&v); err != nil {
		return nil, faults.JSONParseFailed.New(text, err.Error())
	}
	if dec.More() {
		return nil, faults.JSONParseFailed.New(text, "unexpected trailing data")
	}
	return v, nil
}

// ParseObject decodes raw text and requires the result to be an object.
func ParseObject(text string) (Object, error) {
	v, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return AsObject(v)
}

// String renders a value as compact JSON. Object keys are emitted in
// lexicographic order, which keeps serialized configurations diffable.
func String(v Value) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// Pretty renders a value as indented JSON.
func Pretty(v Value) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// FromNative converts an arbitrary Go value into canonical tree form.
// Unknown types fall back to their fmt rendering after a logged warning.
func FromNative(value any) Value {
	switch v := value.(type) {
	case nil:
		return nil
	case bool, string, json.Number:
		return v
	case Object:
		out := make(Object, len(v))
		for key, elem := range v {
			out[key] = FromNative(elem)
		}
		return out
	case Array:
		out := make(Array, 0, len(v))
		for _, elem := range v {
			out = append(out, FromNative(elem))
		}
		return out
	case int:
		return json.Number(strconv.Itoa(v))
	case int8:
		return json.Number(strconv.FormatInt(int64(v), 10))
	case int16:
		return json.Number(strconv.FormatInt(int64(v), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(v), 10))
	case int64:
		return json.Number(strconv.FormatInt(v, 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return json.Number(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return json.Number(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return json.Number(strconv.FormatUint(v, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
	case decimal.Decimal:
		return json.Number(v.String())
	case net.IP:
		return v.String()
	case []string:
		// A single empty string denotes an empty list in legacy device
		// records.
		if len(v) == 1 && v[0] == "" {
			return Array{}
		}
		out := make(Array, 0, len(v))
		for _, s := range v {
			out = append(out, s)
		}
		return out
	case []int64:
		out := make(Array, 0, len(v))
		for _, i := range v {
			out = append(out, json.Number(strconv.FormatInt(i, 10)))
		}
		return out
	case []bool:
		out := make(Array, 0, len(v))
		for _, b := range v {
			out = append(out, b)
		}
		return out
	default:
		log.Warn().Type("type", value).Msg("no JSON conversion for native value")
		return fmt.Sprint(value)
	}
}

func isPrimitive(v Value) bool {
	switch v.(type) {
	case bool, string, json.Number:
		return true
	default:
		return false
	}
}

// primitiveString renders a primitive the way its JSON content reads:
// strings without quotes, numbers and booleans verbatim.
func primitiveString(v Value) string {
	switch p := v.(type) {
	case string:
		return p
	case json.Number:
		return p.String()
	case bool:
		return strconv.FormatBool(p)
	default:
		return String(v)
	}
}
