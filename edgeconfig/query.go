package edgeconfig

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/shopspring/decimal"

	"github.com/timzifer/edgeconf/jsonval"
)

// ComponentsWhere evaluates a boolean expression against every component
// and returns the matching ids in ascending order. The environment exposes
// "id", "factoryId" and "properties"; property numbers surface as int64 or
// float64 so expressions can compare them directly.
func (e *EdgeConfig) ComponentsWhere(expression string) ([]string, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile component query: %w", err)
	}

	var out []string
	for _, id := range e.ComponentIDs() {
		component := e.components[id]
		env := map[string]any{
			"id":         id,
			"factoryId":  component.factoryID,
			"properties": nativeObject(component.properties),
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("evaluate component query for %s: %w", id, err)
		}
		matched, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("component query did not yield a boolean for %s", id)
		}
		if matched {
			out = append(out, id)
		}
	}
	return out, nil
}

func nativeObject(obj map[string]jsonval.Value) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = nativeValue(value)
	}
	return out
}

// nativeValue rewrites a canonical tree into plain Go values for expression
// environments: integers as int64, other numbers as float64.
func nativeValue(v jsonval.Value) any {
	switch node := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(node.String())
		if err != nil {
			return node.String()
		}
		if d.IsInteger() {
			return d.IntPart()
		}
		return d.InexactFloat64()
	case jsonval.Object:
		out := make(map[string]any, len(node))
		for key, value := range node {
			out[key] = nativeValue(value)
		}
		return out
	case jsonval.Array:
		out := make([]any, 0, len(node))
		for _, value := range node {
			out = append(out, nativeValue(value))
		}
		return out
	default:
		return node
	}
}
