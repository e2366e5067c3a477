package jsonval

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/timzifer/edgeconf/faults"
)

// BestType infers the most specific Go representation of a value when no
// schema is known. Arrays collapse to []bool, []int64 or []string by
// scanning every element; scalars map to bool, int or string. Structural
// oddities never fail, only an unparseable number does.
func BestType(v Value) (any, error) {
	if arr, ok := v.(Array); ok {
		return bestArrayType(arr)
	}
	if !isPrimitive(v) {
		return String(v), nil
	}
	switch p := v.(type) {
	case bool:
		return p, nil
	case json.Number:
		d, err := decimal.NewFromString(p.String())
		if err != nil {
			return nil, faults.JSONParseElementFailed.New(String(v), "decimal", err.Error())
		}
		return int(d.IntPart()), nil
	default:
		return primitiveString(v), nil
	}
}

func bestArrayType(arr Array) (any, error) {
	if len(arr) == 0 {
		return Array{}, nil
	}

	allBool := true
	allNumber := true
	for _, elem := range arr {
		if !isPrimitive(elem) {
			allBool = false
			allNumber = false
			break
		}
		if _, ok := elem.(bool); !ok {
			allBool = false
		}
		if _, ok := elem.(json.Number); !ok {
			allNumber = false
		}
	}

	switch {
	case allBool:
		out := make([]bool, len(arr))
		for i, elem := range arr {
			out[i] = elem.(bool)
		}
		return out, nil
	case allNumber:
		out := make([]int64, len(arr))
		for i, elem := range arr {
			d, err := decimal.NewFromString(elem.(json.Number).String())
			if err != nil {
				return nil, faults.JSONParseElementFailed.New(String(elem), "decimal", err.Error())
			}
			out[i] = d.IntPart()
		}
		return out, nil
	default:
		out := make([]string, len(arr))
		for i, elem := range arr {
			if isPrimitive(elem) {
				out[i] = primitiveString(elem)
			} else {
				out[i] = String(elem)
			}
		}
		return out, nil
	}
}
