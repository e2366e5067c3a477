package edgeconfig

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

const wireSchema = `
#Property: {
	id:           string
	name:         string
	description:  string
	isRequired:   bool
	defaultValue?: _
	schema: {...}
}

#Factory: {
	name:        string
	description: string
	natureIds: [...string]
	properties: [...#Property]
}

#Component: {
	factoryId: string
	properties: {...}
}

#EdgeConfig: {
	components: {[string]: #Component}
	factories: {[string]: #Factory}
}
`

// ValidateWire checks a raw current-format payload against the wire schema
// without decoding it into the model. Legacy payloads do not validate; they
// are upgraded by FromJSON instead.
func ValidateWire(data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(wireSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile wire schema: %w", err)
	}
	schema = schema.LookupPath(cue.ParsePath("#EdgeConfig"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("resolve wire schema: %w", err)
	}

	payload, err := cuejson.Extract("payload.json", data)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	value := ctx.BuildExpr(payload)
	if err := value.Err(); err != nil {
		return fmt.Errorf("build payload: %w", err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validate payload: %w", err)
	}
	return nil
}
