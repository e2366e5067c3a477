package edgeconfig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timzifer/edgeconf/jsonval"
)

func TestValidateWireAcceptsRoundTrippedConfig(t *testing.T) {
	wire := jsonval.String(sampleConfig().ToJSON())
	require.NoError(t, ValidateWire([]byte(wire)))
}

func TestValidateWireAcceptsEmptyConfig(t *testing.T) {
	require.NoError(t, ValidateWire([]byte(`{"components": {}, "factories": {}}`)))
}

func TestValidateWireAcceptsPropertyWithoutDefaultValue(t *testing.T) {
	wire := `{
		"components": {},
		"factories": {
			"Meter.Socomec": {
				"name": "Socomec",
				"description": "Socomec meter",
				"natureIds": ["Meter"],
				"properties": [
					{
						"id": "ip",
						"name": "IP-Address",
						"description": "Device address",
						"isRequired": true,
						"schema": {"type": "string"}
					}
				]
			}
		}
	}`
	require.NoError(t, ValidateWire([]byte(wire)))
}

func TestValidateWireRejectsWrongType(t *testing.T) {
	wire := `{
		"components": {
			"c0": {"factoryId": 42, "properties": {}}
		},
		"factories": {}
	}`
	require.Error(t, ValidateWire([]byte(wire)))
}

func TestValidateWireRejectsMissingMember(t *testing.T) {
	wire := `{
		"components": {},
		"factories": {
			"F": {"name": "F", "natureIds": [], "properties": []}
		}
	}`
	// description is required by the schema.
	require.Error(t, ValidateWire([]byte(wire)))
}

func TestValidateWireRejectsMalformedJSON(t *testing.T) {
	require.Error(t, ValidateWire([]byte(`{"components":`)))
}

func TestValidateWireRejectsLegacyShape(t *testing.T) {
	require.Error(t, ValidateWire([]byte(legacyWire)))
}
