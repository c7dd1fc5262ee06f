// Package schema generates JSON schemas for host configuration files.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/nativevm/gas"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	return marshal(reflect(v))
}

func reflect(v interface{}) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	return reflector.Reflect(v)
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}

// GasConfigSchema returns the schema of a YAML gas schedule. The keys of
// "natives" are restricted to the known native cost names.
func GasConfigSchema() ([]byte, error) {
	s := reflect(&gas.Config{})
	s.Title = "nativevm gas schedule"

	if natives, ok := s.Properties.Get("natives"); ok {
		names := gas.NativeCostNames()
		enum := make([]any, len(names))
		for i, n := range names {
			enum[i] = n
		}
		natives.PropertyNames = &jsonschema.Schema{Type: "string", Enum: enum}
		natives.MinProperties = ptr(uint64(1))
	}
	return marshal(s)
}

func ptr[T any](v T) *T {
	return &v
}
