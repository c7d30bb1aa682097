package levels

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/level.schema.json
var levelSchemaJSON string

var levelSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("level.schema.json", levelSchemaJSON)
})

// ValidateYAML checks a YAML level document against the level schema.
func ValidateYAML(data []byte) error {
	schema, err := levelSchema()
	if err != nil {
		return fmt.Errorf("compile level schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}

	// The validator wants JSON values: string keys and json.Number.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("convert to json: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
