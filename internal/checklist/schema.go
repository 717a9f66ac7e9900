package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "propertyNames": { "pattern": "^.+--?[0-9]+$" },
  "additionalProperties": { "type": "boolean" }
}`

var compiledSnapshotSchema = jsonschema.MustCompileString("wedding-checked.schema.json", snapshotSchema)

// ValidateSnapshot checks that raw is a JSON object of completion keys
// mapped to booleans.
func ValidateSnapshot(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := compiledSnapshotSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	return nil
}
