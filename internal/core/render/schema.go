package render

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed forest.schema.json
var schemaJSON []byte

const schemaURL = "forest.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Schema returns the JSON schema describing Document.
func Schema() []byte {
	return schemaJSON
}

func forestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
	})
	return compiled, compileErr
}

// ValidateJSON checks an encoded Document against the forest schema.
func ValidateJSON(data []byte) error {
	schema, err := forestSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("forest schema: %w", err)
	}

	return nil
}
