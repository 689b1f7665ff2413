package io

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/matzehuels/beltgrid/pkg/errors"
)

//go:embed grid.schema.json
var schemaJSON []byte

const schemaURL = "grid.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Schema returns the JSON Schema that [WriteJSON] output conforms to.
func Schema() []byte {
	return schemaJSON
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if schemaErr = c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); schemaErr != nil {
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ValidateJSON checks an export document against [Schema].
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "compile export schema")
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode export")
	}
	if err := s.Validate(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "export does not match schema")
	}
	return nil
}
