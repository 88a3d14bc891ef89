package collector

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed message.schema.json
var messageSchema []byte

const messageSchemaURL = "https://beacon.schemas.local/collector/message.schema.json"

// Schema validates decoded wire messages before they are parsed.
type Schema struct {
	compiled *jsonschema.Schema
}

func NewSchema() (*Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(messageSchemaURL, bytes.NewReader(messageSchema)); err != nil {
		return nil, fmt.Errorf("message schema load failed: %w", err)
	}
	compiled, err := c.Compile(messageSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("message schema compile failed: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// Validate checks a message decoded into generic JSON values.
func (s *Schema) Validate(v any) error {
	if err := s.compiled.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
