// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema.
type Schema struct {
	schema *gojsonschema.Schema
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Compile compiles a schema expressed as a Go map.
func Compile(schemaMap map[string]interface{}) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: compiled}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(schemaMap map[string]interface{}) *Schema {
	s, err := Compile(schemaMap)
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateJSON validates raw JSON. A non-nil error means the bytes are not JSON.
func (s *Schema) ValidateJSON(data []byte) (*ValidationResult, error) {
	return s.validate(gojsonschema.NewBytesLoader(data))
}

func (s *Schema) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := s.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, resErr := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   resErr.Field(),
			Message: resErr.Description(),
			Code:    resErr.Type(),
		})
	}
	return out, nil
}

// Err returns nil for a valid result and a summarising error otherwise.
func (r *ValidationResult) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
