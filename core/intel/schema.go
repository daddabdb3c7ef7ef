package intel

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ResponseSchema is the JSON Schema of the wire shape the model is asked to
// produce. It only checks required keys and value types; enum-like fields are
// left open because the recoverer already normalises them.
const ResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["summary", "events", "barTalk"],
  "properties": {
    "summary": {"type": "string"},
    "events": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["headline"],
        "properties": {
          "category": {"type": "string"},
          "headline": {"type": "string"},
          "description": {"type": "string"},
          "significance": {"type": "string"},
          "teams": {"type": "array", "items": {"type": "string"}},
          "date": {"type": "string"},
          "source": {"type": "string"},
          "links": {"type": "array", "items": {"type": "string"}}
        }
      }
    },
    "barTalk": {"type": "array", "items": {"type": "string"}}
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(ResponseSchema))
})

// Validate checks the response against [ResponseSchema] and returns one
// message per violation. A nil error with an empty slice means the response is
// valid.
func (r *Response) Validate() ([]string, error) {
	if r == nil {
		return []string{"response is nil"}, nil
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling response schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(r))
	if err != nil {
		return nil, fmt.Errorf("validating response: %w", err)
	}

	var violations []string
	for _, resultError := range result.Errors() {
		violations = append(violations, resultError.String())
	}
	return violations, nil
}
