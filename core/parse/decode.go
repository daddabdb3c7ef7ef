package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DecodeLenient decodes a JSON object or array into T. If strict decoding
// fails, the content is repaired with jsonrepair and decoded again; if that
// still fails, schema-like {"type": ..., "value": ...} wrappers are unwrapped
// before a last attempt.
//
// Example usage:
//
//	event, err := DecodeLenient[intel.EventRecord](`{headline: 'Bears win', category: 'NFL'}`)
func DecodeLenient[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to decode content as %T and failed to repair JSON: decode error: %w, repair error: %v", result, err, repairErr)
	}

	// Reset so a partial write from the first attempt does not leak through
	result = *new(T)
	err = json.Unmarshal([]byte(repaired), &result)
	if err == nil {
		return result, nil
	}

	unwrapped, unwrapErr := unwrapSchemaValues(repaired)
	if unwrapErr == nil {
		result = *new(T)
		if err = json.Unmarshal([]byte(unwrapped), &result); err == nil {
			return result, nil
		}
	}

	return *new(T), fmt.Errorf("failed to decode repaired JSON as %T: %w", result, err)
}

// unwrapSchemaValues replaces values wrapped in a schema-like structure with
// "type" and "value" fields by the bare value. Models occasionally confuse the
// schema they were shown with the data they should emit.
//
// Example input:
//
//	{"headline": {"type": "string", "value": "Bears win"}}
//
// Example output:
//
//	{"headline": "Bears win"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	result, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

func recursiveUnwrap(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
