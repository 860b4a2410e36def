package helpers

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// ApplyJQ runs a jq expression against a JSON document and returns every
// value it emits.
func ApplyJQ(doc []byte, expression string) ([]any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	var input any
	if err := json.Unmarshal(doc, &input); err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}

	values := make([]any, 0)
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq: %w", err)
		}
		values = append(values, v)
	}
	return values, nil
}
