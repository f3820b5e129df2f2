package common

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSONArray extracts and unmarshals a JSON array embedded in raw model
// output. The model frequently wraps the array in prose or markdown fences,
// so the substring between the first '[' and the last ']' is taken first; if
// straight unmarshaling fails a repair pass is attempted before giving up.
func ParseJSONArray[T any](response string) ([]T, error) {
	start := -1
	for i, c := range response {
		if c == '[' {
			start = i
			break
		}
	}
	end := -1
	for i := len(response) - 1; i >= 0; i-- {
		if response[i] == ']' {
			end = i + 1
			break
		}
	}

	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	jsonStr := response[start:end]

	var result []T
	if err := json.Unmarshal([]byte(jsonStr), &result); err == nil {
		return result, nil
	}

	repaired, err := jsonrepair.JSONRepair(jsonStr)
	if err != nil {
		return nil, fmt.Errorf("json repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON array: %w", err)
	}

	return result, nil
}
