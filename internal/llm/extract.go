package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject strips optional markdown code fences from a model reply
// and parses the remainder as a single JSON object.
func ExtractJSONObject(raw string) (map[string]any, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("model reply is not a JSON object: %w", err)
	}
	return obj, nil
}
