package newsroom

import (
	"encoding/json"
	"strings"
)

// ParseLabels normalizes the category/tag input the admin editor submits.
// The tag widget posts a JSON array of {"value": ...} objects; hand-written
// forms post a bare string. Both decode to an ordered label list. Malformed
// JSON fails closed to an empty list rather than wrapping the raw input.
func ParseLabels(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if strings.HasPrefix(input, "[") {
		var items []struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal([]byte(input), &items); err != nil {
			return nil
		}
		values := make([]string, 0, len(items))
		for _, it := range items {
			values = append(values, it.Value)
		}
		return FilterEmpty(values)
	}
	return []string{input}
}
