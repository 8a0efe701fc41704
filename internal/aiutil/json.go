package aiutil

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSONObject pulls the JSON object out of a raw LLM completion.
// Models are instructed to return ONLY the JSON object, but in practice the
// answer may arrive wrapped in markdown code fences or prose. The extracted
// object is syntax-checked; callers still run their own schema validation.
func ExtractJSONObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("no JSON object in response: %.80q", raw)
	}
	candidate := cleaned[start : end+1]

	if !gjson.Valid(candidate) {
		return "", fmt.Errorf("response is not valid JSON: %.80q", candidate)
	}
	return candidate, nil
}

// RequireFields verifies that every named path exists in the JSON object.
func RequireFields(jsonStr string, paths ...string) error {
	for _, p := range paths {
		if !gjson.Get(jsonStr, p).Exists() {
			return fmt.Errorf("response missing required field %q", p)
		}
	}
	return nil
}
