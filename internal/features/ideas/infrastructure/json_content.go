package infrastructure

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseableContent is returned when no JSON object can be read from a
// model reply.
var ErrUnparseableContent = errors.New("Failed to parse JSON from LLM response")

// ParseJSONContent decodes a model reply into v. Replies that wrap the
// object in prose or code fences are retried on the span between the first
// '{' and the last '}'.
func ParseJSONContent(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ErrUnparseableContent
	}
	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return ErrUnparseableContent
	}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseableContent, err)
	}
	return nil
}
