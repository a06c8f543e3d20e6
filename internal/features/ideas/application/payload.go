package application

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RemoveEmpty drops nil values, blank strings, empty arrays and empty objects
// from a decoded JSON tree, depth first. Containers emptied by the pruning
// are dropped too, so applying it twice changes nothing.
func RemoveEmpty(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, child := range v {
			if pruned := RemoveEmpty(child); !isEmpty(pruned) {
				out[key] = pruned
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if pruned := RemoveEmpty(child); !isEmpty(pruned) {
				out = append(out, pruned)
			}
		}
		return out
	default:
		return value
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}

// marshalPayload serializes v as two-space indented JSON with empty fields
// pruned. HTML characters are left unescaped so prompts stay readable.
func marshalPayload(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt input: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return "", fmt.Errorf("failed to decode prompt input: %w", err)
	}
	tree = RemoveEmpty(tree)
	if isEmpty(tree) {
		tree = map[string]any{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("failed to encode prompt input: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
