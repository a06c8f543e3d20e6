package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/IAnMove/ideagenerator/internal/validation"
)

// LocalizedText holds one text per language code. A plain JSON string decodes
// to a language-independent entry stored under the empty key.
type LocalizedText map[string]string

// UnmarshalJSON accepts either a string or an object of language -> text.
func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = nil
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = LocalizedText{"": s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return validation.Errorf("localized text must be a string or an object of strings")
	}
	*t = LocalizedText(m)
	return nil
}

// MarshalJSON writes language-independent text back as a plain string.
func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if s, ok := t[""]; ok && len(t) == 1 {
		return json.Marshal(s)
	}
	return json.Marshal(map[string]string(t))
}

// Resolve picks the text for language, then es, then en, then the first
// remaining entry in key order. Blank entries are skipped.
func (t LocalizedText) Resolve(language string) (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	for _, key := range []string{language, "es", "en"} {
		if v := strings.TrimSpace(t[key]); v != "" {
			return t[key], true
		}
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(t[k]) != "" {
			return t[k], true
		}
	}
	return "", false
}

// Category is one user-configurable axis of variation.
type Category struct {
	Key     string                   `json:"key"`
	Label   LocalizedText            `json:"label,omitempty"`
	Hint    LocalizedText            `json:"hint,omitempty"`
	Options map[string]LocalizedText `json:"options,omitempty"`
}

// OptionKeys returns the trimmed, non-blank option keys in lexical order.
func (c Category) OptionKeys() []string {
	keys := make([]string, 0, len(c.Options))
	for k := range c.Options {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ElementsConfig is the user-editable category configuration plus optional
// prompt template overrides.
type ElementsConfig struct {
	Categories       []Category    `json:"categories"`
	IdeaPrompt       LocalizedText `json:"ideaPrompt,omitempty"`
	IdeaSystemPrompt LocalizedText `json:"ideaSystemPrompt,omitempty"`
	ProductionPrompt LocalizedText `json:"productionPrompt,omitempty"`
}

// elementsWire accepts both the current camelCase keys and the snake_case
// keys written by older clients.
type elementsWire struct {
	Categories             []Category    `json:"categories"`
	IdeaPrompt             LocalizedText `json:"ideaPrompt"`
	IdeaPromptLegacy       LocalizedText `json:"idea_prompt"`
	IdeaSystemPrompt       LocalizedText `json:"ideaSystemPrompt"`
	IdeaSystemPromptLegacy LocalizedText `json:"idea_system_prompt"`
	ProductionPrompt       LocalizedText `json:"productionPrompt"`
	ProductionPromptLegacy LocalizedText `json:"production_prompt"`
}

// UnmarshalJSON normalizes legacy keys and validates category keys.
func (e *ElementsConfig) UnmarshalJSON(data []byte) error {
	var wire elementsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	cfg := ElementsConfig{
		Categories:       wire.Categories,
		IdeaPrompt:       firstText(wire.IdeaPrompt, wire.IdeaPromptLegacy),
		IdeaSystemPrompt: firstText(wire.IdeaSystemPrompt, wire.IdeaSystemPromptLegacy),
		ProductionPrompt: firstText(wire.ProductionPrompt, wire.ProductionPromptLegacy),
	}
	for i := range cfg.Categories {
		c := &cfg.Categories[i]
		c.Key = strings.TrimSpace(c.Key)
		options, err := trimOptionKeys(c.Key, c.Options)
		if err != nil {
			return err
		}
		c.Options = options
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	*e = cfg
	return nil
}

// Validate rejects empty and duplicate category keys.
func (e *ElementsConfig) Validate() error {
	seen := make(map[string]struct{}, len(e.Categories))
	for i, c := range e.Categories {
		if c.Key == "" {
			return validation.Errorf("elements category %d has an empty key", i)
		}
		if _, dup := seen[c.Key]; dup {
			return validation.Errorf("duplicate elements category key: %s", c.Key)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}

// Category looks up a category by key.
func (e *ElementsConfig) Category(key string) (Category, bool) {
	if e == nil {
		return Category{}, false
	}
	for _, c := range e.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// trimOptionKeys drops blank option keys and trims the rest so lookups by a
// resolved value find their description.
func trimOptionKeys(category string, options map[string]LocalizedText) (map[string]LocalizedText, error) {
	if options == nil {
		return nil, nil
	}
	out := make(map[string]LocalizedText, len(options))
	for k, v := range options {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if _, dup := out[key]; dup {
			return nil, validation.Errorf("duplicate option key %s in category %s", key, category)
		}
		out[key] = v
	}
	return out, nil
}

func firstText(values ...LocalizedText) LocalizedText {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}
