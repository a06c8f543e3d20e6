package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// ErrMissingAPIKey is returned when a remote provider is selected but neither
// the request nor the server configuration carries a key.
var ErrMissingAPIKey = errors.New("Missing LLM API key")

// Language is the normalized prompt language. Anything other than English is
// rendered in Spanish.
type Language string

const (
	LanguageES Language = "es"
	LanguageEN Language = "en"
)

// ParseLanguage maps a request language code onto a supported one.
func ParseLanguage(code string) Language {
	if strings.EqualFold(strings.TrimSpace(code), "en") {
		return LanguageEN
	}
	return LanguageES
}

// TemplateLevel controls how detailed the technical prompt is.
type TemplateLevel string

const (
	TemplateBasic    TemplateLevel = "basic"
	TemplateAdvanced TemplateLevel = "advanced"
)

// SelectionMode says how one category's value is chosen.
type SelectionMode string

const (
	ModeManual SelectionMode = "manual"
	ModeDecide SelectionMode = "decide"
	ModeRandom SelectionMode = "random"
	ModeIgnore SelectionMode = "ignore"
)

// UnmarshalJSON folds the aliases used by older clients into the current
// modes: "llm" means decide and "none" means ignore.
func (m *SelectionMode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return validation.Errorf("selection mode must be a string")
	}
	switch mode := SelectionMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case ModeManual, ModeDecide, ModeRandom, ModeIgnore:
		*m = mode
	case "llm":
		*m = ModeDecide
	case "none":
		*m = ModeIgnore
	default:
		return validation.Errorf("unknown selection mode: %s", raw)
	}
	return nil
}

// SelectionConfig is the per-category intent sent by the form.
type SelectionConfig struct {
	Mode  SelectionMode `json:"mode"`
	Value *string       `json:"value,omitempty"`
}

// TrimmedValue returns the manual value without surrounding whitespace.
func (s SelectionConfig) TrimmedValue() string {
	if s.Value == nil {
		return ""
	}
	return strings.TrimSpace(*s.Value)
}

// ResolvedSelections maps category key to its concrete value.
type ResolvedSelections map[string]string

// Constraints are optional free-text limits for the build.
type Constraints struct {
	Time   string `json:"time,omitempty"`
	Effort string `json:"effort,omitempty"`
	Budget string `json:"budget,omitempty"`
}

// Trimmed returns a copy with whitespace stripped, or nil when every field is
// blank.
func (c *Constraints) Trimmed() *Constraints {
	if c == nil {
		return nil
	}
	out := Constraints{
		Time:   strings.TrimSpace(c.Time),
		Effort: strings.TrimSpace(c.Effort),
		Budget: strings.TrimSpace(c.Budget),
	}
	if out == (Constraints{}) {
		return nil
	}
	return &out
}

// Provider names a hosted chat-completion backend.
type Provider string

const (
	ProviderDeepSeek Provider = "deepseek"
	ProviderOpenAI   Provider = "openai"
)

// LLMConfig is the per-request remote generation setting. APIKey is
// transient: it is never persisted and never logged.
type LLMConfig struct {
	Enabled  *bool    `json:"enabled,omitempty"`
	Provider Provider `json:"provider,omitempty"`
	Model    string   `json:"model,omitempty"`
	BaseURL  string   `json:"baseUrl,omitempty"`
	APIKey   string   `json:"apiKey,omitempty"`
}

// Wants reports whether the request explicitly asked for a remote provider.
func (c *LLMConfig) Wants() bool {
	return c != nil && c.Enabled != nil && *c.Enabled
}

// MarshalZerologObject logs everything except the key.
func (c *LLMConfig) MarshalZerologObject(e *zerolog.Event) {
	if c == nil {
		return
	}
	e.Bool("enabled", c.Wants()).
		Str("provider", string(c.Provider)).
		Str("model", c.Model).
		Str("base_url", c.BaseURL).
		Bool("has_api_key", c.APIKey != "")
}

// IdeaRequest is the body of POST /api/v1/ideas.
type IdeaRequest struct {
	Language      string                     `json:"language" binding:"required,min=2"`
	TemplateLevel TemplateLevel              `json:"templateLevel" binding:"required,oneof=basic advanced"`
	Architecture  string                     `json:"architecture,omitempty"`
	Selections    map[string]SelectionConfig `json:"selections"`
	Elements      *catalog.ElementsConfig    `json:"elements,omitempty"`
	ExtraNotes    string                     `json:"extraNotes,omitempty"`
	Constraints   *Constraints               `json:"constraints,omitempty"`
	LLM           *LLMConfig                 `json:"llm,omitempty"`
}

// Score is the 1-10 rating of an idea with its reasons.
type Score struct {
	Value   float64  `json:"value"`
	Reasons []string `json:"reasons"`
}

// Validation groups the eight market validation fields of an idea.
type Validation struct {
	PainFrequency    string `json:"painFrequency"`
	WillingnessToPay string `json:"willingnessToPay"`
	Alternatives     string `json:"alternatives"`
	ROIImpact        string `json:"roiImpact"`
	AdoptionFriction string `json:"adoptionFriction"`
	Acquisition      string `json:"acquisition"`
	Retention        string `json:"retention"`
	Risks            string `json:"risks"`
}

// ValidationField is one named market validation answer.
type ValidationField struct {
	Name  string
	Value string
}

// Fields returns the validation fields in wire order.
func (v Validation) Fields() []ValidationField {
	return []ValidationField{
		{"painFrequency", v.PainFrequency},
		{"willingnessToPay", v.WillingnessToPay},
		{"alternatives", v.Alternatives},
		{"roiImpact", v.ROIImpact},
		{"adoptionFriction", v.AdoptionFriction},
		{"acquisition", v.Acquisition},
		{"retention", v.Retention},
		{"risks", v.Risks},
	}
}

// Idea is one generated startup idea. The validation fields are flattened
// into the idea object on the wire.
type Idea struct {
	Title          string            `json:"title"`
	OneLiner       string            `json:"oneLiner"`
	Inputs         map[string]string `json:"inputs,omitempty"`
	Sector         string            `json:"sector,omitempty"`
	Audience       string            `json:"audience,omitempty"`
	Problem        string            `json:"problem,omitempty"`
	Solution       string            `json:"solution"`
	Differentiator string            `json:"differentiator"`
	MVP            []string          `json:"mvp"`
	Score          Score             `json:"score"`
	Pros           []string          `json:"pros"`
	Cons           []string          `json:"cons"`
	Validation
}

// IdeaPrompt is the narrative plus technical build prompt returned with ideas.
type IdeaPrompt struct {
	Intro     string `json:"intro"`
	Technical string `json:"technical"`
}

// IdeaResponse is the body returned by POST /api/v1/ideas.
type IdeaResponse struct {
	Language          string     `json:"language"`
	Ideas             []Idea     `json:"ideas"`
	Prompt            IdeaPrompt `json:"prompt"`
	SuggestedLanguage string     `json:"suggestedLanguage,omitempty"`
}

// CodexPromptRequest is the body of POST /api/v1/codex-prompt.
type CodexPromptRequest struct {
	Language      string                  `json:"language" binding:"required,min=2"`
	TemplateLevel TemplateLevel           `json:"templateLevel" binding:"required,oneof=basic advanced"`
	Architecture  string                  `json:"architecture,omitempty"`
	Pattern       string                  `json:"pattern,omitempty"`
	Stack         string                  `json:"stack,omitempty"`
	Idea          Idea                    `json:"idea"`
	Elements      *catalog.ElementsConfig `json:"elements,omitempty"`
	ExtraNotes    string                  `json:"extraNotes,omitempty"`
	Constraints   *Constraints            `json:"constraints,omitempty"`
	LLM           *LLMConfig              `json:"llm,omitempty"`
}

// CodexPromptResponse carries the production prompt.
type CodexPromptResponse struct {
	Prompt string `json:"prompt"`
}

// ChatPrompt is a system/user message pair.
type ChatPrompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}
