package application

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// LLMBestSentinel asks the model to pick the architecture, pattern or stack.
const LLMBestSentinel = "__llm_best__"

var separators = regexp.MustCompile(`[-_]+`)

// Despace turns key separators into spaces: "clean_architecture" reads as
// "clean architecture".
func Despace(value string) string {
	return separators.ReplaceAllString(strings.TrimSpace(value), " ")
}

// FormatKeyLabel renders a key as a title-cased label.
func FormatKeyLabel(value string) string {
	runes := []rune(Despace(value))
	wordStart := true
	for i, r := range runes {
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		if isWord && wordStart {
			runes[i] = unicode.ToUpper(r)
		}
		wordStart = !isWord
	}
	return string(runes)
}

func capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// HintMode is the state of an architecture, pattern or stack hint.
type HintMode string

const (
	HintAbsent  HintMode = ""
	HintManual  HintMode = "manual"
	HintLLMBest HintMode = "llm_best"
)

// Hint is a parsed architecture, pattern or stack value.
type Hint struct {
	Mode HintMode
	Key  string
}

// ParseHint reads a raw hint value. Blank means absent.
func ParseHint(raw string) Hint {
	switch key := strings.TrimSpace(raw); key {
	case "":
		return Hint{}
	case LLMBestSentinel:
		return Hint{Mode: HintLLMBest}
	default:
		return Hint{Mode: HintManual, Key: key}
	}
}

// Label is the readable form of a manual hint.
func (h Hint) Label() string {
	if h.Mode != HintManual {
		return ""
	}
	return FormatKeyLabel(h.Key)
}

// hintPayload is how a hint is serialized into prompt input JSON.
type hintPayload struct {
	Mode  HintMode `json:"mode"`
	Key   string   `json:"key,omitempty"`
	Label string   `json:"label,omitempty"`
}

func (h Hint) payload() *hintPayload {
	if h.Mode == HintAbsent {
		return nil
	}
	return &hintPayload{Mode: h.Mode, Key: h.Key, Label: h.Label()}
}

// HintKind names what a hint applies to.
type HintKind string

const (
	HintArchitecture HintKind = "architecture"
	HintPattern      HintKind = "pattern"
	HintStack        HintKind = "stack"
)

var hintNames = map[domain.Language]map[HintKind]string{
	domain.LanguageEN: {HintArchitecture: "Architecture", HintPattern: "Pattern", HintStack: "Stack"},
	domain.LanguageES: {HintArchitecture: "Arquitectura", HintPattern: "Patron", HintStack: "Stack"},
}

// Line renders the hint as one line of build guidance. Absent hints render
// nothing.
func (h Hint) Line(language domain.Language, kind HintKind) string {
	name := hintNames[language][kind]
	switch h.Mode {
	case HintManual:
		return name + ": " + h.Label() + "."
	case HintLLMBest:
		if language == domain.LanguageEN {
			return name + ": choose the best option and justify it briefly."
		}
		return name + ": elige la mejor opcion y justificala brevemente."
	default:
		return ""
	}
}
