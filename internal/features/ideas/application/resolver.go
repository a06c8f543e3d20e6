package application

import (
	"sort"
	"strings"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// OptionLists maps a category key to the values a random pick may choose.
type OptionLists map[string][]string

// placeholderValue stands in for categories with no options and no
// built-in fallback.
const placeholderValue = "general"

var fallbackValues = map[domain.Language]map[string]string{
	domain.LanguageEN: {
		catalog.ListSector:      "general",
		catalog.ListAudience:    "users",
		catalog.ListProblem:     "a common pain",
		catalog.ListProductType: "web app",
		catalog.ListChannel:     "organic",
		catalog.ListPattern:     "ddd",
		catalog.ListStack:       "typescript",
	},
	domain.LanguageES: {
		catalog.ListSector:      "general",
		catalog.ListAudience:    "usuarios",
		catalog.ListProblem:     "un problema frecuente",
		catalog.ListProductType: "app web",
		catalog.ListChannel:     "organico",
		catalog.ListPattern:     "ddd",
		catalog.ListStack:       "typescript",
	},
}

// FallbackValue is the value used when a category has nothing to pick from.
func FallbackValue(language domain.Language, key string) string {
	if v, ok := fallbackValues[language][key]; ok {
		return v
	}
	return placeholderValue
}

// CollectOptions merges the stored lists with the request's elements. A
// category configured in elements with at least one option uses those option
// keys; everything else uses the stored list.
func CollectOptions(stored map[string][]string, elements *catalog.ElementsConfig) OptionLists {
	out := make(OptionLists, len(stored))
	for key, items := range stored {
		out[key] = cleanOptions(items)
	}
	if elements != nil {
		for _, c := range elements.Categories {
			if keys := c.OptionKeys(); len(keys) > 0 {
				out[c.Key] = keys
			}
		}
	}
	return out
}

func cleanOptions(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ResolveSelections turns selection intents into concrete values. Ignored
// categories are left out. Keys are visited in sorted order so a seeded rng
// gives repeatable picks.
func ResolveSelections(selections map[string]domain.SelectionConfig, options OptionLists, language domain.Language, rng Rand) (domain.ResolvedSelections, error) {
	keys := make([]string, 0, len(selections))
	for key := range selections {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resolved := make(domain.ResolvedSelections, len(selections))
	seen := make(map[string]struct{}, len(selections))
	for _, key := range keys {
		cfg := selections[key]
		name := strings.TrimSpace(key)
		if name == "" {
			return nil, validation.Errorf("selection keys must not be empty")
		}
		if _, dup := seen[name]; dup {
			return nil, validation.Errorf("duplicate selection key: %s", name)
		}
		seen[name] = struct{}{}

		switch cfg.Mode {
		case domain.ModeIgnore:
			continue
		case domain.ModeManual:
			value := cfg.TrimmedValue()
			if value == "" {
				return nil, validation.Errorf("Missing manual value for %s", name)
			}
			resolved[name] = value
		case domain.ModeDecide, domain.ModeRandom:
			resolved[name] = pickOne(cleanOptions(options[name]), rng, func() string {
				return FallbackValue(language, name)
			})
		default:
			return nil, validation.Errorf("unknown selection mode for %s: %q", name, cfg.Mode)
		}
	}
	return resolved, nil
}

func pickOne(items []string, rng Rand, fallback func() string) string {
	if len(items) == 0 {
		return fallback()
	}
	return items[rng.IntN(len(items))]
}
