package application

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

func TestResolveManualTrimsValue(t *testing.T) {
	resolved, err := ResolveSelections(map[string]domain.SelectionConfig{
		"sector": manual("  fintech  "),
	}, nil, domain.LanguageEN, zeroRand())
	require.NoError(t, err)
	assert.Equal(t, domain.ResolvedSelections{"sector": "fintech"}, resolved)
}

func TestResolveManualBlankIsValidationError(t *testing.T) {
	for _, cfg := range []domain.SelectionConfig{manual("   "), {Mode: domain.ModeManual}} {
		_, err := ResolveSelections(map[string]domain.SelectionConfig{"audience": cfg}, nil, domain.LanguageEN, zeroRand())
		require.Error(t, err)
		assert.True(t, validation.Is(err))
		assert.Equal(t, "Missing manual value for audience", err.Error())
	}
}

func TestResolveRejectsKeysThatTrimToTheSameName(t *testing.T) {
	_, err := ResolveSelections(map[string]domain.SelectionConfig{
		"sector":  manual("fintech"),
		" sector": mode(domain.ModeIgnore),
	}, nil, domain.LanguageEN, zeroRand())
	require.Error(t, err)
	assert.True(t, validation.Is(err))
	assert.Equal(t, "duplicate selection key: sector", err.Error())
}

func TestResolveIgnoreOmitsKey(t *testing.T) {
	resolved, err := ResolveSelections(map[string]domain.SelectionConfig{
		"sector":  mode(domain.ModeIgnore),
		"channel": manual("seo"),
	}, OptionLists{"sector": {"health"}}, domain.LanguageEN, zeroRand())
	require.NoError(t, err)
	assert.Equal(t, domain.ResolvedSelections{"channel": "seo"}, resolved)
}

func TestResolveDecidePicksFromCleanedOptions(t *testing.T) {
	options := OptionLists{"sector": {"  ", "health", "", " retail "}}
	resolved, err := ResolveSelections(map[string]domain.SelectionConfig{
		"sector": mode(domain.ModeDecide),
	}, options, domain.LanguageEN, &stepRand{values: []int{1}})
	require.NoError(t, err)
	assert.Equal(t, "retail", resolved["sector"])
}

func TestResolveRandomIsMemberOfOptions(t *testing.T) {
	options := OptionLists{"stack": {"go", "python", "typescript"}}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		resolved, err := ResolveSelections(map[string]domain.SelectionConfig{
			"stack": mode(domain.ModeRandom),
		}, options, domain.LanguageEN, rng)
		require.NoError(t, err)
		assert.Contains(t, options["stack"], resolved["stack"])
	}
}

func TestResolveFallbacksWhenNoOptions(t *testing.T) {
	selections := map[string]domain.SelectionConfig{}
	for _, key := range catalog.BuiltinLists {
		selections[key] = mode(domain.ModeDecide)
	}
	selections["mood"] = mode(domain.ModeDecide)

	en, err := ResolveSelections(selections, nil, domain.LanguageEN, zeroRand())
	require.NoError(t, err)
	assert.Equal(t, "users", en["audience"])
	assert.Equal(t, "a common pain", en["problem"])
	assert.Equal(t, "web app", en["productType"])
	assert.Equal(t, "organic", en["channel"])
	assert.Equal(t, "general", en["mood"])

	es, err := ResolveSelections(selections, OptionLists{"audience": {" "}}, domain.LanguageES, zeroRand())
	require.NoError(t, err)
	assert.Equal(t, "usuarios", es["audience"])
	assert.Equal(t, "un problema frecuente", es["problem"])
	assert.Equal(t, "app web", es["productType"])
	assert.Equal(t, "organico", es["channel"])
	assert.Equal(t, "ddd", es["pattern"])
	assert.Equal(t, "typescript", es["stack"])
}

func TestResolveVisitsKeysInSortedOrder(t *testing.T) {
	options := OptionLists{"a": {"a0", "a1"}, "b": {"b0", "b1"}}
	selections := map[string]domain.SelectionConfig{
		"b": mode(domain.ModeRandom),
		"a": mode(domain.ModeRandom),
	}
	resolved, err := ResolveSelections(selections, options, domain.LanguageEN, &stepRand{values: []int{1, 0}})
	require.NoError(t, err)
	assert.Equal(t, "a1", resolved["a"])
	assert.Equal(t, "b0", resolved["b"])
}

func TestCollectOptionsPrefersElements(t *testing.T) {
	stored := map[string][]string{
		"sector":   {"finanzas", " "},
		"audience": {"pymes"},
	}
	elements := &catalog.ElementsConfig{Categories: []catalog.Category{
		{Key: "sector", Options: map[string]catalog.LocalizedText{"retail": nil, "health": nil}},
		{Key: "audience"},
	}}
	options := CollectOptions(stored, elements)
	assert.Equal(t, []string{"health", "retail"}, options["sector"])
	assert.Equal(t, []string{"pymes"}, options["audience"])

	options = CollectOptions(stored, nil)
	assert.Equal(t, []string{"finanzas"}, options["sector"])
}
