package application

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

func TestScoreFromSeed(t *testing.T) {
	assert.Equal(t, 8, ScoreFromSeed("a"))
	assert.Equal(t, 8, ScoreFromSeed("finanzas-pymes-0"))
	assert.Equal(t, 9, ScoreFromSeed("finanzas-pymes-1"))
	assert.Equal(t, 10, ScoreFromSeed("finanzas-pymes-2"))
	assert.Equal(t, 7, ScoreFromSeed("salud-ñandú-1"))
	assert.Equal(t, 6, ScoreFromSeed(""))
}

func TestPickUniqueDrawsWithoutReplacement(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	picked := pickUnique(pool, 3, rand.New(rand.NewPCG(7, 7)))
	require.Len(t, picked, 3)
	seen := map[string]bool{}
	for _, p := range picked {
		assert.False(t, seen[p])
		assert.Contains(t, pool, p)
		seen[p] = true
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, pool)
	assert.Len(t, pickUnique([]string{"x"}, 3, zeroRand()), 1)
}

func TestLocalIdeasShape(t *testing.T) {
	gen := NewLocalIdeaGenerator(rand.New(rand.NewPCG(1, 2)))
	req := &domain.IdeaRequest{Language: "en", TemplateLevel: domain.TemplateBasic}
	resolved := domain.ResolvedSelections{
		"sector": "finanzas", "audience": "pymes", "problem": "cash_flow",
		"productType": "saas", "channel": "seo",
	}

	resp, err := gen.Generate(context.Background(), req, resolved, nil)
	require.NoError(t, err)

	assert.Equal(t, "en", resp.Language)
	require.Len(t, resp.Ideas, 3)
	for i, idea := range resp.Ideas {
		assert.NotEmpty(t, idea.Title)
		assert.NotEmpty(t, idea.OneLiner)
		assert.Len(t, idea.MVP, 3)
		assert.Len(t, idea.Pros, 3)
		assert.Len(t, idea.Cons, 3)
		assert.Len(t, idea.Score.Reasons, 3)
		assert.GreaterOrEqual(t, idea.Score.Value, 6.0)
		assert.LessOrEqual(t, idea.Score.Value, 10.0)
		for _, f := range idea.Validation.Fields() {
			assert.NotEmpty(t, f.Value, "idea %d field %s", i, f.Name)
		}
		assert.Equal(t, "finanzas", idea.Inputs["sector"])
	}
	assert.Equal(t, []float64{8, 9, 10}, []float64{
		resp.Ideas[0].Score.Value, resp.Ideas[1].Score.Value, resp.Ideas[2].Score.Value,
	})
	assert.Equal(t, "Saas for pymes in finanzas", resp.Ideas[0].Title)
	assert.Equal(t, "Saas that helps pymes improve cash flow with a seo go-to-market.", resp.Ideas[0].OneLiner)
	assert.Equal(t, "Differentiator: mobile-first experience.", resp.Ideas[1].Differentiator)
	assert.NotEmpty(t, resp.Prompt.Intro)
	assert.True(t, strings.HasPrefix(resp.Prompt.Technical, "Technical prompt:\n"))
}

func TestLocalIdeasFallBackForMissingSelections(t *testing.T) {
	gen := NewLocalIdeaGenerator(zeroRand())
	resp, err := gen.Generate(context.Background(), &domain.IdeaRequest{Language: "es", TemplateLevel: domain.TemplateBasic}, domain.ResolvedSelections{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "es", resp.Language)
	assert.Equal(t, "App web para usuarios en general", resp.Ideas[0].Title)
	assert.Equal(t, "Aplicacion para usuarios en el sector general que resuelve un problema frecuente. Se distribuye via organico y prioriza un MVP rapido.", resp.Prompt.Intro)
	assert.Equal(t, "usuarios", resp.Ideas[0].Audience)
}

func TestLocalTechnicalPromptLines(t *testing.T) {
	gen := NewLocalIdeaGenerator(zeroRand())
	req := &domain.IdeaRequest{
		Language:      "en",
		TemplateLevel: domain.TemplateAdvanced,
		Architecture:  "hexagonal",
		Selections: map[string]domain.SelectionConfig{
			"pattern": mode(domain.ModeDecide),
			"stack":   mode(domain.ModeIgnore),
		},
		Constraints: &domain.Constraints{Time: "2 weeks", Budget: " "},
		ExtraNotes:  " offline first ",
	}
	resp, err := gen.Generate(context.Background(), req, domain.ResolvedSelections{"pattern": "event_sourcing"}, nil)
	require.NoError(t, err)

	lines := strings.Split(resp.Prompt.Technical, "\n")
	assert.Contains(t, lines, "Template level: advanced.")
	assert.Contains(t, lines, "Architecture: Hexagonal.")
	assert.Contains(t, lines, "Pattern: Event Sourcing.")
	assert.Contains(t, lines, "Available time: 2 weeks.")
	assert.Contains(t, lines, "Extra notes: offline first.")
	assert.Contains(t, lines, "Add structured logging, centralized error handling and per-environment configuration.")
	for _, line := range lines {
		assert.False(t, strings.HasPrefix(line, "Stack:"), line)
		assert.False(t, strings.HasPrefix(line, "Budget:"), line)
	}
}

func TestLocalTechnicalPromptLetsModelChoose(t *testing.T) {
	gen := NewLocalIdeaGenerator(zeroRand())
	req := &domain.IdeaRequest{Language: "es", TemplateLevel: domain.TemplateBasic, Architecture: LLMBestSentinel}
	resp, err := gen.Generate(context.Background(), req, domain.ResolvedSelections{}, nil)
	require.NoError(t, err)

	assert.Contains(t, resp.Prompt.Technical, "\nArquitectura: elige la mejor opcion y justificala brevemente.\n")
	assert.NotContains(t, resp.Prompt.Technical, "Patron:")
	assert.NotContains(t, resp.Prompt.Technical, "logging estructurado")
}
