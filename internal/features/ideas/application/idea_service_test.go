package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// fakeCatalog serves fixed lists.
type fakeCatalog struct {
	lists map[string][]string
	err   error
}

func (f *fakeCatalog) Lists() (map[string][]string, error)   { return f.lists, f.err }
func (f *fakeCatalog) UpdateLists(map[string][]string) error { return nil }
func (f *fakeCatalog) Languages() ([]string, error)          { return []string{"es", "en"}, nil }
func (f *fakeCatalog) UpdateLanguages([]string) error        { return nil }

// capturingIdeas records what it was asked to generate.
type capturingIdeas struct {
	req      *domain.IdeaRequest
	resolved domain.ResolvedSelections
}

func (c *capturingIdeas) Generate(_ context.Context, req *domain.IdeaRequest, resolved domain.ResolvedSelections, _ OptionLists) (*domain.IdeaResponse, error) {
	c.req, c.resolved = req, resolved
	return &domain.IdeaResponse{Language: "en"}, nil
}

func newTestService(lists map[string][]string, elements *catalog.ElementsConfig, ideas IdeaGenerator) IdeaService {
	return NewIdeaService(&fakeCatalog{lists: lists}, elements, ideas, NewLocalCodexPromptGenerator(), zeroRand())
}

func TestGenerateIdeasResolvesAgainstStoredLists(t *testing.T) {
	ideas := &capturingIdeas{}
	svc := newTestService(map[string][]string{"sector": {"salud", "finanzas"}}, nil, ideas)

	_, err := svc.GenerateIdeas(context.Background(), &domain.IdeaRequest{
		Language:   "es",
		Selections: map[string]domain.SelectionConfig{"sector": mode(domain.ModeDecide), "audience": mode(domain.ModeRandom)},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResolvedSelections{"sector": "salud", "audience": "usuarios"}, ideas.resolved)
}

func TestGenerateIdeasAppliesDefaultElements(t *testing.T) {
	ideas := &capturingIdeas{}
	defaults := &catalog.ElementsConfig{Categories: []catalog.Category{{
		Key:     "sector",
		Options: map[string]catalog.LocalizedText{"edtech": nil},
	}}}
	svc := newTestService(map[string][]string{"sector": {"salud"}}, defaults, ideas)

	_, err := svc.GenerateIdeas(context.Background(), &domain.IdeaRequest{
		Language:   "en",
		Selections: map[string]domain.SelectionConfig{"sector": mode(domain.ModeDecide)},
	})
	require.NoError(t, err)
	assert.Equal(t, "edtech", ideas.resolved["sector"])
	assert.Same(t, defaults, ideas.req.Elements)
}

func TestGenerateIdeasSurfacesStoreFailure(t *testing.T) {
	svc := NewIdeaService(&fakeCatalog{err: errors.New("disk gone")}, nil, &capturingIdeas{}, NewLocalCodexPromptGenerator(), zeroRand())
	_, err := svc.GenerateIdeas(context.Background(), &domain.IdeaRequest{Language: "en"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestBuildIdeaPromptRejectsBlankManual(t *testing.T) {
	svc := newTestService(nil, nil, &capturingIdeas{})
	_, err := svc.BuildIdeaPrompt(context.Background(), &domain.IdeaRequest{
		Language:   "en",
		Selections: map[string]domain.SelectionConfig{"sector": manual(" ")},
	})
	assert.True(t, validation.Is(err))
}

func TestGenerateCodexPromptLocal(t *testing.T) {
	svc := newTestService(nil, nil, &capturingIdeas{})
	resp, err := svc.GenerateCodexPrompt(context.Background(), &domain.CodexPromptRequest{
		Language: "en", TemplateLevel: domain.TemplateBasic, Idea: domain.Idea{Title: "Ledger"},
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Prompt, `"title": "Ledger"`)
}

func completeReply(t *testing.T) string {
	t.Helper()
	resp, err := NewLocalIdeaGenerator(zeroRand()).Generate(context.Background(),
		&domain.IdeaRequest{Language: "en", TemplateLevel: domain.TemplateBasic}, domain.ResolvedSelections{}, nil)
	require.NoError(t, err)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestParseIdeaReplyAcceptsWrappedJSON(t *testing.T) {
	svc := newTestService(nil, nil, &capturingIdeas{})
	resp, err := svc.ParseIdeaReply("Here you go:\n"+completeReply(t)+"\nThanks", "en")
	require.NoError(t, err)
	assert.Len(t, resp.Ideas, 3)
}

func TestParseIdeaReplyReportsFirstProblem(t *testing.T) {
	svc := newTestService(nil, nil, &capturingIdeas{})

	_, err := svc.ParseIdeaReply("nothing useful", "en")
	require.True(t, validation.Is(err))
	assert.Contains(t, err.Error(), "Failed to parse JSON from LLM response")

	var reply domain.IdeaResponse
	require.NoError(t, json.Unmarshal([]byte(completeReply(t)), &reply))
	reply.Ideas[1].Risks = ""
	reply.Ideas[1].Retention = " "
	data, err := json.Marshal(reply)
	require.NoError(t, err)

	_, err = svc.ParseIdeaReply(string(data), "en")
	require.True(t, validation.Is(err))
	assert.Equal(t, "idea 2 is missing retention", err.Error())
}

func TestValidateIdeaResponse(t *testing.T) {
	var reply domain.IdeaResponse
	require.NoError(t, json.Unmarshal([]byte(completeReply(t)), &reply))
	require.NoError(t, ValidateIdeaResponse(&reply))

	short := reply
	short.Ideas = reply.Ideas[:2]
	assert.EqualError(t, ValidateIdeaResponse(&short), "expected 3 ideas, got 2")

	reply.Ideas[0].Score.Value = 11
	assert.EqualError(t, ValidateIdeaResponse(&reply), "idea 1 has score 11 outside 1-10")
}
