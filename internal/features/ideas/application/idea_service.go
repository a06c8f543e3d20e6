package application

import (
	"context"
	"fmt"
	"strings"

	catalogapp "github.com/IAnMove/ideagenerator/internal/features/catalog/application"
	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/infrastructure"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// IdeaService defines the interface for idea and prompt generation.
type IdeaService interface {
	GenerateIdeas(ctx context.Context, req *domain.IdeaRequest) (*domain.IdeaResponse, error)
	GenerateCodexPrompt(ctx context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error)
	BuildIdeaPrompt(ctx context.Context, req *domain.IdeaRequest) (*domain.ChatPrompt, error)
	ParseIdeaReply(content string, language string) (*domain.IdeaResponse, error)
}

// ideaService is the implementation of IdeaService.
type ideaService struct {
	catalog  catalogapp.CatalogService
	elements *catalog.ElementsConfig
	ideas    IdeaGenerator
	codex    CodexPromptGenerator
	rng      Rand
}

// NewIdeaService creates a new instance of ideaService. elements are the
// server defaults used when a request carries none and may be nil.
func NewIdeaService(catalogService catalogapp.CatalogService, elements *catalog.ElementsConfig, ideas IdeaGenerator, codex CodexPromptGenerator, rng Rand) IdeaService {
	if rng == nil {
		rng = DefaultRand()
	}
	return &ideaService{
		catalog:  catalogService,
		elements: elements,
		ideas:    ideas,
		codex:    codex,
		rng:      rng,
	}
}

func (s *ideaService) withDefaults(elements *catalog.ElementsConfig) *catalog.ElementsConfig {
	if elements != nil {
		return elements
	}
	return s.elements
}

// resolve applies default elements and turns the request's selections into
// concrete values.
func (s *ideaService) resolve(req *domain.IdeaRequest) (domain.ResolvedSelections, OptionLists, error) {
	req.Elements = s.withDefaults(req.Elements)
	lists, err := s.catalog.Lists()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load lists: %w", err)
	}
	options := CollectOptions(lists, req.Elements)
	resolved, err := ResolveSelections(req.Selections, options, domain.ParseLanguage(req.Language), s.rng)
	if err != nil {
		return nil, nil, err
	}
	return resolved, options, nil
}

// GenerateIdeas resolves selections and hands them to the configured
// generator.
func (s *ideaService) GenerateIdeas(ctx context.Context, req *domain.IdeaRequest) (*domain.IdeaResponse, error) {
	resolved, options, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	return s.ideas.Generate(ctx, req, resolved, options)
}

// GenerateCodexPrompt turns one idea into a production prompt.
func (s *ideaService) GenerateCodexPrompt(ctx context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error) {
	req.Elements = s.withDefaults(req.Elements)
	return s.codex.Generate(ctx, req)
}

// BuildIdeaPrompt returns the messages a user can paste into a chat model
// themselves.
func (s *ideaService) BuildIdeaPrompt(_ context.Context, req *domain.IdeaRequest) (*domain.ChatPrompt, error) {
	resolved, _, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildIdeaPrompt(req, resolved)
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// ParseIdeaReply reads a reply pasted back from a chat model. Unlike the
// remote path it insists on a complete answer.
func (s *ideaService) ParseIdeaReply(content string, language string) (*domain.IdeaResponse, error) {
	var parsed domain.IdeaResponse
	if err := infrastructure.ParseJSONContent(content, &parsed); err != nil {
		return nil, validation.Errorf("%s", err.Error())
	}
	resp := normalizeIdeaResponse(&parsed, domain.ParseLanguage(language))
	if err := ValidateIdeaResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ValidateIdeaResponse checks that a reply has three ideas with the
// required fields and scores in range.
func ValidateIdeaResponse(resp *domain.IdeaResponse) error {
	if len(resp.Ideas) != ideasPerResponse {
		return validation.Errorf("expected %d ideas, got %d", ideasPerResponse, len(resp.Ideas))
	}
	for i, idea := range resp.Ideas {
		if strings.TrimSpace(idea.Title) == "" {
			return validation.Errorf("idea %d is missing a title", i+1)
		}
		if strings.TrimSpace(idea.OneLiner) == "" {
			return validation.Errorf("idea %d is missing a oneLiner", i+1)
		}
		if strings.TrimSpace(idea.Solution) == "" {
			return validation.Errorf("idea %d is missing a solution", i+1)
		}
		if len(idea.MVP) == 0 {
			return validation.Errorf("idea %d has an empty mvp", i+1)
		}
		if idea.Score.Value < 1 || idea.Score.Value > 10 {
			return validation.Errorf("idea %d has score %v outside 1-10", i+1, idea.Score.Value)
		}
		for _, f := range idea.Validation.Fields() {
			if strings.TrimSpace(f.Value) == "" {
				return validation.Errorf("idea %d is missing %s", i+1, f.Name)
			}
		}
	}
	if strings.TrimSpace(resp.Prompt.Intro) == "" {
		return validation.Errorf("reply is missing prompt.intro")
	}
	if strings.TrimSpace(resp.Prompt.Technical) == "" {
		return validation.Errorf("reply is missing prompt.technical")
	}
	return nil
}
