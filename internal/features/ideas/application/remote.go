package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/infrastructure"
)

const (
	ideaTemperature       = 0.7
	productionTemperature = 0.5
)

// ProviderSettings are the server-side defaults for one provider. Request
// values override each field when non-blank.
type ProviderSettings struct {
	Name    domain.Provider
	BaseURL string
	Model   string
	APIKey  string
}

func (s ProviderSettings) resolve(cfg *domain.LLMConfig) (infrastructure.ChatRequest, error) {
	out := infrastructure.ChatRequest{BaseURL: s.BaseURL, Model: s.Model, APIKey: s.APIKey}
	if cfg != nil {
		if v := strings.TrimSpace(cfg.BaseURL); v != "" {
			out.BaseURL = v
		}
		if v := strings.TrimSpace(cfg.Model); v != "" {
			out.Model = v
		}
		if v := strings.TrimSpace(cfg.APIKey); v != "" {
			out.APIKey = v
		}
	}
	if out.APIKey == "" {
		return out, domain.ErrMissingAPIKey
	}
	return out, nil
}

// remoteIdeaGenerator asks a hosted model for ideas.
type remoteIdeaGenerator struct {
	settings ProviderSettings
	client   infrastructure.ChatClient
}

// NewRemoteIdeaGenerator creates an IdeaGenerator backed by client.
func NewRemoteIdeaGenerator(settings ProviderSettings, client infrastructure.ChatClient) IdeaGenerator {
	return &remoteIdeaGenerator{settings: settings, client: client}
}

// Generate fails on transport errors and unparseable replies. A parseable
// reply with missing fields degrades to an empty response in the request
// language.
func (g *remoteIdeaGenerator) Generate(ctx context.Context, req *domain.IdeaRequest, resolved domain.ResolvedSelections, _ OptionLists) (*domain.IdeaResponse, error) {
	call, err := g.settings.resolve(req.LLM)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildIdeaPrompt(req, resolved)
	if err != nil {
		return nil, err
	}
	call.Prompt = prompt
	call.Temperature = ideaTemperature

	log.Debug().Str("provider", string(g.settings.Name)).Str("model", call.Model).Msg("requesting ideas")
	content, err := g.client.Complete(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", g.settings.Name, err)
	}

	var parsed domain.IdeaResponse
	if err := infrastructure.ParseJSONContent(content, &parsed); err != nil {
		return nil, err
	}
	return normalizeIdeaResponse(&parsed, domain.ParseLanguage(req.Language)), nil
}

func normalizeIdeaResponse(resp *domain.IdeaResponse, fallback domain.Language) *domain.IdeaResponse {
	if strings.TrimSpace(resp.Language) == "" {
		resp.Language = string(fallback)
	}
	if resp.Ideas == nil {
		resp.Ideas = []domain.Idea{}
	}
	return resp
}

// remoteCodexPromptGenerator asks a hosted model to fill the production
// template. Empty or unparseable replies fall back to local rendering.
type remoteCodexPromptGenerator struct {
	settings ProviderSettings
	client   infrastructure.ChatClient
	local    CodexPromptGenerator
}

// NewRemoteCodexPromptGenerator creates a CodexPromptGenerator backed by client.
func NewRemoteCodexPromptGenerator(settings ProviderSettings, client infrastructure.ChatClient) CodexPromptGenerator {
	return &remoteCodexPromptGenerator{settings: settings, client: client, local: NewLocalCodexPromptGenerator()}
}

func (g *remoteCodexPromptGenerator) Generate(ctx context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error) {
	call, err := g.settings.resolve(req.LLM)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildProductionPromptMessages(req)
	if err != nil {
		return nil, err
	}
	call.Prompt = prompt
	call.Temperature = productionTemperature

	log.Debug().Str("provider", string(g.settings.Name)).Str("model", call.Model).Msg("requesting production prompt")
	content, err := g.client.Complete(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", g.settings.Name, err)
	}

	var parsed domain.CodexPromptResponse
	if err := infrastructure.ParseJSONContent(content, &parsed); err != nil || strings.TrimSpace(parsed.Prompt) == "" {
		log.Warn().Str("provider", string(g.settings.Name)).Msg("unusable production prompt reply, rendering locally")
		return g.local.Generate(ctx, req)
	}
	return &domain.CodexPromptResponse{Prompt: strings.TrimSpace(parsed.Prompt)}, nil
}
