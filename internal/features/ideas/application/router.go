package application

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// Registry holds the remote generators by provider name.
type Registry struct {
	ideas map[domain.Provider]IdeaGenerator
	codex map[domain.Provider]CodexPromptGenerator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		ideas: map[domain.Provider]IdeaGenerator{},
		codex: map[domain.Provider]CodexPromptGenerator{},
	}
}

// Register adds both generators for a provider.
func (r *Registry) Register(name domain.Provider, ideas IdeaGenerator, codex CodexPromptGenerator) {
	r.ideas[name] = ideas
	r.codex[name] = codex
}

// chooseProvider returns the remote provider a request should use, or false
// for local generation. Requests without an explicit enabled flag stay
// local; unknown providers fall back to local too.
func chooseProvider(cfg *domain.LLMConfig, fallback domain.Provider, registered func(domain.Provider) bool) (domain.Provider, bool) {
	if !cfg.Wants() {
		return "", false
	}
	name := domain.Provider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if name == "" {
		name = fallback
	}
	if !registered(name) {
		log.Warn().Str("provider", string(name)).Msg("unknown LLM provider, using local generation")
		return "", false
	}
	return name, true
}

// IdeaRouter picks local or remote idea generation per request.
type IdeaRouter struct {
	local           IdeaGenerator
	registry        *Registry
	defaultProvider domain.Provider
}

// NewIdeaRouter creates an IdeaRouter.
func NewIdeaRouter(local IdeaGenerator, registry *Registry, defaultProvider domain.Provider) *IdeaRouter {
	return &IdeaRouter{local: local, registry: registry, defaultProvider: defaultProvider}
}

func (r *IdeaRouter) Generate(ctx context.Context, req *domain.IdeaRequest, resolved domain.ResolvedSelections, options OptionLists) (*domain.IdeaResponse, error) {
	name, remote := chooseProvider(req.LLM, r.defaultProvider, func(p domain.Provider) bool {
		_, ok := r.registry.ideas[p]
		return ok
	})
	log.Debug().Object("llm", req.LLM).Bool("remote", remote).Msg("routing idea generation")
	if !remote {
		return r.local.Generate(ctx, req, resolved, options)
	}
	return r.registry.ideas[name].Generate(ctx, req, resolved, options)
}

// CodexRouter picks local or remote production prompt generation.
type CodexRouter struct {
	local           CodexPromptGenerator
	registry        *Registry
	defaultProvider domain.Provider
}

// NewCodexRouter creates a CodexRouter.
func NewCodexRouter(local CodexPromptGenerator, registry *Registry, defaultProvider domain.Provider) *CodexRouter {
	return &CodexRouter{local: local, registry: registry, defaultProvider: defaultProvider}
}

func (r *CodexRouter) Generate(ctx context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error) {
	name, remote := chooseProvider(req.LLM, r.defaultProvider, func(p domain.Provider) bool {
		_, ok := r.registry.codex[p]
		return ok
	})
	log.Debug().Object("llm", req.LLM).Bool("remote", remote).Msg("routing production prompt")
	if !remote {
		return r.local.Generate(ctx, req)
	}
	return r.registry.codex[name].Generate(ctx, req)
}
