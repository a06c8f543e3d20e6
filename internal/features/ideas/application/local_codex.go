package application

import (
	"context"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

type localCodexPromptGenerator struct{}

// NewLocalCodexPromptGenerator renders production prompts from templates only.
func NewLocalCodexPromptGenerator() CodexPromptGenerator {
	return localCodexPromptGenerator{}
}

func (localCodexPromptGenerator) Generate(_ context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error) {
	prompt, err := BuildProductionPrompt(req)
	if err != nil {
		return nil, err
	}
	return &domain.CodexPromptResponse{Prompt: prompt}, nil
}
