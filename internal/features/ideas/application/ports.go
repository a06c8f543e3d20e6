package application

import (
	"context"
	"math/rand/v2"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// IdeaGenerator produces the three-idea response for already resolved
// selections.
type IdeaGenerator interface {
	Generate(ctx context.Context, req *domain.IdeaRequest, resolved domain.ResolvedSelections, options OptionLists) (*domain.IdeaResponse, error)
}

// CodexPromptGenerator turns one idea into a production prompt.
type CodexPromptGenerator interface {
	Generate(ctx context.Context, req *domain.CodexPromptRequest) (*domain.CodexPromptResponse, error)
}

// Rand is the random source used for picks. *rand.Rand satisfies it, so
// tests can pass a seeded generator.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRand draws from the process-wide, goroutine-safe source.
func DefaultRand() Rand { return globalRand{} }
