package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/config"
	catalogapp "github.com/IAnMove/ideagenerator/internal/features/catalog/application"
	catalog "github.com/IAnMove/ideagenerator/internal/features/catalog/domain"
	cataloginfra "github.com/IAnMove/ideagenerator/internal/features/catalog/infrastructure"
	catalog_http "github.com/IAnMove/ideagenerator/internal/features/catalog/presentation/http"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/application"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/infrastructure"
	ideas_http "github.com/IAnMove/ideagenerator/internal/features/ideas/presentation/http"
	"github.com/IAnMove/ideagenerator/internal/logging"
)

// Options swaps collaborators that tests need to control. Zero values use
// the real implementations.
type Options struct {
	ChatClient infrastructure.ChatClient
	Rand       application.Rand
}

// App holds the wired services.
type App struct {
	Catalog catalogapp.CatalogService
	Ideas   application.IdeaService
}

// Build wires storage, generators and services from cfg.
func Build(cfg *config.Config, opts Options) (*App, error) {
	var elements *catalog.ElementsConfig
	if cfg.ElementsPath != "" {
		loaded, err := cataloginfra.LoadElements(cfg.ElementsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load default elements: %w", err)
		}
		elements = loaded
		log.Info().Str("path", cfg.ElementsPath).Int("categories", len(loaded.Categories)).Msg("loaded default elements")
	}

	chat := opts.ChatClient
	if chat == nil {
		chat = infrastructure.NewOpenAIChatClient(cfg.Timeout)
	}

	registry := application.NewRegistry()
	for name, settings := range cfg.Providers {
		registry.Register(name,
			application.NewRemoteIdeaGenerator(settings, chat),
			application.NewRemoteCodexPromptGenerator(settings, chat))
	}

	catalogService := catalogapp.NewCatalogService(cataloginfra.NewJSONStore(cfg.DataPath))
	ideaService := application.NewIdeaService(
		catalogService,
		elements,
		application.NewIdeaRouter(application.NewLocalIdeaGenerator(opts.Rand), registry, cfg.DefaultProvider),
		application.NewCodexRouter(application.NewLocalCodexPromptGenerator(), registry, cfg.DefaultProvider),
		opts.Rand,
	)
	return &App{Catalog: catalogService, Ideas: ideaService}, nil
}

// Router builds the gin engine with every route mounted.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(), logging.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		catalog_http.NewCatalogHandler(a.Catalog).Register(api)
		ideas_http.NewIdeaHandler(a.Ideas).Register(api)
	}
	return r
}
