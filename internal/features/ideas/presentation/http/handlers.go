package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/ideas/application"
	"github.com/IAnMove/ideagenerator/internal/features/ideas/domain"
)

// APIKeyHeader overrides the request body's llm.apiKey.
const APIKeyHeader = "x-llm-api-key"

// IdeaHandler holds the idea service.
type IdeaHandler struct {
	ideaService application.IdeaService
}

// NewIdeaHandler creates a new IdeaHandler.
func NewIdeaHandler(ideaService application.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

type parseBody struct {
	Content  string `json:"content" binding:"required"`
	Language string `json:"language"`
}

// Register mounts the idea routes on group.
func (h *IdeaHandler) Register(group *gin.RouterGroup) {
	group.POST("/ideas", h.GenerateIdeasHandler)
	group.POST("/ideas/parse", h.ParseIdeasHandler)
	group.POST("/idea-prompt", h.IdeaPromptHandler)
	group.POST("/codex-prompt", h.CodexPromptHandler)
}

// applyKeyHeader lets the header key win over any key in the body.
func applyKeyHeader(c *gin.Context, cfg **domain.LLMConfig) {
	key := strings.TrimSpace(c.GetHeader(APIKeyHeader))
	if key == "" {
		return
	}
	if *cfg == nil {
		*cfg = &domain.LLMConfig{}
	}
	(*cfg).APIKey = key
}

// GenerateIdeasHandler handles POST /ideas.
func (h *IdeaHandler) GenerateIdeasHandler(c *gin.Context) {
	var req domain.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applyKeyHeader(c, &req.LLM)

	resp, err := h.ideaService.GenerateIdeas(c.Request.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate ideas")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CodexPromptHandler handles POST /codex-prompt.
func (h *IdeaHandler) CodexPromptHandler(c *gin.Context) {
	var req domain.CodexPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applyKeyHeader(c, &req.LLM)

	resp, err := h.ideaService.GenerateCodexPrompt(c.Request.Context(), &req)
	if err != nil {
		log.Warn().Err(err).Msg("failed to generate production prompt")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// IdeaPromptHandler returns the messages for manual chat mode.
func (h *IdeaHandler) IdeaPromptHandler(c *gin.Context) {
	var req domain.IdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := h.ideaService.BuildIdeaPrompt(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prompt)
}

// ParseIdeasHandler validates a reply pasted back from a chat model.
func (h *IdeaHandler) ParseIdeasHandler(c *gin.Context) {
	var body parseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.ideaService.ParseIdeaReply(body.Content, body.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
