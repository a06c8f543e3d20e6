package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/IAnMove/ideagenerator/internal/features/catalog/application"
	"github.com/IAnMove/ideagenerator/internal/validation"
)

// CatalogHandler holds the catalog service.
type CatalogHandler struct {
	catalogService application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService application.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type listsBody struct {
	Lists map[string][]string `json:"lists" binding:"required"`
}

type languagesBody struct {
	Languages []string `json:"languages" binding:"required"`
}

// Register mounts the list and language routes on group.
func (h *CatalogHandler) Register(group *gin.RouterGroup) {
	group.GET("/lists", h.GetListsHandler)
	group.PUT("/lists", h.PutListsHandler)
	group.GET("/languages", h.GetLanguagesHandler)
	group.PUT("/languages", h.PutLanguagesHandler)
}

// GetListsHandler returns the stored category lists.
func (h *CatalogHandler) GetListsHandler(c *gin.Context) {
	lists, err := h.catalogService.Lists()
	if err != nil {
		log.Error().Err(err).Msg("failed to load lists")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lists: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// PutListsHandler replaces the stored category lists.
func (h *CatalogHandler) PutListsHandler(c *gin.Context) {
	var body listsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogService.UpdateLists(body.Lists); err != nil {
		respondStoreError(c, "Failed to save lists", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetLanguagesHandler returns the supported UI languages.
func (h *CatalogHandler) GetLanguagesHandler(c *gin.Context) {
	languages, err := h.catalogService.Languages()
	if err != nil {
		log.Error().Err(err).Msg("failed to load languages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load languages: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// PutLanguagesHandler replaces the supported UI languages.
func (h *CatalogHandler) PutLanguagesHandler(c *gin.Context) {
	var body languagesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.catalogService.UpdateLanguages(body.Languages); err != nil {
		respondStoreError(c, "Failed to save languages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondStoreError(c *gin.Context, prefix string, err error) {
	if validation.Is(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Msg(prefix)
	c.JSON(http.StatusInternalServerError, gin.H{"error": prefix + ": " + err.Error()})
}
