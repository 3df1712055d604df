package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/render"
	"github.com/solar-catalog-api/internal/service"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// articleResponse adds the rendered body when format=html is requested
type articleResponse struct {
	*models.Article
	ContentHTML string `json:"contentHtml,omitempty"`
}

// List handles GET /v1/articles?category=...&q=...
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.services.Article.ListByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	articles = service.ArticleFilter{Query: c.Query("q")}.Apply(articles)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// Get handles GET /v1/articles/:id. The id may also be a title slug or a
// fragment of either.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	resp := articleResponse{Article: article}
	if c.Query("format") == "html" {
		resp.ContentHTML = render.ArticleHTML(article.Content)
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.services.Article.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update handles PATCH /v1/admin/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch models.ArticleUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := c.Param("id")
	if err := h.services.Article.Update(c.Request.Context(), id, &patch); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": "updated"})
}

// Delete handles DELETE /v1/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
