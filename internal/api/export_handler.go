package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/service"
)

// ExportHandler handles admin export endpoints
type ExportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(services *service.Services, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		services: services,
		log:      log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /v1/admin/exports?resource=...&format=...
// Streams the stored collection directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	if req.Resource == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource parameter is required (articles, products)"})
		return
	}
	if req.Resource != "articles" && req.Resource != "products" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource must be one of: articles, products"})
		return
	}

	if req.Format == "" {
		req.Format = service.FormatNDJSON
	}
	if req.Format != service.FormatNDJSON && req.Format != service.FormatJSON {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of: ndjson, json"})
		return
	}

	h.log.Info().
		Str("resource", req.Resource).
		Str("format", req.Format).
		Msg("Starting streaming export")

	var err error
	switch req.Resource {
	case "articles":
		err = h.services.Export.StreamArticles(ctx, c.Writer, req.Format)
	case "products":
		err = h.services.Export.StreamProducts(ctx, c.Writer, req.Format)
	}

	if err != nil {
		h.log.Error().Err(err).Str("resource", req.Resource).Msg("Export failed")
		if !c.Writer.Written() {
			respondError(c, h.log, err)
		}
	}
}
