package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/solar-catalog-api/internal/models"
	"github.com/solar-catalog-api/internal/service"
	"github.com/solar-catalog-api/internal/validation"
)

// sourceHeader tells clients whether a product response came from the store or the seed
const sourceHeader = "X-Content-Source"

// ProductHandler handles product endpoints
type ProductHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(services *service.Services, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		services: services,
		log:      log.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /v1/products?category=...&availability=...&q=...
func (h *ProductHandler) List(c *gin.Context) {
	availability := c.Query("availability")
	if !validation.ValidCategoryFilter(availability, models.ValidAvailabilities) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "availability must be one of: available, pre-order, coming-soon, discontinued"})
		return
	}

	// Availability alone is answered by the store query with its own seed
	// fallback. Combined with a category, the category query decides the
	// source and availability narrows its result.
	ctx := c.Request.Context()
	category := c.Query("category")
	filter := service.ProductFilter{Query: c.Query("q")}

	var set *models.ProductSet
	var err error
	if category == "" || category == "all" {
		set, err = h.services.Product.ListByAvailability(ctx, availability)
	} else {
		set, err = h.services.Product.ListByCategory(ctx, category)
		filter.Availability = availability
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	products := filter.Apply(set.Products)
	c.Header(sourceHeader, string(set.Source))
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
		"source":   set.Source,
	})
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, source, err := h.services.Product.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.Header(sourceHeader, string(source))
	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"source":  source,
	})
}

// Create handles POST /v1/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Product.Create(c.Request.Context(), &product); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": product.ID})
}

// Update handles PATCH /v1/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	var patch models.ProductUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id := c.Param("id")
	if err := h.services.Product.Update(c.Request.Context(), id, &patch); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": "updated"})
}

// Delete handles DELETE /v1/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.services.Product.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Seed handles POST /v1/admin/products/seed
func (h *ProductHandler) Seed(c *gin.Context) {
	report, err := h.services.Product.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
