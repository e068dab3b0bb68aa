package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
)

// CatalogHandler handles HTTP requests for the product catalog. The catalog
// is public; browsing needs no session.
type CatalogHandler struct {
	catalogService core.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs core.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: cs, logger: logger}
}

// ListProducts handles GET /api/v1/products. An optional ?category= filter
// narrows the listing; "todos" or no filter returns everything.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	category := c.DefaultQuery("category", core.CategoryAll)

	products, err := h.catalogService.ListProducts(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("Failed to list products", zap.String("category", category), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": core.Categories,
	})
}

// GetProduct handles GET /api/v1/products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
			return
		}
		h.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}
