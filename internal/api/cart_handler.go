package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/models"
	"github.com/jumacaq/Megamoda-store/internal/recommend"
)

// CartHandler handles HTTP requests for the caller's shopping cart. Every
// route requires a session; the user id always comes from it, never from
// the request body.
type CartHandler struct {
	cartService    core.CartService
	catalogService core.CatalogService
	recommender    recommend.Recommender
	logger         *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cart core.CartService, catalog core.CatalogService, rec recommend.Recommender, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:    cart,
		catalogService: catalog,
		recommender:    rec,
		logger:         logger,
	}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.GetString("userID")

	items, err := h.cartService.Items(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.String("uid", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, newCartResponse(items))
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.GetString("userID")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	product, items, err := h.cartService.AddItem(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		h.mapCartErrorToStatus(c, userID, err)
		return
	}

	// The recommendation is decoration; it never fails the add.
	catalog, catErr := h.catalogService.ListProducts(c.Request.Context(), core.CategoryAll)
	if catErr != nil {
		h.logger.Warn("Could not load catalog for recommendation", zap.Error(catErr))
		catalog = nil
	}
	recommendation := h.recommender.Recommend(c.Request.Context(), product, catalog)

	c.JSON(http.StatusOK, AddItemResponse{
		CartResponse:   newCartResponse(items),
		Recommendation: recommendation,
	})
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.GetString("userID")
	productID := c.Param("productId")

	items, err := h.cartService.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		h.mapCartErrorToStatus(c, userID, err)
		return
	}

	c.JSON(http.StatusOK, newCartResponse(items))
}

// ClearCart handles DELETE /api/v1/cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.String("uid", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Cart cleared"})
}

func (h *CartHandler) mapCartErrorToStatus(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, core.ErrProductNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Product not found"})
	default:
		h.logger.Error("Cart operation failed", zap.String("uid", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}

func newCartResponse(items []models.CartItem) CartResponse {
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		Items: items,
		Total: core.CartTotal(items).StringFixed(2),
	}
}
