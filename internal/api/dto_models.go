package api

import "github.com/jumacaq/Megamoda-store/internal/models"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`             // A high-level error message or code
	Details string `json:"details,omitempty"` // More specific details about the error, if available
}

// SuccessResponse is a generic structure for simple success messages.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AddItemRequest is the body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CartResponse is the cart as the pages render it: line items plus a
// two-decimal total string.
type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Total string            `json:"total"`
}

// AddItemResponse extends CartResponse with the optional outfit suggestion
// produced for the just-added product.
type AddItemResponse struct {
	CartResponse
	Recommendation string `json:"recommendation,omitempty"`
}

// OrderConfirmationResponse is the payload of a completed checkout callback.
type OrderConfirmationResponse struct {
	Message     string        `json:"message"`
	OrderNumber string        `json:"order_number"`
	Order       *models.Order `json:"order"`
}

// LoginResponse points an unauthenticated visitor at the Google consent
// screen.
type LoginResponse struct {
	LoginURL string `json:"login_url"`
}
