package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
)

// CheckoutHandler handles the HTTP request that starts a checkout. The
// provider redirect that completes it lands on CallbackHandler instead.
type CheckoutHandler struct {
	checkoutService core.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(cs core.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: cs, logger: logger}
}

// BeginCheckout handles POST /api/v1/checkout. It turns the caller's cart
// into a PayPal payment and answers with the approval URL the buyer must
// visit to authorize it.
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	userID := c.GetString("userID")

	session, err := h.checkoutService.BeginCheckout(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to begin checkout", zap.String("uid", userID), zap.Error(err))
		mapCheckoutErrorToStatus(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Payment created, redirect the buyer to the approval URL",
		Data: gin.H{
			"payment_id":   session.PaymentID,
			"approval_url": session.ApprovalURL,
		},
	})
}
