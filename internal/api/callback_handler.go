package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/core"
	"github.com/jumacaq/Megamoda-store/internal/middleware"
	"github.com/jumacaq/Megamoda-store/internal/paypal"
)

// CallbackHandler multiplexes GET on the application's base URL. Both
// external providers redirect there with nothing but query parameters:
// Google with ?code=, PayPal with ?token=&PayerID=&paymentId=. Whatever
// matches neither is an ordinary visit and gets the login affordance.
type CallbackHandler struct {
	authHandler     *AuthHandler
	checkoutService core.CheckoutService
	sessions        *middleware.SessionManager
	logger          *zap.Logger
}

// NewCallbackHandler creates a new CallbackHandler.
func NewCallbackHandler(authHandler *AuthHandler, cs core.CheckoutService, sessions *middleware.SessionManager, logger *zap.Logger) *CallbackHandler {
	return &CallbackHandler{
		authHandler:     authHandler,
		checkoutService: cs,
		sessions:        sessions,
		logger:          logger,
	}
}

// HandleRoot handles GET /.
func (h *CallbackHandler) HandleRoot(c *gin.Context) {
	// Cancel first: PayPal appends token=EC-... to the cancel_url redirect,
	// so a cancel arrives with payment parameters riding along and must not
	// enter the callback guard below.
	if c.Query("payment") == "cancelled" {
		c.JSON(http.StatusOK, SuccessResponse{Message: "El pago fue cancelado. Puedes continuar comprando."})
		return
	}

	token := c.Query("token")
	payerID := c.Query("PayerID")
	// PayPal has spelled this parameter both ways across API versions.
	paymentID := c.Query("paymentId")
	if paymentID == "" {
		paymentID = c.Query("paymentID")
	}

	// Payment callback path. Entering it requires all three parameters at
	// once; a partial set is a broken callback, never a fall-through to the
	// session path.
	if token != "" || payerID != "" || paymentID != "" {
		if token == "" || payerID == "" || paymentID == "" {
			h.logger.Warn("Incomplete payment callback",
				zap.Bool("has_token", token != ""),
				zap.Bool("has_payer_id", payerID != ""),
				zap.Bool("has_payment_id", paymentID != ""))
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Incomplete payment callback",
				Details: "token, PayerID and paymentId must all be present; return to the catalog and try again",
			})
			return
		}
		h.handlePaymentReturn(c, paymentID, payerID)
		return
	}

	if code := c.Query("code"); code != "" {
		h.authHandler.HandleOAuthCode(c, code)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{LoginURL: h.authHandler.authService.LoginURL()})
}

func (h *CallbackHandler) handlePaymentReturn(c *gin.Context, paymentID, payerID string) {
	result, err := h.checkoutService.CompleteCheckout(c.Request.Context(), paymentID, payerID)
	if err != nil {
		mapCheckoutErrorToStatus(c, err)
		return
	}

	// The redirect request carries no session; now that the payment resolved
	// the user, give them one back.
	if err := h.sessions.Issue(c, result.User); err != nil {
		h.logger.Warn("Order finalized but session could not be issued",
			zap.String("uid", result.User.UID), zap.Error(err))
	}

	c.JSON(http.StatusOK, OrderConfirmationResponse{
		Message:     "🎉 ¡Compra realizada con éxito!",
		OrderNumber: result.Order.OrderNumber,
		Order:       result.Order,
	})
}

// mapCheckoutErrorToStatus maps errors from core.CheckoutService to HTTP
// status codes and ErrorResponse payloads.
func mapCheckoutErrorToStatus(c *gin.Context, err error) {
	var declined *core.PaymentDeclinedError
	var providerErr *paypal.ProviderError

	switch {
	case errors.Is(err, core.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Your cart is empty"})
	case errors.Is(err, core.ErrUnknownIntent):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "This payment could not be matched to a checkout",
			Details: "Return to the catalog; if you were charged, contact support with your PayPal receipt.",
		})
	case errors.Is(err, core.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "The buyer for this payment no longer exists",
			Details: "Contact support with your PayPal receipt.",
		})
	case errors.As(err, &declined):
		c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: "Payment was not approved", Details: declined.Message})
	case errors.Is(err, core.ErrOrderNotPersisted):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Payment succeeded but the order could not be saved",
			Details: "Contact support; do not retry the payment.",
		})
	case errors.As(err, &providerErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Payment provider is unavailable", Details: providerErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}
