package core

import (
	"context"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

// GoogleProfile is what the identity provider tells us about a user after a
// successful authorization-code exchange.
type GoogleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
	Locale        string `json:"locale"`
}

// AuthService drives the Google OAuth authorization-code flow.
type AuthService interface {
	// LoginURL is the consent-screen address the login page redirects to.
	LoginURL() string
	// FetchProfile exchanges the code carried by the redirect for tokens and
	// loads the user's Google profile.
	FetchProfile(ctx context.Context, code string) (*GoogleProfile, error)
}

// UserService defines the interface for user-profile operations.
type UserService interface {
	// FindOrCreateFromProfile resolves a Google profile to a stored user,
	// creating the record on first login and stamping last_login on every
	// later one. Returns the user and whether it was created.
	FindOrCreateFromProfile(ctx context.Context, profile *GoogleProfile) (*models.User, bool, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
}

// CatalogService defines the interface for product-catalog operations.
type CatalogService interface {
	// ListProducts returns the catalog, optionally filtered by category
	// ("todos" or empty means everything), seeding sample products on an
	// empty collection.
	ListProducts(ctx context.Context, category string) ([]*models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// CartService defines the interface for per-user cart operations.
type CartService interface {
	// AddItem puts one unit of a product into the user's cart, aggregating
	// quantity when the product is already there. Returns the product (for
	// downstream recommendation) and the resulting line items.
	AddItem(ctx context.Context, userID, productID string) (*models.Product, []models.CartItem, error)
	// RemoveItem drops the line for a product entirely and returns what is
	// left. Removing an absent product is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) ([]models.CartItem, error)
	// Items returns the cart's line items, empty (not an error) when the user
	// has never added anything.
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	// Clear deletes the cart document outright.
	Clear(ctx context.Context, userID string) error
}

// CheckoutSession is the outcome of starting a checkout: where to send the
// buyer, and the provider id the callback will come back with.
type CheckoutSession struct {
	PaymentID   string `json:"payment_id"`
	ApprovalURL string `json:"approval_url"`
}

// CheckoutResult is a completed checkout: the durable order plus the user the
// payment was resolved to (needed to re-establish a session on the callback
// request, which carries none).
type CheckoutResult struct {
	Order *models.Order `json:"order"`
	User  *models.User  `json:"user"`
}

// CheckoutService owns the payment-intent and finalization protocol.
type CheckoutService interface {
	// BeginCheckout creates a provider payment for the user's cart and
	// persists the correlation record before anyone is redirected.
	BeginCheckout(ctx context.Context, userID string) (*CheckoutSession, error)
	// ResolveUser recovers the buyer from a provider payment id alone.
	ResolveUser(ctx context.Context, paymentID string) (*models.User, error)
	// CompleteCheckout handles the provider's return redirect end to end:
	// resolve the user, execute the payment, finalize the order.
	CompleteCheckout(ctx context.Context, paymentID, payerID string) (*CheckoutResult, error)
	// Finalize turns a paid cart snapshot into an order, decrements stock and
	// clears the cart. Safe to call twice for the same paymentID.
	Finalize(ctx context.Context, user *models.User, items []models.CartItem, paymentID string) (*models.Order, error)
}
