package db

import (
	"context"
	"time"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

// UserRepository defines the interface for user data storage operations.
// Users are keyed by their Google OAuth subject id and are never deleted.
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, uid string, at time.Time) error
}

// ProductRepository defines the interface for catalog data storage operations.
type ProductRepository interface {
	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, productID string) (*models.Product, error)
	Add(ctx context.Context, product *models.Product) (string, error) // Returns new product ID
	SetStock(ctx context.Context, productID string, stock int64) error
}

// CartRepository defines the interface for cart data storage operations.
// Cart documents are keyed by user id and written whole (last writer wins).
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Set(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// OrderRepository defines the interface for order data storage operations.
// Orders are immutable once created.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (string, error) // Returns new order ID
	// GetByPaymentID returns the order finalized for a given provider payment
	// id, or ErrNotFound. It is the idempotency probe for finalization.
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
}

// PaymentIntentRepository defines the interface for the correlation records
// that tie a provider payment id back to a user.
type PaymentIntentRepository interface {
	Record(ctx context.Context, rec *models.PaymentIntentRecord) error
	GetByID(ctx context.Context, paymentID string) (*models.PaymentIntentRecord, error)
}
