package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

const cartsCollection = "carts"

// firestoreCartRepository implements the CartRepository interface using Firestore.
// A user has at most one cart document, keyed by their id. Writes replace the
// whole document; there is no per-item update path, so concurrent writers are
// last-writer-wins.
type firestoreCartRepository struct {
	client *firestore.Client
}

// NewFirestoreCartRepository creates a new instance of firestoreCartRepository.
func NewFirestoreCartRepository(client *firestore.Client) CartRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CartRepository.")
	}
	return &firestoreCartRepository{client: client}
}

// Get retrieves the cart document of a user. Returns ErrNotFound when the
// user has never added anything (or the cart was cleared).
func (r *firestoreCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Get operation")
	}
	docSnap, err := r.client.Collection(cartsCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("cart for user '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user '%s': %w", userID, err)
	}

	var cart models.Cart
	if err := docSnap.DataTo(&cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart data for user '%s': %w", userID, err)
	}
	cart.UserID = docSnap.Ref.ID

	return &cart, nil
}

// Set overwrites the user's cart document with the given state.
func (r *firestoreCartRepository) Set(ctx context.Context, cart *models.Cart) error {
	if cart == nil || cart.UserID == "" {
		return errors.New("cart with a user id is required for Set operation")
	}
	for _, item := range cart.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return fmt.Errorf("malformed cart line for user '%s': product id and positive quantity are required", cart.UserID)
		}
	}
	_, err := r.client.Collection(cartsCollection).Doc(cart.UserID).Set(ctx, cart)
	if err != nil {
		return fmt.Errorf("failed to set cart for user '%s': %w", cart.UserID, err)
	}
	return nil
}

// Delete removes the cart document entirely. Deleting an absent cart is not
// an error; Firestore deletes are idempotent.
func (r *firestoreCartRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(cartsCollection).Doc(userID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete cart for user '%s': %w", userID, err)
	}
	return nil
}
