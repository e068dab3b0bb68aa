package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

const ordersCollection = "orders"

// firestoreOrderRepository implements the OrderRepository interface using Firestore.
type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository creates a new instance of firestoreOrderRepository.
func NewFirestoreOrderRepository(client *firestore.Client) OrderRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for OrderRepository.")
	}
	return &firestoreOrderRepository{client: client}
}

// Create persists a finalized order with an auto-generated document id and
// returns that id.
func (r *firestoreOrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	if order == nil {
		return "", errors.New("order cannot be nil for Create operation")
	}
	if order.UserID == "" || order.PaymentID == "" || len(order.Items) == 0 {
		return "", errors.New("order must carry a user id, a payment id and at least one item")
	}
	docRef, _, err := r.client.Collection(ordersCollection).Add(ctx, order)
	if err != nil {
		return "", fmt.Errorf("failed to create order '%s': %w", order.OrderNumber, err)
	}
	return docRef.ID, nil
}

// GetByPaymentID looks up the order finalized for a provider payment id.
// Orders are written at most once per payment id, so the first match wins.
func (r *firestoreOrderRepository) GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	if paymentID == "" {
		return nil, errors.New("paymentID cannot be empty for GetByPaymentID operation")
	}

	query := r.client.Collection(ordersCollection).Where("payment_id", "==", paymentID).Limit(1)
	iter := query.Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("no order for payment id '%s': %w", paymentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query orders by payment id '%s': %w", paymentID, err)
	}

	var order models.Order
	if err := docSnap.DataTo(&order); err != nil {
		return nil, fmt.Errorf("failed to decode order data for payment id '%s': %w", paymentID, err)
	}
	order.ID = docSnap.Ref.ID

	return &order, nil
}
