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

const paymentsCollection = "paypal_payments"

// firestorePaymentIntentRepository implements PaymentIntentRepository using
// Firestore. Records are keyed by the provider payment id and are write-once:
// the callback path depends on the record being exactly what intent creation
// wrote.
type firestorePaymentIntentRepository struct {
	client *firestore.Client
}

// NewFirestorePaymentIntentRepository creates a new instance of firestorePaymentIntentRepository.
func NewFirestorePaymentIntentRepository(client *firestore.Client) PaymentIntentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PaymentIntentRepository.")
	}
	return &firestorePaymentIntentRepository{client: client}
}

// Record persists the {payment id -> user id} correlation. Must be called
// after the provider accepted the intent and before the buyer is redirected;
// without it the callback cannot recover the user.
func (r *firestorePaymentIntentRepository) Record(ctx context.Context, rec *models.PaymentIntentRecord) error {
	if rec == nil || rec.PaymentID == "" {
		return errors.New("a payment id is required for Record operation")
	}
	if rec.UserID == "" {
		return errors.New("a user id is required for Record operation")
	}
	_, err := r.client.Collection(paymentsCollection).Doc(rec.PaymentID).Set(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to record payment intent '%s': %w", rec.PaymentID, err)
	}
	return nil
}

// GetByID retrieves the correlation record for a provider payment id.
func (r *firestorePaymentIntentRepository) GetByID(ctx context.Context, paymentID string) (*models.PaymentIntentRecord, error) {
	if paymentID == "" {
		return nil, errors.New("paymentID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(paymentsCollection).Doc(paymentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payment intent '%s' not found: %w", paymentID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment intent '%s': %w", paymentID, err)
	}

	var rec models.PaymentIntentRecord
	if err := docSnap.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent data for '%s': %w", paymentID, err)
	}
	rec.PaymentID = docSnap.Ref.ID

	return &rec, nil
}
