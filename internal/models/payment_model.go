package models

import "time"

// PaymentIntentRecord maps a provider-assigned payment id back to the user
// who started the checkout. The provider's redirect carries no application
// session, so this record is the only way the callback path can recover the
// buyer's identity. Stored in "paypal_payments" keyed by the payment id,
// written once at intent creation and never updated.
type PaymentIntentRecord struct {
	PaymentID string    `json:"payment_id" firestore:"-"`
	UserID    string    `json:"user_id" firestore:"user_id"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
}
