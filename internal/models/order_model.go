package models

import "time"

// OrderStatusCompleted is the only order status this system models; orders
// are written once, after the payment has been executed, and never updated.
const OrderStatusCompleted = "completed"

// Order is a durable record of a finalized checkout, stored in the "orders"
// collection with an auto-generated document id. UserName and UserEmail are
// snapshots of the user at order time. PaymentID is the provider's payment
// intent id and is the idempotency key for finalization: at most one order
// exists per PaymentID.
type Order struct {
	ID          string     `json:"id" firestore:"-"`
	UserID      string     `json:"user_id" firestore:"user_id"`
	UserName    string     `json:"user_name" firestore:"user_name"`
	UserEmail   string     `json:"user_email" firestore:"user_email"`
	Items       []CartItem `json:"items" firestore:"items"`
	Total       float64    `json:"total" firestore:"total"`
	Status      string     `json:"status" firestore:"status"`
	PaymentID   string     `json:"payment_id" firestore:"payment_id"`
	CreatedAt   time.Time  `json:"created_at" firestore:"created_at"`
	OrderNumber string     `json:"order_number" firestore:"order_number"`
}
