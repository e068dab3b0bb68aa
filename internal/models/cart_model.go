package models

import "time"

// CartItem is one line of a cart (and, once finalized, of an order).
// Name and Price are denormalized snapshots taken when the item is added;
// the price charged at checkout is the add-time price, not the live catalog
// price.
type CartItem struct {
	ProductID string    `json:"product_id" firestore:"product_id"`
	Name      string    `json:"name" firestore:"name"`
	Price     float64   `json:"price" firestore:"price"`
	Quantity  int64     `json:"quantity" firestore:"quantity"`
	AddedAt   time.Time `json:"added_at" firestore:"added_at"`
}

// Cart is the single cart document of a user, stored in the "carts"
// collection under the user's id. Invariant: at most one CartItem per
// ProductID — adding an already-present product increments its quantity.
//
// The cart is ephemeral: created lazily on the first add and deleted outright
// when an order is finalized.
type Cart struct {
	UserID    string     `json:"user_id" firestore:"user_id"`
	Items     []CartItem `json:"items" firestore:"items"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updated_at"`
}
