package models

// Product is a catalog entry in the "products" collection. Documents get
// auto-generated ids, so ID is populated from the document reference on read
// and never written into the document body.
//
// Price is a single-currency amount (USD) at currency-unit granularity.
// Stock is only ever mutated by the checkout finalizer, which floors it at
// zero.
type Product struct {
	ID          string  `json:"id" firestore:"-"`
	Name        string  `json:"name" firestore:"name"`
	Price       float64 `json:"price" firestore:"price"`
	Image       string  `json:"image" firestore:"image"`
	Description string  `json:"description" firestore:"description"`
	Category    string  `json:"category" firestore:"category"`
	Stock       int64   `json:"stock" firestore:"stock"`
}
