package models

import "time"

// User represents a shopper identified by their Google OAuth subject id.
// The subject id doubles as the Firestore document id in the "usuarios"
// collection; it is also stored inside the document as "uid" so records read
// back whole even when the document reference is not at hand.
type User struct {
	UID           string    `json:"uid" firestore:"uid"`
	Email         string    `json:"email" firestore:"email"`
	Nombre        string    `json:"nombre" firestore:"nombre"`
	Foto          string    `json:"foto" firestore:"foto"`
	VerifiedEmail bool      `json:"verified_email" firestore:"verified_email"`
	Locale        string    `json:"locale" firestore:"locale"`
	CreatedAt     time.Time `json:"created_at" firestore:"created_at"`
	LastLogin     time.Time `json:"last_login" firestore:"last_login"`
}
