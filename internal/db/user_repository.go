package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

// usersCollection keeps the collection name the catalog data was originally
// written under.
const usersCollection = "usuarios"

// ErrNotFound is the common error for when a document is not found in
// Firestore. All repositories in this package return it so the service layer
// can branch on a single sentinel.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document, keyed by the Google subject id.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	if user.Email == "" || user.Nombre == "" {
		return errors.New("user email and nombre are required")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with UID '%s' already exists: %w", user.UID, err)
		}
		return fmt.Errorf("failed to create user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// GetByID retrieves a user document by its Google subject id.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID

	return &user, nil
}

// UpdateLastLogin stamps the last_login field of an existing user. Touching
// only that field keeps the write from resurrecting stale profile data.
func (r *firestoreUserRepository) UpdateLastLogin(ctx context.Context, uid string, at time.Time) error {
	if uid == "" {
		return errors.New("uid cannot be empty for UpdateLastLogin operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "last_login", Value: at},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update last_login for UID '%s': %w", uid, err)
	}
	return nil
}
