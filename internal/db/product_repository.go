package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

const productsCollection = "products"

// firestoreProductRepository implements the ProductRepository interface using Firestore.
type firestoreProductRepository struct {
	client *firestore.Client
}

// NewFirestoreProductRepository creates a new instance of firestoreProductRepository.
func NewFirestoreProductRepository(client *firestore.Client) ProductRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ProductRepository.")
	}
	return &firestoreProductRepository{client: client}
}

// List returns every product in the catalog. Documents that fail to decode
// are skipped rather than failing the whole listing.
func (r *firestoreProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	iter := r.client.Collection(productsCollection).Documents(ctx)
	defer iter.Stop()

	var products []*models.Product
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var product models.Product
		if err := docSnap.DataTo(&product); err != nil {
			log.Printf("Warning: skipping malformed product document '%s': %v", docSnap.Ref.ID, err)
			continue
		}
		product.ID = docSnap.Ref.ID
		products = append(products, &product)
	}
	return products, nil
}

// GetByID retrieves a single product by its document id.
func (r *firestoreProductRepository) GetByID(ctx context.Context, productID string) (*models.Product, error) {
	if productID == "" {
		return nil, errors.New("productID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(productsCollection).Doc(productID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("product with ID '%s' not found: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product with ID '%s': %w", productID, err)
	}

	var product models.Product
	if err := docSnap.DataTo(&product); err != nil {
		return nil, fmt.Errorf("failed to decode product data for ID '%s': %w", productID, err)
	}
	product.ID = docSnap.Ref.ID

	return &product, nil
}

// Add creates a product with an auto-generated document id and returns it.
// Used by catalog seeding.
func (r *firestoreProductRepository) Add(ctx context.Context, product *models.Product) (string, error) {
	if product == nil {
		return "", errors.New("product cannot be nil for Add operation")
	}
	if product.Name == "" || product.Price < 0 || product.Stock < 0 {
		return "", errors.New("product must have a name, a non-negative price and non-negative stock")
	}
	docRef, _, err := r.client.Collection(productsCollection).Add(ctx, product)
	if err != nil {
		return "", fmt.Errorf("failed to add product '%s': %w", product.Name, err)
	}
	return docRef.ID, nil
}

// SetStock overwrites the stock field of a product. Callers are responsible
// for the floor-at-zero clamp; the repository only refuses negative values.
func (r *firestoreProductRepository) SetStock(ctx context.Context, productID string, stock int64) error {
	if productID == "" {
		return errors.New("productID cannot be empty for SetStock operation")
	}
	if stock < 0 {
		return fmt.Errorf("stock cannot be negative (got %d) for product '%s'", stock, productID)
	}
	_, err := r.client.Collection(productsCollection).Doc(productID).Update(ctx, []firestore.Update{
		{Path: "stock", Value: stock},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("product with ID '%s' not found: %w", productID, ErrNotFound)
		}
		return fmt.Errorf("failed to update stock for product '%s': %w", productID, err)
	}
	return nil
}
