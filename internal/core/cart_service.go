package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/models"
)

// cartService implements the CartService interface. Every mutation loads the
// cart document, edits the line items in memory and writes the whole
// document back; there is no partial update.
type cartService struct {
	cartRepo    db.CartRepository
	productRepo db.ProductRepository
}

// NewCartService creates a new CartService instance.
func NewCartService(cartRepo db.CartRepository, productRepo db.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddItem puts one unit of a product into the user's cart. The line item
// snapshots the product's name and price at add time; those snapshots are
// what checkout charges, even if the catalog changes afterwards. No stock
// check happens here — stock is only adjusted at finalization.
func (s *cartService) AddItem(ctx context.Context, userID, productID string) (*models.Product, []models.CartItem, error) {
	if userID == "" || productID == "" {
		return nil, nil, errors.New("userID and productID are required")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return nil, nil, fmt.Errorf("failed to load product '%s': %w", productID, err)
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
	}

	if err := s.persist(ctx, userID, items); err != nil {
		return nil, nil, err
	}
	return product, items, nil
}

// RemoveItem drops the line item of a product from the cart. The cart
// document stays in place even when its item list becomes empty; only Clear
// deletes it.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	if userID == "" || productID == "" {
		return nil, errors.New("userID and productID are required")
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			remaining = append(remaining, item)
		}
	}

	if err := s.persist(ctx, userID, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

// Items returns the persisted line items, or an empty slice when the user has
// no cart document.
func (s *cartService) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	cart, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return []models.CartItem{}, nil
		}
		return nil, fmt.Errorf("failed to load cart for user '%s': %w", userID, err)
	}
	return cart.Items, nil
}

// Clear deletes the cart document entirely.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user '%s': %w", userID, err)
	}
	return nil
}

func (s *cartService) persist(ctx context.Context, userID string, items []models.CartItem) error {
	cart := &models.Cart{
		UserID:    userID,
		Items:     items,
		UpdatedAt: time.Now(),
	}
	if err := s.cartRepo.Set(ctx, cart); err != nil {
		return fmt.Errorf("failed to persist cart for user '%s': %w", userID, err)
	}
	return nil
}

// CartTotal sums price×quantity over the line items with decimal arithmetic,
// so float prices like 89.99 and 45.99 add up to the cent.
func CartTotal(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(item.Quantity))
		total = total.Add(line)
	}
	return total.Round(2)
}
