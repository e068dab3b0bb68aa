package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jumacaq/Megamoda-store/internal/db"
	"github.com/jumacaq/Megamoda-store/internal/models"
)

// ErrProductNotFound is returned when a product is not found in the catalog.
var ErrProductNotFound = errors.New("product not found")

// CategoryAll is the filter value that disables category filtering.
const CategoryAll = "todos"

// Categories are the filter choices the storefront offers.
var Categories = []string{
	CategoryAll, "vestidos", "blusas", "pantalones", "chaquetas", "calzado", "accesorios", "camisetas",
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	productRepo db.ProductRepository
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(productRepo db.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// ListProducts returns the catalog, seeding the sample products when the
// collection is empty so a fresh deployment has something to sell.
func (s *catalogService) ListProducts(ctx context.Context, category string) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if len(products) == 0 {
		products, err = s.seed(ctx)
		if err != nil {
			return nil, err
		}
	}

	if category == "" || category == CategoryAll {
		return products, nil
	}
	filtered := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetProduct retrieves a single product by id.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: product with ID '%s'", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to get product '%s': %w", productID, err)
	}
	return product, nil
}

func (s *catalogService) seed(ctx context.Context) ([]*models.Product, error) {
	s.logger.Info("Product collection is empty, seeding sample catalog",
		zap.Int("count", len(sampleProducts)))

	seeded := make([]*models.Product, 0, len(sampleProducts))
	for i := range sampleProducts {
		product := sampleProducts[i]
		id, err := s.productRepo.Add(ctx, &product)
		if err != nil {
			return nil, fmt.Errorf("failed to seed product '%s': %w", product.Name, err)
		}
		product.ID = id
		seeded = append(seeded, &product)
	}
	return seeded, nil
}

// sampleProducts is the starter catalog written the first time the store runs
// against an empty products collection.
var sampleProducts = []models.Product{
	{
		Name:        "Vestido Elegante",
		Price:       89.99,
		Image:       "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400",
		Description: "Vestido elegante perfecto",
		Category:    "vestidos",
		Stock:       15,
	},
	{
		Name:        "Blusa Casual",
		Price:       45.99,
		Image:       "https://images.unsplash.com/photo-1596755094514-f87e34085b2c?w=400",
		Description: "Blusa cómoda y versátil para el día a día",
		Category:    "blusas",
		Stock:       25,
	},
	{
		Name:        "Jeans Premium",
		Price:       79.99,
		Image:       "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400",
		Description: "Jeans de alta calidad con corte moderno",
		Category:    "pantalones",
		Stock:       20,
	},
	{
		Name:        "Chaqueta de Cuero",
		Price:       129.99,
		Image:       "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=400",
		Description: "Chaqueta de cuero auténtico, estilo urbano",
		Category:    "chaquetas",
		Stock:       8,
	},
	{
		Name:        "Zapatos Elegantes",
		Price:       95.99,
		Image:       "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?w=400",
		Description: "Zapatos elegantes para completar tu look",
		Category:    "calzado",
		Stock:       12,
	},
	{
		Name:        "Bolso de Mano",
		Price:       65.99,
		Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400",
		Description: "Bolso de mano versátil y elegante",
		Category:    "accesorios",
		Stock:       18,
	},
	{
		Name:        "Camiseta veraniega",
		Price:       45.99,
		Image:       "https://images.unsplash.com/photo-1618354691373-d851c5c3a990?w=400",
		Description: "Camiseta negra con cuello redondo",
		Category:    "camisetas",
		Stock:       20,
	},
	{
		Name:        "Zapatillas Nike",
		Price:       185.99,
		Image:       "https://images.unsplash.com/photo-1512374382149-233c42b6a83b?w=400",
		Description: "Zapatillas Nike blancas de caña alta",
		Category:    "calzado",
		Stock:       15,
	},
	{
		Name:        "Cartera de Cuero",
		Price:       135.99,
		Image:       "https://images.unsplash.com/photo-1598532163257-ae3c6b2524b6?w=400",
		Description: "Cartera de cuero marrón",
		Category:    "accesorios",
		Stock:       25,
	},
}
