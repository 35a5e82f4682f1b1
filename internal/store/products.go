package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ProductInput carries the attributes required to create a product.
type ProductInput struct {
	Name       string
	CategoryID string
	Price      float64
	PromoPrice *float64
	OnPromo    bool
	Quantity   int
	MinStock   int
}

// ProductPatch carries a partial product update; nil fields are left as-is.
type ProductPatch struct {
	Name       *string
	CategoryID *string
	Price      *float64
	PromoPrice *float64
	OnPromo    *bool
	MinStock   *int
}

// AddProduct appends a new product with a fresh ID and timestamps.
func (s *Store) AddProduct(ctx context.Context, in ProductInput) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return Product{}, ErrNameRequired
	}
	if in.Price < 0 {
		return Product{}, ErrInvalidPrice
	}
	if in.PromoPrice != nil && *in.PromoPrice < 0 {
		return Product{}, ErrInvalidPrice
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return Product{}, ErrInvalidQuantity
	}
	if s.categoryIndex(in.CategoryID) < 0 {
		return Product{}, fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
	}

	now := s.now()
	product := Product{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		CategoryID: in.CategoryID,
		Price:      in.Price,
		PromoPrice: in.PromoPrice,
		OnPromo:    in.OnPromo,
		Quantity:   in.Quantity,
		MinStock:   in.MinStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.products = append(s.products, product)

	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return Product{}, err
	}
	return product, nil
}

// EditProduct merges the non-nil patch fields into an existing product and
// refreshes its update timestamp.
func (s *Store) EditProduct(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	p := s.products[i]
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Product{}, ErrNameRequired
		}
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.CategoryID != nil {
		if s.categoryIndex(*patch.CategoryID) < 0 {
			return Product{}, fmt.Errorf("category %s: %w", *patch.CategoryID, ErrNotFound)
		}
		p.CategoryID = *patch.CategoryID
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return Product{}, ErrInvalidPrice
		}
		p.Price = *patch.Price
	}
	if patch.PromoPrice != nil {
		if *patch.PromoPrice < 0 {
			return Product{}, ErrInvalidPrice
		}
		p.PromoPrice = patch.PromoPrice
	}
	if patch.OnPromo != nil {
		p.OnPromo = *patch.OnPromo
	}
	if patch.MinStock != nil {
		if *patch.MinStock < 0 {
			return Product{}, ErrInvalidQuantity
		}
		p.MinStock = *patch.MinStock
	}
	p.UpdatedAt = s.now()
	s.products[i] = p

	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return Product{}, err
	}
	return p, nil
}

// AddStock increments the on-hand quantity of a product.
func (s *Store) AddStock(ctx context.Context, id string, qty int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return Product{}, ErrInvalidQuantity
	}
	i := s.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	s.products[i].Quantity += qty
	s.products[i].UpdatedAt = s.now()

	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return Product{}, err
	}
	return s.products[i], nil
}

// GetProduct returns a product by ID.
func (s *Store) GetProduct(id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return s.products[i], nil
}

// ListProducts returns a copy of the products collection.
func (s *Store) ListProducts() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
