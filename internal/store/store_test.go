package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meubentin/bentin/internal/platform/kv"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := New(context.Background(), mem, discardLogger())
	require.NoError(t, err)
	return s, mem
}

func addTestProduct(t *testing.T, s *Store, name string, price float64, qty int) Product {
	t.Helper()
	categories := s.ListCategories()
	require.NotEmpty(t, categories)
	p, err := s.AddProduct(context.Background(), ProductInput{
		Name:       name,
		CategoryID: categories[0].ID,
		Price:      price,
		Quantity:   qty,
		MinStock:   2,
	})
	require.NoError(t, err)
	return p
}

func TestSeedOnFirstRunOnly(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)
	require.Len(t, s.ListCategories(), 4)
	require.Len(t, s.ListVendors(), 1)

	// A second hydration from the same durable layer must not duplicate the
	// seed data.
	again, err := New(ctx, mem, discardLogger())
	require.NoError(t, err)
	require.Len(t, again.ListCategories(), 4)
	require.Len(t, again.ListVendors(), 1)
}

func TestEmptiedCollectionIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	s, mem := newTestStore(t)

	for _, c := range s.ListCategories() {
		require.NoError(t, s.DeleteCategory(ctx, c.ID))
	}
	require.Empty(t, s.ListCategories())

	rehydrated, err := New(ctx, mem, discardLogger())
	require.NoError(t, err)
	require.Empty(t, rehydrated.ListCategories())
}

func TestEffectivePrice(t *testing.T) {
	promo := 39.9
	zero := 0.0

	p := Product{Price: 50}
	require.InDelta(t, 50, p.EffectivePrice(), 1e-9)

	p = Product{Price: 50, PromoPrice: &promo}
	require.InDelta(t, 50, p.EffectivePrice(), 1e-9, "promotion flag off")

	p = Product{Price: 50, PromoPrice: &promo, OnPromo: true}
	require.InDelta(t, 39.9, p.EffectivePrice(), 1e-9)

	p = Product{Price: 50, OnPromo: true}
	require.InDelta(t, 50, p.EffectivePrice(), 1e-9, "promotion without price")

	p = Product{Price: 50, PromoPrice: &zero, OnPromo: true}
	require.InDelta(t, 50, p.EffectivePrice(), 1e-9, "zero promotional price")
}

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	categoryID := s.ListCategories()[0].ID

	_, err := s.AddProduct(ctx, ProductInput{Name: "  ", CategoryID: categoryID, Price: 10})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = s.AddProduct(ctx, ProductInput{Name: "Vestido", CategoryID: categoryID, Price: -1})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = s.AddProduct(ctx, ProductInput{Name: "Vestido", CategoryID: "nope", Price: 10})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEditProductMergesPatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addTestProduct(t, s, "Vestido Floral", 50, 10)

	newPrice := 45.0
	promo := 39.9
	onPromo := true
	updated, err := s.EditProduct(ctx, p.ID, ProductPatch{
		Price:      &newPrice,
		PromoPrice: &promo,
		OnPromo:    &onPromo,
	})
	require.NoError(t, err)
	require.Equal(t, "Vestido Floral", updated.Name)
	require.InDelta(t, 45, updated.Price, 1e-9)
	require.InDelta(t, 39.9, updated.EffectivePrice(), 1e-9)
	require.False(t, updated.UpdatedAt.Before(p.UpdatedAt))

	_, err = s.EditProduct(ctx, "missing", ProductPatch{Price: &newPrice})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddStock(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addTestProduct(t, s, "Conjunto Verão", 30, 5)

	updated, err := s.AddStock(ctx, p.ID, 7)
	require.NoError(t, err)
	require.Equal(t, 12, updated.Quantity)

	_, err = s.AddStock(ctx, p.ID, 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.AddStock(ctx, "missing", 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterLossGuard(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	p := addTestProduct(t, s, "Sandália", 25, 4)

	record, err := s.RegisterLoss(ctx, p.ID, 3, "avaria no transporte")
	require.NoError(t, err)
	require.Equal(t, 3, record.Quantity)
	require.Equal(t, "Sandália", record.ProductName)

	got, err := s.GetProduct(p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Quantity)

	// Quantity above stock must leave both collections untouched.
	_, err = s.RegisterLoss(ctx, p.ID, 2, "avaria")
	require.ErrorIs(t, err, ErrInsufficientStock)
	got, err = s.GetProduct(p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Quantity)
	require.Len(t, s.ListLosses(), 1)
}

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	c, err := s.AddCategory(ctx, "Pijamas")
	require.NoError(t, err)

	_, err = s.AddCategory(ctx, "pijamas")
	require.ErrorIs(t, err, ErrDuplicateCategory)

	renamed, err := s.RenameCategory(ctx, c.ID, "Pijamas Infantis")
	require.NoError(t, err)
	require.Equal(t, "Pijamas Infantis", renamed.Name)

	_, err = s.AddProduct(ctx, ProductInput{Name: "Pijama Unicórnio", CategoryID: c.ID, Price: 35, Quantity: 3})
	require.NoError(t, err)

	err = s.DeleteCategory(ctx, c.ID)
	require.ErrorIs(t, err, ErrCategoryInUse)

	empty, err := s.AddCategory(ctx, "Meias")
	require.NoError(t, err)
	require.NoError(t, s.DeleteCategory(ctx, empty.ID))
	_, err = s.GetCategory(empty.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestVendorLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	v, err := s.AddVendor(ctx, VendorInput{Name: "Maria", Email: "maria@meubentin.com", CommissionPct: 5})
	require.NoError(t, err)
	require.True(t, v.Active)

	inactive := false
	commission := 7.5
	updated, err := s.EditVendor(ctx, v.ID, VendorPatch{Active: &inactive, CommissionPct: &commission})
	require.NoError(t, err)
	require.False(t, updated.Active)
	require.InDelta(t, 7.5, updated.CommissionPct, 1e-9)

	_, err = s.EditVendor(ctx, "missing", VendorPatch{Active: &inactive})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	c, err := s.AddCustomer(ctx, CustomerInput{Name: "Ana Souza", Phone: "11 99999-0000"})
	require.NoError(t, err)

	email := "ana@example.com"
	updated, err := s.EditCustomer(ctx, c.ID, CustomerPatch{Email: &email})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", updated.Email)
	require.Equal(t, "Ana Souza", updated.Name)
}
