package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meubentin/bentin/internal/platform/kv"
)

// Durable layer keys, one per collection plus bookkeeping entries.
const (
	keyProducts   = "meubentin:produtos"
	keyCategories = "meubentin:categorias"
	keyVendors    = "meubentin:vendedores"
	keyCustomers  = "meubentin:clientes"
	keySales      = "meubentin:vendas"
	keyLosses     = "meubentin:perdas"

	keyInitialized = "meubentin:initialized"
	keySaleSeq     = "meubentin:seq:venda"
)

// Store is the single source of truth for the domain collections. Every
// mutation holds the store lock for its full duration and rewrites the
// affected collections in the durable layer before returning.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	logger *slog.Logger
	now    func() time.Time

	products   []Product
	categories []Category
	vendors    []Vendor
	customers  []Customer
	sales      []Sale
	losses     []LossRecord
}

// New hydrates a Store from the durable layer. On the very first run (the
// initialized marker is absent) it seeds default categories and a default
// vendor; an intentionally emptied collection is never re-seeded.
func New(ctx context.Context, kvs kv.Store, logger *slog.Logger) (*Store, error) {
	s := &Store{
		kv:     kvs,
		logger: logger,
		now:    time.Now,
	}

	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}

	initialized, err := s.isInitialized(ctx)
	if err != nil {
		return nil, err
	}
	if !initialized {
		if err := s.seed(ctx); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) hydrate(ctx context.Context) error {
	if err := s.load(ctx, keyProducts, &s.products); err != nil {
		return err
	}
	if err := s.load(ctx, keyCategories, &s.categories); err != nil {
		return err
	}
	if err := s.load(ctx, keyVendors, &s.vendors); err != nil {
		return err
	}
	if err := s.load(ctx, keyCustomers, &s.customers); err != nil {
		return err
	}
	if err := s.load(ctx, keySales, &s.sales); err != nil {
		return err
	}
	if err := s.load(ctx, keyLosses, &s.losses); err != nil {
		return err
	}
	return nil
}

func (s *Store) load(ctx context.Context, key string, dst any) error {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("store: hydrate %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) isInitialized(ctx context.Context) (bool, error) {
	_, err := s.kv.Get(ctx, keyInitialized)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("store: read initialized marker: %w", err)
	}
	return true, nil
}

func (s *Store) seed(ctx context.Context) error {
	now := s.now()
	for _, name := range []string{"Vestidos", "Conjuntos", "Calçados", "Acessórios"} {
		s.categories = append(s.categories, Category{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: now,
		})
	}
	s.vendors = append(s.vendors, Vendor{
		ID:        uuid.NewString(),
		Name:      "Balcão",
		Active:    true,
		CreatedAt: now,
	})

	if err := s.persist(ctx, keyCategories, s.categories); err != nil {
		return err
	}
	if err := s.persist(ctx, keyVendors, s.vendors); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, keyInitialized, []byte(`true`)); err != nil {
		return fmt.Errorf("store: write initialized marker: %w", err)
	}
	s.logger.Info("seeded default data",
		slog.Int("categories", len(s.categories)),
		slog.Int("vendors", len(s.vendors)))
	return nil
}

func (s *Store) persist(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("store: persist %s: %w", key, err)
	}
	return nil
}

// nextSaleNumber reserves the next sequential sale number from the durable
// counter. The counter survives restarts, so numbers never repeat even after
// the sales collection is emptied.
func (s *Store) nextSaleNumber(ctx context.Context) (string, error) {
	n, err := s.kv.Incr(ctx, keySaleSeq)
	if err != nil {
		return "", fmt.Errorf("store: sale sequence: %w", err)
	}
	return fmt.Sprintf("VD-%05d", n), nil
}
