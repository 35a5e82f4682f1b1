package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RegisterLoss writes off stock and appends a loss record. The write-off is
// rejected outright when the requested quantity exceeds on-hand stock; in
// that case neither collection changes.
func (s *Store) RegisterLoss(ctx context.Context, productID string, qty int, reason string) (LossRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qty <= 0 {
		return LossRecord{}, ErrInvalidQuantity
	}
	i := s.productIndex(productID)
	if i < 0 {
		return LossRecord{}, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if qty > s.products[i].Quantity {
		return LossRecord{}, fmt.Errorf("%w: have %d, lose %d", ErrInsufficientStock, s.products[i].Quantity, qty)
	}

	now := s.now()
	s.products[i].Quantity -= qty
	s.products[i].UpdatedAt = now

	record := LossRecord{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: s.products[i].Name,
		Quantity:    qty,
		Reason:      reason,
		Date:        now,
	}
	s.losses = append(s.losses, record)

	if err := s.persist(ctx, keyLosses, s.losses); err != nil {
		return LossRecord{}, err
	}
	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return LossRecord{}, err
	}
	return record, nil
}

// ListLosses returns a copy of the loss records collection.
func (s *Store) ListLosses() []LossRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LossRecord, len(s.losses))
	copy(out, s.losses)
	return out
}
