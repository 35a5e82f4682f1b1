package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaleItemInput references a product and quantity in the cart. The unit
// price is captured by the store from the product's effective price at the
// time of sale.
type SaleItemInput struct {
	ProductID string
	Quantity  int
}

// SaleInput carries the attributes required to record a sale.
type SaleInput struct {
	CustomerID    *string
	CustomerName  string
	VendorID      string
	Items         []SaleItemInput
	Discount      float64
	PaymentMethod PaymentMethod
	Status        SaleStatus
	Notes         string
}

// AddSale records a sale and decrements on-hand stock for every line item in
// the same call. The whole cart is checked against current stock first, so a
// sale either applies completely or not at all.
func (s *Store) AddSale(ctx context.Context, in SaleInput) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(in.Items) == 0 {
		return Sale{}, ErrEmptyCart
	}
	if !in.PaymentMethod.Valid() {
		return Sale{}, ErrInvalidPayment
	}
	status := in.Status
	if status == "" {
		status = SaleStatusCompleted
	}
	if status != SaleStatusPending && status != SaleStatusCompleted {
		return Sale{}, ErrInvalidStatus
	}
	vi := s.vendorIndex(in.VendorID)
	if vi < 0 {
		return Sale{}, fmt.Errorf("vendor %s: %w", in.VendorID, ErrNotFound)
	}
	customerName := in.CustomerName
	if in.CustomerID != nil {
		ci := s.customerIndex(*in.CustomerID)
		if ci < 0 {
			return Sale{}, fmt.Errorf("customer %s: %w", *in.CustomerID, ErrNotFound)
		}
		if customerName == "" {
			customerName = s.customers[ci].Name
		}
	}

	// Validate the whole cart before touching any stock. Quantities are
	// summed per product so the same product on two lines cannot oversell.
	required := make(map[string]int, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return Sale{}, ErrInvalidQuantity
		}
		if s.productIndex(item.ProductID) < 0 {
			return Sale{}, fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
		}
		required[item.ProductID] += item.Quantity
	}
	for productID, qty := range required {
		p := s.products[s.productIndex(productID)]
		if qty > p.Quantity {
			return Sale{}, fmt.Errorf("%w: %s has %d, sale needs %d", ErrInsufficientStock, p.Name, p.Quantity, qty)
		}
	}

	var subtotal float64
	items := make([]SaleItem, 0, len(in.Items))
	for _, item := range in.Items {
		p := s.products[s.productIndex(item.ProductID)]
		unitPrice := p.EffectivePrice()
		lineSubtotal := float64(item.Quantity) * unitPrice
		subtotal += lineSubtotal
		items = append(items, SaleItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    lineSubtotal,
		})
	}

	if in.Discount < 0 {
		return Sale{}, ErrInvalidDiscount
	}
	if in.Discount > subtotal {
		return Sale{}, ErrDiscountExceedsSubtotal
	}

	number, err := s.nextSaleNumber(ctx)
	if err != nil {
		return Sale{}, err
	}

	now := s.now()
	sale := Sale{
		ID:            uuid.NewString(),
		Number:        number,
		Date:          now,
		CustomerID:    in.CustomerID,
		CustomerName:  customerName,
		VendorID:      in.VendorID,
		VendorName:    s.vendors[vi].Name,
		Items:         items,
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Total:         subtotal - in.Discount,
		PaymentMethod: in.PaymentMethod,
		Status:        status,
		Notes:         in.Notes,
	}

	s.applyStockAdjustment(items, -1, now)
	s.sales = append(s.sales, sale)

	if err := s.persist(ctx, keySales, s.sales); err != nil {
		return Sale{}, err
	}
	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return Sale{}, err
	}
	return sale, nil
}

// CompleteSale moves a pending sale to completed. Stock was already taken
// when the sale was recorded, so only the status changes.
func (s *Store) CompleteSale(ctx context.Context, id string) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.saleIndex(id)
	if i < 0 {
		return Sale{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	if s.sales[i].Status != SaleStatusPending {
		return Sale{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, s.sales[i].Status, SaleStatusCompleted)
	}

	s.sales[i].Status = SaleStatusCompleted

	if err := s.persist(ctx, keySales, s.sales); err != nil {
		return Sale{}, err
	}
	return s.sales[i], nil
}

// CancelSale cancels a pending or completed sale and restores the stock its
// line items had taken.
func (s *Store) CancelSale(ctx context.Context, id string) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.saleIndex(id)
	if i < 0 {
		return Sale{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	if s.sales[i].Status == SaleStatusCancelled {
		return Sale{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, s.sales[i].Status, SaleStatusCancelled)
	}

	now := s.now()
	s.applyStockAdjustment(s.sales[i].Items, 1, now)
	s.sales[i].Status = SaleStatusCancelled

	if err := s.persist(ctx, keySales, s.sales); err != nil {
		return Sale{}, err
	}
	if err := s.persist(ctx, keyProducts, s.products); err != nil {
		return Sale{}, err
	}
	return s.sales[i], nil
}

// applyStockAdjustment shifts on-hand stock for every sale line by
// direction*quantity. Callers validate availability beforehand; products are
// never hard-deleted, so every referenced product resolves.
func (s *Store) applyStockAdjustment(items []SaleItem, direction int, now time.Time) {
	for _, item := range items {
		i := s.productIndex(item.ProductID)
		if i < 0 {
			continue
		}
		s.products[i].Quantity += direction * item.Quantity
		s.products[i].UpdatedAt = now
	}
}

// GetSale returns a sale by ID.
func (s *Store) GetSale(id string) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.saleIndex(id)
	if i < 0 {
		return Sale{}, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	return s.sales[i], nil
}

// ListSales returns a copy of the sales collection.
func (s *Store) ListSales() []Sale {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) saleIndex(id string) int {
	for i := range s.sales {
		if s.sales[i].ID == id {
			return i
		}
	}
	return -1
}
