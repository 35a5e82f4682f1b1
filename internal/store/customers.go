package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CustomerInput carries the attributes required to register a customer.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
}

// CustomerPatch carries a partial customer update; nil fields are left as-is.
type CustomerPatch struct {
	Name  *string
	Phone *string
	Email *string
}

// AddCustomer registers a new customer.
func (s *Store) AddCustomer(ctx context.Context, in CustomerInput) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return Customer{}, ErrNameRequired
	}

	customer := Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: s.now(),
	}
	s.customers = append(s.customers, customer)

	if err := s.persist(ctx, keyCustomers, s.customers); err != nil {
		return Customer{}, err
	}
	return customer, nil
}

// EditCustomer merges the non-nil patch fields into an existing customer.
func (s *Store) EditCustomer(ctx context.Context, id string, patch CustomerPatch) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customerIndex(id)
	if i < 0 {
		return Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	c := s.customers[i]
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Customer{}, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	s.customers[i] = c

	if err := s.persist(ctx, keyCustomers, s.customers); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// GetCustomer returns a customer by ID.
func (s *Store) GetCustomer(id string) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.customerIndex(id)
	if i < 0 {
		return Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return s.customers[i], nil
}

// ListCustomers returns a copy of the customers collection.
func (s *Store) ListCustomers() []Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) customerIndex(id string) int {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return i
		}
	}
	return -1
}
