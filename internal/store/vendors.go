package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// VendorInput carries the attributes required to register a vendor.
type VendorInput struct {
	Name          string
	Email         string
	Phone         string
	CommissionPct float64
}

// VendorPatch carries a partial vendor update; nil fields are left as-is.
type VendorPatch struct {
	Name          *string
	Email         *string
	Phone         *string
	CommissionPct *float64
	Active        *bool
}

// AddVendor registers a new active vendor.
func (s *Store) AddVendor(ctx context.Context, in VendorInput) (Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return Vendor{}, ErrNameRequired
	}
	if in.CommissionPct < 0 || in.CommissionPct > 100 {
		return Vendor{}, fmt.Errorf("store: commission must be between 0 and 100")
	}

	vendor := Vendor{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		Email:         in.Email,
		Phone:         in.Phone,
		CommissionPct: in.CommissionPct,
		Active:        true,
		CreatedAt:     s.now(),
	}
	s.vendors = append(s.vendors, vendor)

	if err := s.persist(ctx, keyVendors, s.vendors); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}

// EditVendor merges the non-nil patch fields into an existing vendor.
func (s *Store) EditVendor(ctx context.Context, id string, patch VendorPatch) (Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.vendorIndex(id)
	if i < 0 {
		return Vendor{}, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
	}

	v := s.vendors[i]
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return Vendor{}, ErrNameRequired
		}
		v.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		v.Email = *patch.Email
	}
	if patch.Phone != nil {
		v.Phone = *patch.Phone
	}
	if patch.CommissionPct != nil {
		if *patch.CommissionPct < 0 || *patch.CommissionPct > 100 {
			return Vendor{}, fmt.Errorf("store: commission must be between 0 and 100")
		}
		v.CommissionPct = *patch.CommissionPct
	}
	if patch.Active != nil {
		v.Active = *patch.Active
	}
	s.vendors[i] = v

	if err := s.persist(ctx, keyVendors, s.vendors); err != nil {
		return Vendor{}, err
	}
	return v, nil
}

// GetVendor returns a vendor by ID.
func (s *Store) GetVendor(id string) (Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.vendorIndex(id)
	if i < 0 {
		return Vendor{}, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
	}
	return s.vendors[i], nil
}

// ListVendors returns a copy of the vendors collection.
func (s *Store) ListVendors() []Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Vendor, len(s.vendors))
	copy(out, s.vendors)
	return out
}

func (s *Store) vendorIndex(id string) int {
	for i := range s.vendors {
		if s.vendors[i].ID == id {
			return i
		}
	}
	return -1
}
