package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/meubentin/bentin/internal/platform/kv"
	"github.com/meubentin/bentin/internal/shared"
)

const keyUsers = "meubentin:usuarios"

// Repository stores user accounts in the durable key-value layer, one JSON
// document for the whole (small) collection.
type Repository struct {
	kv kv.Store
}

// NewRepository constructs a Repository.
func NewRepository(kvs kv.Store) *Repository {
	return &Repository{kv: kvs}
}

func (r *Repository) loadAll(ctx context.Context) ([]User, error) {
	data, err := r.kv.Get(ctx, keyUsers)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: load users: %w", err)
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("auth: decode users: %w", err)
	}
	return users, nil
}

func (r *Repository) saveAll(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("auth: encode users: %w", err)
	}
	if err := r.kv.Set(ctx, keyUsers, data); err != nil {
		return fmt.Errorf("auth: save users: %w", err)
	}
	return nil
}

// FindByEmail returns the user with the given email, case-insensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByID returns the user with the given ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// Create appends a new user account.
func (r *Repository) Create(ctx context.Context, user User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)
	return r.saveAll(ctx, users)
}
