// Package api exposes the domain store over a JSON HTTP surface. Handlers
// are thin: decode, validate, call the store, map errors to status codes.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meubentin/bentin/internal/analytics"
	"github.com/meubentin/bentin/internal/store"
)

// Handler groups the API dependencies.
type Handler struct {
	logger    *slog.Logger
	store     *store.Store
	analytics *analytics.Service
	validate  *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, st *store.Store, an *analytics.Service) *Handler {
	return &Handler{
		logger:    logger,
		store:     st,
		analytics: an,
		validate:  validator.New(),
	}
}

// MountRoutes registers every API route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/produtos", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.GetProduct)
		r.Patch("/{id}", h.UpdateProduct)
		r.Post("/{id}/estoque", h.AddStock)
		r.Post("/{id}/perdas", h.RegisterLoss)
	})
	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Patch("/{id}", h.RenameCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})
	r.Route("/vendedores", func(r chi.Router) {
		r.Get("/", h.ListVendors)
		r.Post("/", h.CreateVendor)
		r.Get("/{id}", h.GetVendor)
		r.Patch("/{id}", h.UpdateVendor)
	})
	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Post("/", h.CreateCustomer)
		r.Get("/{id}", h.GetCustomer)
		r.Patch("/{id}", h.UpdateCustomer)
	})
	r.Route("/vendas", func(r chi.Router) {
		r.Get("/", h.ListSales)
		r.Post("/", h.CreateSale)
		r.Get("/{id}", h.GetSale)
		r.Post("/{id}/concluir", h.CompleteSale)
		r.Post("/{id}/cancelar", h.CancelSale)
	})
	r.Get("/perdas", h.ListLosses)
	r.Get("/dashboard", h.Dashboard)
	r.Get("/dashboard/insights", h.Insights)
}
