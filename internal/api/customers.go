package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meubentin/bentin/internal/store"
)

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListCustomers())
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.store.GetCustomer(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.store.AddCustomer(r.Context(), store.CustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req updateCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.store.EditCustomer(r.Context(), chi.URLParam(r, "id"), store.CustomerPatch{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, customer)
}
