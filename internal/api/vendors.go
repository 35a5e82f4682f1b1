package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meubentin/bentin/internal/store"
)

func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListVendors())
}

func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.store.GetVendor(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, vendor)
}

func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if !h.decode(w, r, &req) {
		return
	}

	vendor, err := h.store.AddVendor(r.Context(), store.VendorInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CommissionPct: req.CommissionPct,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, vendor)
}

func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var req updateVendorRequest
	if !h.decode(w, r, &req) {
		return
	}

	vendor, err := h.store.EditVendor(r.Context(), chi.URLParam(r, "id"), store.VendorPatch{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CommissionPct: req.CommissionPct,
		Active:        req.Active,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, vendor)
}
