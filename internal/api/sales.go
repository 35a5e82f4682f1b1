package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meubentin/bentin/internal/store"
)

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListSales())
}

func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.store.GetSale(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, sale)
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if !h.decode(w, r, &req) {
		return
	}

	items := make([]store.SaleItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	sale, err := h.store.AddSale(r.Context(), store.SaleInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		VendorID:      req.VendorID,
		Items:         items,
		Discount:      req.Discount,
		PaymentMethod: store.PaymentMethod(req.PaymentMethod),
		Status:        store.SaleStatus(req.Status),
		Notes:         req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.analytics.Invalidate(r.Context())
	h.respond(w, http.StatusCreated, sale)
}

func (h *Handler) CompleteSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.store.CompleteSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.analytics.Invalidate(r.Context())
	h.respond(w, http.StatusOK, sale)
}

func (h *Handler) CancelSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.store.CancelSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.analytics.Invalidate(r.Context())
	h.respond(w, http.StatusOK, sale)
}
