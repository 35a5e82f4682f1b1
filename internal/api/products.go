package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meubentin/bentin/internal/store"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListProducts())
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.store.AddProduct(r.Context(), store.ProductInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		PromoPrice: req.PromoPrice,
		OnPromo:    req.OnPromo,
		Quantity:   req.Quantity,
		MinStock:   req.MinStock,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.store.EditProduct(r.Context(), chi.URLParam(r, "id"), store.ProductPatch{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		PromoPrice: req.PromoPrice,
		OnPromo:    req.OnPromo,
		MinStock:   req.MinStock,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	var req addStockRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.store.AddStock(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

func (h *Handler) RegisterLoss(w http.ResponseWriter, r *http.Request) {
	var req registerLossRequest
	if !h.decode(w, r, &req) {
		return
	}

	record, err := h.store.RegisterLoss(r.Context(), chi.URLParam(r, "id"), req.Quantity, req.Reason)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, record)
}

func (h *Handler) ListLosses(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListLosses())
}
