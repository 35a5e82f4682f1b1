package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.store.ListCategories())
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.store.AddCategory(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, category)
}

func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !h.decode(w, r, &req) {
		return
	}

	category, err := h.store.RenameCategory(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}
