package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/meubentin/bentin/internal/store"
)

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError maps store sentinels onto HTTP status codes. Unknown errors
// are logged and reported as 500 without leaking details.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateCategory),
		errors.Is(err, store.ErrCategoryInUse),
		errors.Is(err, store.ErrInvalidStatus):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInvalidDiscount),
		errors.Is(err, store.ErrDiscountExceedsSubtotal),
		errors.Is(err, store.ErrInvalidPayment),
		errors.Is(err, store.ErrNameRequired),
		errors.Is(err, store.ErrInvalidPrice):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("api request failed", slog.Any("error", err))
		h.respond(w, status, map[string]string{"erro": "erro interno"})
		return
	}
	h.respond(w, status, map[string]string{"erro": err.Error()})
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, http.StatusBadRequest, map[string]string{"erro": "corpo inválido"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			h.respond(w, http.StatusUnprocessableEntity, map[string]string{
				"erro":  "validação falhou",
				"campo": verrs[0].Field(),
			})
			return false
		}
		h.respond(w, http.StatusUnprocessableEntity, map[string]string{"erro": "validação falhou"})
		return false
	}
	return true
}
