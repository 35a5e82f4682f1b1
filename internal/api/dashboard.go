package api

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meubentin/bentin/internal/analytics"
	"github.com/meubentin/bentin/internal/store"
)

const defaultDashboardDays = 30

type dashboardResponse struct {
	Summary  analytics.Summary             `json:"resumo"`
	Daily    []analytics.RevenuePoint      `json:"receitaDiaria"`
	Monthly  []analytics.RevenuePoint      `json:"receitaMensal"`
	TopItems []analytics.ProductRanking    `json:"maisVendidos"`
	Vendors  []analytics.VendorPerformance `json:"vendedores"`
	LowStock []store.Product               `json:"estoqueBaixo"`
}

// parseRange reads de/ate query parameters (YYYY-MM-DD), defaulting to the
// last 30 days.
func parseRange(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -defaultDashboardDays)
	to := now

	if v := r.URL.Query().Get("de"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if v := r.URL.Query().Get("ate"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, false
		}
		// Include the whole closing day.
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, !to.Before(from)
}

// Dashboard assembles every dashboard block in one response, computing the
// independent aggregates concurrently.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(r)
	if !ok {
		h.respond(w, http.StatusBadRequest, map[string]string{"erro": "intervalo de datas inválido"})
		return
	}

	var resp dashboardResponse
	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		summary, err := h.analytics.GetSummary(ctx, from, to)
		if err != nil {
			return err
		}
		resp.Summary = summary
		return nil
	})
	g.Go(func() error {
		daily, err := h.analytics.RevenueByDay(ctx, from, to)
		if err != nil {
			return err
		}
		resp.Daily = daily
		return nil
	})
	g.Go(func() error {
		monthly, err := h.analytics.RevenueByMonth(ctx, from, to)
		if err != nil {
			return err
		}
		resp.Monthly = monthly
		return nil
	})
	g.Go(func() error {
		top, err := h.analytics.TopProducts(ctx, from, to, 10)
		if err != nil {
			return err
		}
		resp.TopItems = top
		return nil
	})
	g.Go(func() error {
		vendors, err := h.analytics.VendorPerformance(ctx, from, to)
		if err != nil {
			return err
		}
		resp.Vendors = vendors
		return nil
	})

	if err := g.Wait(); err != nil {
		h.respondError(w, err)
		return
	}
	resp.LowStock = h.analytics.LowStock()

	h.respond(w, http.StatusOK, resp)
}

// Insights serves the heuristic observations block.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.analytics.Insights(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respond(w, http.StatusOK, insights)
}
