// Package analytics derives dashboard aggregates from the domain store:
// revenue series, product rankings, vendor performance and stock alerts.
// Only completed sales count toward revenue.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/meubentin/bentin/internal/store"
)

// DataSource is the slice of the domain store the aggregates are computed
// from.
type DataSource interface {
	ListSales() []store.Sale
	ListProducts() []store.Product
	ListVendors() []store.Vendor
}

// Summary is the headline dashboard block for a date range.
type Summary struct {
	From          time.Time                       `json:"de"`
	To            time.Time                       `json:"ate"`
	Revenue       float64                         `json:"receita"`
	SalesCount    int                             `json:"quantidadeVendas"`
	ItemsSold     int                             `json:"itensVendidos"`
	AverageTicket float64                         `json:"ticketMedio"`
	TotalDiscount float64                         `json:"descontoTotal"`
	ByPayment     map[store.PaymentMethod]float64 `json:"porFormaPagamento"`
}

// RevenuePoint is one bucket of a revenue series.
type RevenuePoint struct {
	Label   string  `json:"periodo"`
	Revenue float64 `json:"receita"`
	Sales   int     `json:"vendas"`
}

// ProductRanking ranks a product by units sold within a range.
type ProductRanking struct {
	ProductID string  `json:"produtoId"`
	Name      string  `json:"nome"`
	Quantity  int     `json:"quantidade"`
	Revenue   float64 `json:"receita"`
}

// VendorPerformance summarises one vendor's sales and earned commission.
type VendorPerformance struct {
	VendorID   string  `json:"vendedorId"`
	Name       string  `json:"nome"`
	SalesCount int     `json:"quantidadeVendas"`
	Revenue    float64 `json:"receita"`
	Commission float64 `json:"comissao"`
}

// Service computes aggregates over the store, caching results in Redis.
type Service struct {
	data   DataSource
	cache  *Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds the analytics service.
func NewService(data DataSource, cache *Cache, logger *slog.Logger) *Service {
	return &Service{data: data, cache: cache, logger: logger, now: time.Now}
}

// Invalidate drops every cached aggregate. Called after sale mutations.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("analytics cache bump", slog.Any("error", err))
	}
}

// completedBetween selects completed sales with Date in [from, to].
func (s *Service) completedBetween(from, to time.Time) []store.Sale {
	var out []store.Sale
	for _, sale := range s.data.ListSales() {
		if sale.Status != store.SaleStatusCompleted {
			continue
		}
		if sale.Date.Before(from) || sale.Date.After(to) {
			continue
		}
		out = append(out, sale)
	}
	return out
}

func rangeKey(prefix string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s", prefix, from.Format("20060102"), to.Format("20060102"))
}

// GetSummary returns the headline numbers for a date range.
func (s *Service) GetSummary(ctx context.Context, from, to time.Time) (Summary, error) {
	key := rangeKey("summary", from, to)
	var cached Summary
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("analytics cache read", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	summary := Summary{
		From:      from,
		To:        to,
		ByPayment: make(map[store.PaymentMethod]float64),
	}
	for _, sale := range s.completedBetween(from, to) {
		summary.Revenue += sale.Total
		summary.TotalDiscount += sale.Discount
		summary.SalesCount++
		summary.ByPayment[sale.PaymentMethod] += sale.Total
		for _, item := range sale.Items {
			summary.ItemsSold += item.Quantity
		}
	}
	if summary.SalesCount > 0 {
		summary.AverageTicket = summary.Revenue / float64(summary.SalesCount)
	}

	if err := s.cache.Set(ctx, key, summary); err != nil {
		s.logger.Warn("analytics cache write", slog.Any("error", err))
	}
	return summary, nil
}

// RevenueByDay buckets completed sales per calendar day.
func (s *Service) RevenueByDay(ctx context.Context, from, to time.Time) ([]RevenuePoint, error) {
	return s.revenueSeries(ctx, from, to, "2006-01-02", "daily")
}

// RevenueByMonth buckets completed sales per calendar month.
func (s *Service) RevenueByMonth(ctx context.Context, from, to time.Time) ([]RevenuePoint, error) {
	return s.revenueSeries(ctx, from, to, "2006-01", "monthly")
}

func (s *Service) revenueSeries(ctx context.Context, from, to time.Time, layout, prefix string) ([]RevenuePoint, error) {
	key := rangeKey(prefix, from, to)
	var cached []RevenuePoint
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("analytics cache read", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	buckets := make(map[string]*RevenuePoint)
	for _, sale := range s.completedBetween(from, to) {
		label := sale.Date.Format(layout)
		point, ok := buckets[label]
		if !ok {
			point = &RevenuePoint{Label: label}
			buckets[label] = point
		}
		point.Revenue += sale.Total
		point.Sales++
	}

	series := make([]RevenuePoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Label < series[j].Label })

	if err := s.cache.Set(ctx, key, series); err != nil {
		s.logger.Warn("analytics cache write", slog.Any("error", err))
	}
	return series, nil
}

// TopProducts ranks products by units sold within the range.
func (s *Service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductRanking, error) {
	if limit <= 0 {
		limit = 10
	}
	key := fmt.Sprintf("%s:%d", rangeKey("top", from, to), limit)
	var cached []ProductRanking
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("analytics cache read", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	byProduct := make(map[string]*ProductRanking)
	for _, sale := range s.completedBetween(from, to) {
		for _, item := range sale.Items {
			ranking, ok := byProduct[item.ProductID]
			if !ok {
				ranking = &ProductRanking{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = ranking
			}
			ranking.Quantity += item.Quantity
			ranking.Revenue += item.Subtotal
		}
	}

	rankings := make([]ProductRanking, 0, len(byProduct))
	for _, r := range byProduct {
		rankings = append(rankings, *r)
	}
	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Quantity != rankings[j].Quantity {
			return rankings[i].Quantity > rankings[j].Quantity
		}
		return rankings[i].Revenue > rankings[j].Revenue
	})
	if len(rankings) > limit {
		rankings = rankings[:limit]
	}

	if err := s.cache.Set(ctx, key, rankings); err != nil {
		s.logger.Warn("analytics cache write", slog.Any("error", err))
	}
	return rankings, nil
}

// VendorPerformance summarises revenue and commission per vendor.
func (s *Service) VendorPerformance(ctx context.Context, from, to time.Time) ([]VendorPerformance, error) {
	key := rangeKey("vendors", from, to)
	var cached []VendorPerformance
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("analytics cache read", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	commission := make(map[string]float64)
	for _, v := range s.data.ListVendors() {
		commission[v.ID] = v.CommissionPct
	}

	byVendor := make(map[string]*VendorPerformance)
	for _, sale := range s.completedBetween(from, to) {
		perf, ok := byVendor[sale.VendorID]
		if !ok {
			perf = &VendorPerformance{VendorID: sale.VendorID, Name: sale.VendorName}
			byVendor[sale.VendorID] = perf
		}
		perf.SalesCount++
		perf.Revenue += sale.Total
		perf.Commission += sale.Total * commission[sale.VendorID] / 100
	}

	performances := make([]VendorPerformance, 0, len(byVendor))
	for _, p := range byVendor {
		performances = append(performances, *p)
	}
	sort.Slice(performances, func(i, j int) bool { return performances[i].Revenue > performances[j].Revenue })

	if err := s.cache.Set(ctx, key, performances); err != nil {
		s.logger.Warn("analytics cache write", slog.Any("error", err))
	}
	return performances, nil
}

// LowStock lists products at or below their minimum threshold. Always
// computed fresh; stock moves on every sale.
func (s *Service) LowStock() []store.Product {
	var out []store.Product
	for _, p := range s.data.ListProducts() {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out
}
