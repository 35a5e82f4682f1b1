package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// InsightKind classifies a generated insight.
type InsightKind string

const (
	InsightGrowth    InsightKind = "crescimento"
	InsightDecline   InsightKind = "queda"
	InsightLowStock  InsightKind = "estoque_baixo"
	InsightSlowMover InsightKind = "produto_parado"
	InsightBestDay   InsightKind = "melhor_dia"
)

// Insight is a human-readable observation derived from recent sales.
type Insight struct {
	Kind        InsightKind `json:"tipo"`
	Title       string      `json:"titulo"`
	Description string      `json:"descricao"`
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// Insights runs the heuristic scan over the last 30 days of sales and the
// current stock position.
func (s *Service) Insights(ctx context.Context) ([]Insight, error) {
	const suffix = "insights"
	var cached []Insight
	if hit, err := s.cache.Get(ctx, suffix, &cached); err != nil {
		s.logger.Warn("analytics cache read", slog.Any("error", err))
	} else if hit {
		return cached, nil
	}

	now := s.now()
	currentFrom := now.AddDate(0, 0, -30)
	previousFrom := now.AddDate(0, 0, -60)

	insights := make([]Insight, 0, 4)

	current := s.completedBetween(currentFrom, now)
	previous := s.completedBetween(previousFrom, currentFrom)

	var currentRevenue, previousRevenue float64
	soldRecently := make(map[string]bool)
	byWeekday := make(map[time.Weekday]float64)
	for _, sale := range current {
		currentRevenue += sale.Total
		byWeekday[sale.Date.Weekday()] += sale.Total
		for _, item := range sale.Items {
			soldRecently[item.ProductID] = true
		}
	}
	for _, sale := range previous {
		previousRevenue += sale.Total
	}

	if previousRevenue > 0 {
		change := (currentRevenue - previousRevenue) / previousRevenue * 100
		switch {
		case change >= 10:
			insights = append(insights, Insight{
				Kind:        InsightGrowth,
				Title:       "Vendas em alta",
				Description: fmt.Sprintf("A receita dos últimos 30 dias cresceu %.0f%% em relação ao período anterior.", change),
			})
		case change <= -10:
			insights = append(insights, Insight{
				Kind:        InsightDecline,
				Title:       "Vendas em queda",
				Description: fmt.Sprintf("A receita dos últimos 30 dias caiu %.0f%% em relação ao período anterior.", -change),
			})
		}
	}

	if len(byWeekday) > 0 {
		var bestDay time.Weekday
		var bestRevenue float64
		for day, revenue := range byWeekday {
			if revenue > bestRevenue {
				bestDay, bestRevenue = day, revenue
			}
		}
		insights = append(insights, Insight{
			Kind:        InsightBestDay,
			Title:       "Melhor dia da semana",
			Description: fmt.Sprintf("%s concentra o maior faturamento dos últimos 30 dias (R$ %.2f).", weekdayNames[bestDay], bestRevenue),
		})
	}

	if low := s.LowStock(); len(low) > 0 {
		insights = append(insights, Insight{
			Kind:        InsightLowStock,
			Title:       "Reposição necessária",
			Description: fmt.Sprintf("%d produto(s) estão no estoque mínimo ou abaixo, a começar por %q.", len(low), low[0].Name),
		})
	}

	var slow []string
	for _, p := range s.data.ListProducts() {
		if p.Quantity > 0 && !soldRecently[p.ID] && p.CreatedAt.Before(currentFrom) {
			slow = append(slow, p.Name)
		}
	}
	if len(slow) > 0 {
		insights = append(insights, Insight{
			Kind:        InsightSlowMover,
			Title:       "Produtos parados",
			Description: fmt.Sprintf("%d produto(s) com estoque não vendem há 30 dias, como %q. Considere uma promoção.", len(slow), slow[0]),
		})
	}

	if err := s.cache.Set(ctx, suffix, insights); err != nil {
		s.logger.Warn("analytics cache write", slog.Any("error", err))
	}
	return insights, nil
}

// Warmup precomputes the aggregates the dashboard opens with. Used by the
// background refresh job so first paint hits a warm cache.
func (s *Service) Warmup(ctx context.Context) error {
	now := s.now()
	from := now.AddDate(0, 0, -30)
	if _, err := s.GetSummary(ctx, from, now); err != nil {
		return err
	}
	if _, err := s.RevenueByDay(ctx, from, now); err != nil {
		return err
	}
	if _, err := s.TopProducts(ctx, from, now, 10); err != nil {
		return err
	}
	if _, err := s.VendorPerformance(ctx, from, now); err != nil {
		return err
	}
	if _, err := s.Insights(ctx); err != nil {
		return err
	}
	return nil
}
