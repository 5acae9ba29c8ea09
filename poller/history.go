package poller

import (
	"context"
	"log"

	"aquawatch/analysis"
	"aquawatch/models"
)

// RefreshHistory fetches the series for one period and replaces only that
// period's slot. On failure the slot is replaced with an empty series, an
// explicit "no data" signal rather than stale data left in place.
func (p *Poller) RefreshHistory(ctx context.Context, period models.Period) ([]models.HistoryPoint, error) {
	points, err := p.source.History(ctx, period)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil, err
	}

	if err != nil {
		log.Printf("Poller: history refresh failed for period %s: %v", period, err)
		p.history[period] = []models.HistoryPoint{}
		return []models.HistoryPoint{}, err
	}

	if points == nil {
		points = []models.HistoryPoint{}
	}
	p.history[period] = points
	return points, nil
}

// HistorySeries returns the held series for a period and whether that slot
// has ever been filled.
func (p *Poller) HistorySeries(period models.Period) ([]models.HistoryPoint, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	points, ok := p.history[period]
	if !ok {
		return nil, false
	}
	out := make([]models.HistoryPoint, len(points))
	copy(out, points)
	return out, true
}

// PeriodTrends computes per-metric trend directions over the held series for
// a period. An unfilled or empty slot yields all-stable trends.
func (p *Poller) PeriodTrends(period models.Period) analysis.TrendSet {
	points, _ := p.HistorySeries(period)
	return analysis.EvaluateTrends(points)
}
