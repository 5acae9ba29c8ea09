package analysis

import (
	"encoding/json"
	"math"

	"aquawatch/models"
)

// Direction is the coarse movement of a metric over a historical window.
type Direction int

const (
	Stable Direction = iota
	Up
	Down
)

// String returns the string representation of the direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "stable"
	}
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Trend computes the directional trend of an ordered series by percent
// change from the first to the last value. Fewer than two points is stable.
// A zero baseline is stable as well, rather than propagating Inf/NaN from
// the division.
func Trend(values []float64) Direction {
	if len(values) < 2 {
		return Stable
	}

	first := values[0]
	last := values[len(values)-1]
	if first == 0 {
		return Stable
	}

	change := (last - first) / first * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return Stable
	}

	if change > 5 {
		return Up
	}
	if change < -5 {
		return Down
	}
	return Stable
}

// TrendSet holds the trend direction of every metric over one history window.
type TrendSet struct {
	PH        Direction `json:"ph"`
	TDS       Direction `json:"tds"`
	Turbidity Direction `json:"turbidity"`
}

// EvaluateTrends computes per-metric trends from an ordered history series.
func EvaluateTrends(points []models.HistoryPoint) TrendSet {
	ph := make([]float64, len(points))
	tds := make([]float64, len(points))
	turbidity := make([]float64, len(points))
	for i, p := range points {
		ph[i] = p.PH
		tds[i] = p.TDS
		turbidity[i] = p.Turbidity
	}
	return TrendSet{
		PH:        Trend(ph),
		TDS:       Trend(tds),
		Turbidity: Trend(turbidity),
	}
}
