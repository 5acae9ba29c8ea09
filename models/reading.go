package models

import "time"

// Reading is one snapshot of the three water-quality metrics.
type Reading struct {
	ID        int64     `json:"id,omitempty"`
	PH        float64   `json:"ph"`
	TDS       float64   `json:"tds"`
	Turbidity float64   `json:"turbidity"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryPoint is one aggregated sample in a historical series. Time is kept
// as the label string the backend sends; it is only ever displayed, never
// computed with.
type HistoryPoint struct {
	Time      string  `json:"time"`
	PH        float64 `json:"ph"`
	TDS       float64 `json:"tds"`
	Turbidity float64 `json:"turbidity"`
}

// SensorSubmission is the payload the collector posts to the backend.
type SensorSubmission struct {
	PH        float64 `json:"ph"`
	TDS       float64 `json:"tds"`
	Turbidity float64 `json:"turbidity"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
