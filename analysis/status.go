package analysis

import (
	"encoding/json"
	"math"

	"aquawatch/models"
)

// Metric identifies one of the three water-quality parameters.
type Metric int

const (
	MetricPH Metric = iota
	MetricTDS
	MetricTurbidity
)

// String returns the string representation of the metric
func (m Metric) String() string {
	switch m {
	case MetricPH:
		return "ph"
	case MetricTDS:
		return "tds"
	case MetricTurbidity:
		return "turbidity"
	default:
		return "unknown"
	}
}

// Status is the discrete safety classification of a single metric value.
type Status int

const (
	// Safe means the value is inside the recommended band
	Safe Status = iota
	// Warning means the value is outside the safe band but still tolerable
	Warning
	// Danger means the value needs intervention
	Danger
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Safe:
		return "safe"
	case Warning:
		return "warning"
	case Danger:
		return "danger"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its string form so API consumers see
// "safe"/"warning"/"danger" rather than enum ordinals.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Classify maps a raw metric value to its safety status. Bounds are
// inclusive and rules are evaluated in order, first match wins. NaN never
// classifies as safe; it falls straight to danger so a broken sensor is
// surfaced rather than hidden.
func Classify(metric Metric, value float64) Status {
	if math.IsNaN(value) {
		return Danger
	}

	switch metric {
	case MetricPH:
		if value >= 6.5 && value <= 8.5 {
			return Safe
		}
		if value >= 6.0 && value <= 9.0 {
			return Warning
		}
		return Danger

	case MetricTDS:
		if value <= 150 {
			return Safe
		}
		if value <= 300 {
			return Warning
		}
		return Danger

	case MetricTurbidity:
		if value <= 5 {
			return Safe
		}
		if value <= 10 {
			return Warning
		}
		return Danger

	default:
		return Danger
	}
}

// StatusSet holds the classification of every metric in a reading.
type StatusSet struct {
	PH        Status `json:"ph"`
	TDS       Status `json:"tds"`
	Turbidity Status `json:"turbidity"`
}

// EvaluateReading classifies all three metrics of a reading.
func EvaluateReading(r models.Reading) StatusSet {
	return StatusSet{
		PH:        Classify(MetricPH, r.PH),
		TDS:       Classify(MetricTDS, r.TDS),
		Turbidity: Classify(MetricTurbidity, r.Turbidity),
	}
}

// SafeCount returns how many metrics in the set are classified safe.
func (s StatusSet) SafeCount() int {
	count := 0
	for _, st := range []Status{s.PH, s.TDS, s.Turbidity} {
		if st == Safe {
			count++
		}
	}
	return count
}
