package analysis

import (
	"fmt"
	"strings"

	"aquawatch/models"
)

// clause renders the narrative fragment for one metric at one status.
// pH is formatted to 1 decimal, TDS to 0 decimals with its unit, turbidity
// to 1 decimal with its unit.
func clause(metric Metric, status Status, value float64) string {
	switch metric {
	case MetricPH:
		switch status {
		case Safe:
			return fmt.Sprintf("pH is in the optimal range at %.1f", value)
		case Warning:
			return fmt.Sprintf("pH is slightly outside the ideal range at %.1f", value)
		default:
			return fmt.Sprintf("pH requires immediate attention at %.1f", value)
		}
	case MetricTDS:
		switch status {
		case Safe:
			return fmt.Sprintf("Dissolved solids are within safe limits at %.0f ppm", value)
		case Warning:
			return fmt.Sprintf("Dissolved solids are elevated at %.0f ppm", value)
		default:
			return fmt.Sprintf("Dissolved solids require immediate attention at %.0f ppm", value)
		}
	default:
		switch status {
		case Safe:
			return fmt.Sprintf("Water clarity is excellent at %.1f NTU", value)
		case Warning:
			return fmt.Sprintf("Water clarity is reduced at %.1f NTU", value)
		default:
			return fmt.Sprintf("Turbidity requires immediate attention at %.1f NTU", value)
		}
	}
}

// Compose synthesizes the human-readable insight text for a reading and its
// statuses. Clauses are partitioned into issues (warning or danger) and
// positives (safe); the final assembly branches on the number of issues.
func Compose(r models.Reading, set StatusSet) string {
	metrics := []struct {
		metric Metric
		status Status
		value  float64
	}{
		{MetricPH, set.PH, r.PH},
		{MetricTDS, set.TDS, r.TDS},
		{MetricTurbidity, set.Turbidity, r.Turbidity},
	}

	var issues, positives []string
	for _, m := range metrics {
		text := clause(m.metric, m.status, m.value)
		if m.status == Safe {
			positives = append(positives, text)
		} else {
			issues = append(issues, text)
		}
	}

	switch len(issues) {
	case 0:
		return "Your water quality is excellent. " + strings.Join(positives, ". ") +
			". Continue monitoring to maintain these levels."

	case 1:
		prefix := ""
		if len(positives) > 0 {
			prefix = strings.Join(positives, ". ") + ". "
		}
		return prefix + "However, " + issues[0] + ". Consider taking appropriate action."

	default:
		text := "Water quality needs attention. " + strings.Join(issues, ". ") + ". "
		if len(positives) > 0 {
			return text + "On the positive side, " + strings.Join(positives, ". ") + "."
		}
		return text + "Immediate action recommended."
	}
}
