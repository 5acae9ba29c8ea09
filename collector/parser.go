package collector

import (
	"log"
	"strconv"
	"strings"

	"aquawatch/models"
)

// ParseSensorLine extracts a sensor submission from one serial line in the
// format "pH: 7.2 TDS: 145 Turbidity: 2.3". Keyword matching is tolerant of
// spacing and casing, with a positional fallback for firmware that drops the
// labels. Returns false when the line does not yield a complete reading.
func ParseSensorLine(line string) (models.SensorSubmission, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.SensorSubmission{}, false
	}

	parts := strings.Fields(line)

	var ph, tds, turbidity *float64

	for i, part := range parts {
		lower := strings.ToLower(part)
		switch {
		case strings.Contains(lower, "turb"):
			turbidity = valueAfter(parts, i)
		case strings.Contains(lower, "tds"):
			tds = valueAfter(parts, i)
		case strings.Contains(lower, "ph"):
			ph = valueAfter(parts, i)
		}
	}

	// Positional fallback: pH at index 1, TDS at 4, turbidity at 6.
	if ph == nil && len(parts) > 1 {
		ph = parseValue(parts[1])
	}
	if tds == nil && len(parts) > 4 {
		tds = parseValue(parts[4])
	}
	if turbidity == nil && len(parts) > 6 {
		turbidity = parseValue(parts[6])
	}

	if ph == nil || tds == nil || turbidity == nil {
		log.Printf("Collector: incomplete sensor data in line: %s", line)
		return models.SensorSubmission{}, false
	}

	if *ph < 0 || *ph > 14 {
		log.Printf("Collector: invalid pH value: %v", *ph)
		return models.SensorSubmission{}, false
	}
	if *tds < 0 || *tds > 10000 {
		log.Printf("Collector: TDS value out of reasonable range: %v", *tds)
	}
	if *turbidity < 0 || *turbidity > 100 {
		log.Printf("Collector: turbidity value out of reasonable range: %v", *turbidity)
	}

	return models.SensorSubmission{PH: *ph, TDS: *tds, Turbidity: *turbidity}, true
}

// valueAfter parses the token following a keyword token, if any.
func valueAfter(parts []string, i int) *float64 {
	if i+1 >= len(parts) {
		return nil
	}
	return parseValue(parts[i+1])
}

func parseValue(token string) *float64 {
	token = strings.ReplaceAll(token, ":", "")
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil
	}
	return &v
}
