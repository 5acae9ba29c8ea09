package models

import "fmt"

// Period is a named historical window used to select a history series.
type Period string

const (
	Period1Day    Period = "1day"
	Period1Month  Period = "1month"
	Period6Months Period = "6months"
)

// Periods lists all valid periods in display order.
var Periods = []Period{Period1Day, Period1Month, Period6Months}

// ParsePeriod accepts both the backend query form ("1day") and the short
// dashboard key form ("1d").
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "1day", "1d":
		return Period1Day, nil
	case "1month", "1m":
		return Period1Month, nil
	case "6months", "6m":
		return Period6Months, nil
	}
	return "", fmt.Errorf("invalid period %q: use 1day, 1month, or 6months", s)
}

// Key returns the short form used as the dashboard slot key.
func (p Period) Key() string {
	switch p {
	case Period1Day:
		return "1d"
	case Period1Month:
		return "1m"
	case Period6Months:
		return "6m"
	}
	return string(p)
}

func (p Period) Valid() bool {
	switch p {
	case Period1Day, Period1Month, Period6Months:
		return true
	}
	return false
}
