package models

import (
	"fmt"
	"time"
)

// PingStatus is the lifecycle state of a community report.
type PingStatus string

const (
	PingPending    PingStatus = "pending"
	PingInProgress PingStatus = "in_progress"
	PingResolved   PingStatus = "resolved"
)

// Ping is a community-submitted, geolocated water-quality report as the
// backend returns it. Nullable columns map to pointers.
type Ping struct {
	ID         int64      `json:"ping_id"`
	LocationID string     `json:"location_id"`
	Name       *string    `json:"name"`
	Type       string     `json:"type"`
	PH         *float64   `json:"ph"`
	TDS        *float64   `json:"tds"`
	Turbidity  *float64   `json:"turbidity"`
	Lat        *float64   `json:"lat"`
	Lon        *float64   `json:"lon"`
	Comments   *string    `json:"comments"`
	Status     PingStatus `json:"status"`
	Timestamp  time.Time  `json:"timestamp"`
}

// Mappable reports whether the ping carries coordinates and can be plotted.
func (p Ping) Mappable() bool {
	return p.Lat != nil && p.Lon != nil
}

// FilterMappable returns only the pings that can be plotted on a map.
func FilterMappable(pings []Ping) []Ping {
	mappable := make([]Ping, 0, len(pings))
	for _, p := range pings {
		if p.Mappable() {
			mappable = append(mappable, p)
		}
	}
	return mappable
}

// pingTypes are the location types the backend accepts.
var pingTypes = map[string]bool{
	"home_tank": true,
	"school":    true,
	"college":   true,
	"pond":      true,
	"lake":      true,
	"river":     true,
}

// PingSubmission is a new report before it is sent to the backend. Optional
// fields are pointers so "absent" and "zero" stay distinct.
type PingSubmission struct {
	LocationID string   `json:"location_id"`
	Name       *string  `json:"name,omitempty"`
	Type       string   `json:"type"`
	PH         *float64 `json:"ph,omitempty"`
	TDS        *float64 `json:"tds,omitempty"`
	Turbidity  *float64 `json:"turbidity,omitempty"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	Comments   *string  `json:"comments,omitempty"`
	Status     string   `json:"status"`
}

// Validate checks the submission against the backend contract before it is
// forwarded. Metric ranges match what the backend itself enforces.
func (s PingSubmission) Validate() error {
	if s.LocationID == "" {
		return fmt.Errorf("location_id is required")
	}
	if !pingTypes[s.Type] {
		return fmt.Errorf("invalid type %q: use home_tank, school, college, pond, lake, or river", s.Type)
	}
	if s.Lat == nil || s.Lon == nil {
		return fmt.Errorf("lat and lon are required")
	}
	if *s.Lat < -90 || *s.Lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90")
	}
	if *s.Lon < -180 || *s.Lon > 180 {
		return fmt.Errorf("lon must be between -180 and 180")
	}
	if s.PH != nil && (*s.PH < 0 || *s.PH > 14) {
		return fmt.Errorf("ph must be between 0 and 14")
	}
	if s.TDS != nil && *s.TDS < 0 {
		return fmt.Errorf("tds must be non-negative")
	}
	if s.Turbidity != nil && *s.Turbidity < 0 {
		return fmt.Errorf("turbidity must be non-negative")
	}
	return nil
}
