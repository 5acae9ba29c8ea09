package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func validSubmission() PingSubmission {
	return PingSubmission{
		LocationID: "LOC-001",
		Type:       "river",
		Lat:        floatPtr(12.97),
		Lon:        floatPtr(77.59),
		Status:     string(PingPending),
	}
}

func TestPingSubmissionValid(t *testing.T) {
	if err := validSubmission().Validate(); err != nil {
		t.Errorf("expected valid submission, got error: %v", err)
	}
}

func TestPingSubmissionValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*PingSubmission)
		wantErr string
	}{
		{"missing location", func(s *PingSubmission) { s.LocationID = "" }, "location_id"},
		{"unknown type", func(s *PingSubmission) { s.Type = "ocean" }, "invalid type"},
		{"missing lat", func(s *PingSubmission) { s.Lat = nil }, "lat and lon"},
		{"missing lon", func(s *PingSubmission) { s.Lon = nil }, "lat and lon"},
		{"lat out of range", func(s *PingSubmission) { s.Lat = floatPtr(91) }, "lat must be"},
		{"lon out of range", func(s *PingSubmission) { s.Lon = floatPtr(-181) }, "lon must be"},
		{"ph too high", func(s *PingSubmission) { s.PH = floatPtr(14.5) }, "ph must be"},
		{"ph negative", func(s *PingSubmission) { s.PH = floatPtr(-0.1) }, "ph must be"},
		{"negative tds", func(s *PingSubmission) { s.TDS = floatPtr(-1) }, "tds must be"},
		{"negative turbidity", func(s *PingSubmission) { s.Turbidity = floatPtr(-1) }, "turbidity must be"},
	}

	for _, tc := range cases {
		sub := validSubmission()
		tc.mutate(&sub)
		err := sub.Validate()
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: expected error containing %q, got %q", tc.name, tc.wantErr, err.Error())
		}
	}
}

func TestPingSubmissionAllTypes(t *testing.T) {
	for _, pingType := range []string{"home_tank", "school", "college", "pond", "lake", "river"} {
		sub := validSubmission()
		sub.Type = pingType
		if err := sub.Validate(); err != nil {
			t.Errorf("expected type %q to validate, got error: %v", pingType, err)
		}
	}
}

func TestPingNullCoordinates(t *testing.T) {
	jsonData := `{
		"ping_id": 3,
		"location_id": "LOC-002",
		"name": null,
		"type": "pond",
		"ph": 6.8,
		"tds": 210,
		"turbidity": 4.5,
		"lat": null,
		"lon": null,
		"comments": null,
		"status": "pending",
		"timestamp": "2024-01-15T10:30:00Z"
	}`

	var ping Ping
	if err := json.Unmarshal([]byte(jsonData), &ping); err != nil {
		t.Fatalf("failed to unmarshal ping: %v", err)
	}

	if ping.Mappable() {
		t.Error("expected ping with null coordinates to not be mappable")
	}
	if ping.PH == nil || *ping.PH != 6.8 {
		t.Errorf("expected ph 6.8, got %v", ping.PH)
	}
}

func TestFilterMappable(t *testing.T) {
	pings := []Ping{
		{ID: 1, Lat: floatPtr(12.9), Lon: floatPtr(77.5)},
		{ID: 2, Lat: nil, Lon: floatPtr(77.5)},
		{ID: 3, Lat: floatPtr(12.9), Lon: nil},
		{ID: 4, Lat: nil, Lon: nil},
	}

	mappable := FilterMappable(pings)
	if len(mappable) != 1 {
		t.Fatalf("expected 1 mappable ping, got %d", len(mappable))
	}
	if mappable[0].ID != 1 {
		t.Errorf("expected ping 1, got %d", mappable[0].ID)
	}
}
