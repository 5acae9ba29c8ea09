package test

import (
	"context"
	"sync"
	"time"

	"aquawatch/models"
)

// MockReadingSource is a mock backend for poller tests. Behavior can be
// driven either through the setter methods or, for fine-grained control,
// by assigning LatestFunc/HistoryFunc.
type MockReadingSource struct {
	mu           sync.Mutex
	reading      models.Reading
	readingErr   error
	history      map[models.Period][]models.HistoryPoint
	historyErr   error
	latestCalls  int
	historyCalls int

	LatestFunc  func(ctx context.Context) (models.Reading, error)
	HistoryFunc func(ctx context.Context, period models.Period) ([]models.HistoryPoint, error)
}

// NewMockReadingSource creates a mock source that returns the default test
// reading until told otherwise.
func NewMockReadingSource() *MockReadingSource {
	return &MockReadingSource{
		reading: NewTestReading(),
		history: make(map[models.Period][]models.HistoryPoint),
	}
}

func (m *MockReadingSource) LatestReading(ctx context.Context) (models.Reading, error) {
	m.mu.Lock()
	m.latestCalls++
	fn := m.LatestFunc
	reading, err := m.reading, m.readingErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx)
	}
	return reading, err
}

func (m *MockReadingSource) History(ctx context.Context, period models.Period) ([]models.HistoryPoint, error) {
	m.mu.Lock()
	m.historyCalls++
	fn := m.HistoryFunc
	points, err := m.history[period], m.historyErr
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, period)
	}
	return points, err
}

// SetReading sets the reading returned by LatestReading.
func (m *MockReadingSource) SetReading(r models.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reading = r
	m.readingErr = nil
}

// SetReadingError makes LatestReading fail with the given error.
func (m *MockReadingSource) SetReadingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readingErr = err
}

// SetHistory sets the series returned for one period.
func (m *MockReadingSource) SetHistory(period models.Period, points []models.HistoryPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[period] = points
	m.historyErr = nil
}

// SetHistoryError makes History fail with the given error.
func (m *MockReadingSource) SetHistoryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.historyErr = err
}

// GetLatestCalls returns how many times LatestReading was called.
func (m *MockReadingSource) GetLatestCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latestCalls
}

// GetHistoryCalls returns how many times History was called.
func (m *MockReadingSource) GetHistoryCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.historyCalls
}

// NewTestReading creates a reading with all metrics in the safe band.
func NewTestReading() models.Reading {
	return models.Reading{
		ID:        1,
		PH:        7.2,
		TDS:       120,
		Turbidity: 2,
		Timestamp: time.Now().UTC(),
	}
}

// NewTestReadingWithPH creates a safe reading with a specific pH.
func NewTestReadingWithPH(ph float64) models.Reading {
	r := NewTestReading()
	r.PH = ph
	return r
}

// NewDangerReading creates a reading with every metric in the danger band.
func NewDangerReading() models.Reading {
	return models.Reading{
		ID:        2,
		PH:        9.5,
		TDS:       600,
		Turbidity: 15,
		Timestamp: time.Now().UTC(),
	}
}

// NewTestHistorySeries creates a short rising series for trend tests.
func NewTestHistorySeries() []models.HistoryPoint {
	return []models.HistoryPoint{
		{Time: "2024-01-15 08:00:00", PH: 7.0, TDS: 100, Turbidity: 2.0},
		{Time: "2024-01-15 12:00:00", PH: 7.1, TDS: 110, Turbidity: 2.2},
		{Time: "2024-01-15 16:00:00", PH: 7.6, TDS: 140, Turbidity: 2.1},
	}
}

// FloatPtr returns a pointer to the given float, for optional ping fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}

// NewTestPingSubmission creates a valid community report submission.
func NewTestPingSubmission() models.PingSubmission {
	return models.PingSubmission{
		LocationID: "LOC-001",
		Name:       StringPtr("Village tank"),
		Type:       "home_tank",
		PH:         FloatPtr(7.0),
		TDS:        FloatPtr(140),
		Turbidity:  FloatPtr(3.0),
		Lat:        FloatPtr(12.97),
		Lon:        FloatPtr(77.59),
		Status:     string(models.PingPending),
	}
}
