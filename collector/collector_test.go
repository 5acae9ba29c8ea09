package collector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquawatch/models"
)

type mockSubmitter struct {
	mu        sync.Mutex
	calls     int
	failFirst int
	failAll   bool
	got       []models.SensorSubmission
}

func (m *mockSubmitter) CreateReading(ctx context.Context, sub models.SensorSubmission) (models.Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.failAll || m.calls <= m.failFirst {
		return models.Reading{}, errors.New("connection refused")
	}
	m.got = append(m.got, sub)
	return models.Reading{ID: int64(len(m.got))}, nil
}

func (m *mockSubmitter) submitted() []models.SensorSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SensorSubmission, len(m.got))
	copy(out, m.got)
	return out
}

func (m *mockSubmitter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestCollectorSubmitsReadings(t *testing.T) {
	submitter := &mockSubmitter{}
	c := NewCollector(submitter, 3, time.Millisecond)

	input := strings.Join([]string{
		"pH: 7.2 TDS: 145 Turbidity: 2.3",
		"",
		"garbage line",
		"pH: 6.9 TDS: 200 Turbidity: 4.0",
	}, "\n")

	err := c.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	got := submitter.submitted()
	require.Len(t, got, 2)
	assert.Equal(t, 7.2, got[0].PH)
	assert.Equal(t, 6.9, got[1].PH)
}

func TestCollectorRetriesThenSucceeds(t *testing.T) {
	submitter := &mockSubmitter{failFirst: 2}
	c := NewCollector(submitter, 3, time.Millisecond)

	err := c.Run(context.Background(), strings.NewReader("pH: 7.2 TDS: 145 Turbidity: 2.3\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, submitter.callCount())
	assert.Len(t, submitter.submitted(), 1)
}

func TestCollectorGivesUpAfterConsecutiveFailures(t *testing.T) {
	submitter := &mockSubmitter{failAll: true}
	c := NewCollector(submitter, 1, time.Millisecond)
	c.SetMaxConsecutiveErrors(2)

	input := strings.Join([]string{
		"pH: 7.2 TDS: 145 Turbidity: 2.3",
		"pH: 7.1 TDS: 150 Turbidity: 2.5",
		"pH: 7.0 TDS: 155 Turbidity: 2.7",
	}, "\n")

	err := c.Run(context.Background(), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many consecutive submission failures")
	// The third line is never reached.
	assert.Equal(t, 2, submitter.callCount())
}

func TestCollectorFailureCountResetsOnSuccess(t *testing.T) {
	submitter := &mockSubmitter{failFirst: 1}
	c := NewCollector(submitter, 1, time.Millisecond)
	c.SetMaxConsecutiveErrors(2)

	input := strings.Join([]string{
		"pH: 7.2 TDS: 145 Turbidity: 2.3",
		"pH: 7.1 TDS: 150 Turbidity: 2.5",
		"pH: 7.0 TDS: 155 Turbidity: 2.7",
	}, "\n")

	err := c.Run(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, submitter.submitted(), 2)
}

func TestCollectorStopsOnContextCancellation(t *testing.T) {
	submitter := &mockSubmitter{}
	c := NewCollector(submitter, 3, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, strings.NewReader("pH: 7.2 TDS: 145 Turbidity: 2.3\n"))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, submitter.callCount())
}

func TestCollectorSkipsUnparseableStream(t *testing.T) {
	submitter := &mockSubmitter{}
	c := NewCollector(submitter, 3, time.Millisecond)

	err := c.Run(context.Background(), strings.NewReader("boot v1.2\nsensor init ok\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, submitter.callCount())
}
