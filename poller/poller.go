package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"aquawatch/analysis"
	"aquawatch/api"
	"aquawatch/models"
)

// ReadingSource is the backend surface the poller depends on.
// This allows for mocking in tests.
type ReadingSource interface {
	LatestReading(ctx context.Context) (models.Reading, error)
	History(ctx context.Context, period models.Period) ([]models.HistoryPoint, error)
}

// State is the lifecycle state of the latest-reading loop.
type State int

const (
	// Uninitialized means Start has not been called yet
	Uninitialized State = iota
	// Loading means the first fetch has been issued but nothing has resolved
	Loading
	// Loaded means the held reading is current
	Loaded
	// ErrorNoData means a fetch failed and no reading has ever been held
	ErrorNoData
	// ErrorStale means a fetch failed but a previously held reading remains
	ErrorStale
)

// String returns the string representation of the poller state
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case ErrorNoData:
		return "error_no_data"
	case ErrorStale:
		return "error_stale"
	default:
		return "unknown"
	}
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Snapshot is the full derived dashboard view at one instant.
type Snapshot struct {
	State       State               `json:"state"`
	Reading     *models.Reading     `json:"reading,omitempty"`
	Statuses    *analysis.StatusSet `json:"statuses,omitempty"`
	Confidence  int                 `json:"confidence,omitempty"`
	Insight     string              `json:"insight,omitempty"`
	Error       string              `json:"error,omitempty"`
	LastUpdated time.Time           `json:"last_updated,omitzero"`
}

// Poller periodically fetches the latest reading from the backend and holds
// the derived dashboard state. History series are refreshed on demand per
// period and held in independent slots.
//
// Every fetch is tagged with a monotonically increasing sequence number and
// runs in its own goroutine, so a hung request never delays the next tick
// and a slow response can never overwrite a newer one out of order.
type Poller struct {
	source   ReadingSource
	interval time.Duration
	timeout  time.Duration

	stopCh chan struct{}
	wg     sync.WaitGroup

	mu          sync.RWMutex
	stopped     bool
	state       State
	reading     models.Reading
	hasReading  bool
	lastErr     string
	lastUpdated time.Time
	issuedSeq   uint64
	appliedSeq  uint64
	history     map[models.Period][]models.HistoryPoint
}

// NewPoller creates a poller over the given source.
// interval: how often the latest reading is refreshed
// timeout: per-fetch deadline, should be shorter than the interval
func NewPoller(source ReadingSource, interval, timeout time.Duration) *Poller {
	return &Poller{
		source:   source,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
		state:    Uninitialized,
		history:  make(map[models.Period][]models.HistoryPoint),
	}
}

// Start begins the latest-reading loop. The first fetch is issued
// immediately; subsequent fetches fire on every tick.
func (p *Poller) Start() {
	p.mu.Lock()
	if p.state == Uninitialized {
		p.state = Loading
	}
	p.mu.Unlock()

	p.issueFetch()

	p.wg.Add(1)
	go p.pollLoop()
}

// Stop halts the loop and guarantees no further state updates are applied.
// Results from fetches still in flight are discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
}

func (p *Poller) pollLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.issueFetch()
		case <-p.stopCh:
			log.Println("Poller: stopping latest-reading loop")
			return
		}
	}
}

// issueFetch tags a new fetch with the next sequence number and runs it
// without blocking the loop.
func (p *Poller) issueFetch() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.issuedSeq++
	seq := p.issuedSeq
	p.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		reading, err := p.source.LatestReading(ctx)
		p.apply(seq, reading, err)
	}()
}

// apply folds one fetch result into the held state. Results are discarded if
// the poller has stopped or if a newer result has already been applied.
func (p *Poller) apply(seq uint64, reading models.Reading, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || seq <= p.appliedSeq {
		return
	}
	p.appliedSeq = seq

	if err == nil {
		logNaNMetrics(reading)
		p.reading = reading
		p.hasReading = true
		p.state = Loaded
		p.lastErr = ""
		p.lastUpdated = time.Now().UTC()
		return
	}

	// An error never erases a held reading: stale data stays visible with a
	// non-blocking indicator instead of disappearing.
	if errors.Is(err, api.ErrNoReadings) {
		p.lastErr = "no sensor data available yet"
	} else {
		p.lastErr = err.Error()
	}
	if p.hasReading {
		p.state = ErrorStale
	} else {
		p.state = ErrorNoData
	}
}

// logNaNMetrics flags non-numeric metric values. Classification already
// treats NaN as danger; this makes the broken sensor visible in the logs.
func logNaNMetrics(r models.Reading) {
	metrics := []struct {
		name  string
		value float64
	}{
		{"ph", r.PH},
		{"tds", r.TDS},
		{"turbidity", r.Turbidity},
	}
	for _, m := range metrics {
		if math.IsNaN(m.value) {
			log.Printf("Poller: WARNING: non-numeric %s value in latest reading", m.name)
		}
	}
}

// Snapshot returns the current derived dashboard state. Classification,
// confidence, and insight text are computed per call from the held reading.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	snap := Snapshot{
		State:       p.state,
		Error:       p.lastErr,
		LastUpdated: p.lastUpdated,
	}

	if p.hasReading {
		reading := p.reading
		statuses := analysis.EvaluateReading(reading)
		snap.Reading = &reading
		snap.Statuses = &statuses
		snap.Confidence = analysis.Score(statuses)
		snap.Insight = analysis.Compose(reading, statuses)
	}

	return snap
}

// State returns the current lifecycle state of the latest-reading loop.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}
