package collector

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"aquawatch/models"
)

// ReadingSubmitter is the backend surface the collector depends on.
// This allows for mocking in tests.
type ReadingSubmitter interface {
	CreateReading(ctx context.Context, sub models.SensorSubmission) (models.Reading, error)
}

// Collector reads sensor lines from a stream, parses them, and submits the
// resulting readings to the backend with bounded retries. It gives up after
// a cap of consecutive submission failures so a dead backend does not leave
// it spinning forever.
type Collector struct {
	submitter            ReadingSubmitter
	maxRetries           int
	retryDelay           time.Duration
	maxConsecutiveErrors int
}

// NewCollector creates a collector.
// maxRetries: submission attempts per reading
// retryDelay: pause between attempts
func NewCollector(submitter ReadingSubmitter, maxRetries int, retryDelay time.Duration) *Collector {
	return &Collector{
		submitter:            submitter,
		maxRetries:           maxRetries,
		retryDelay:           retryDelay,
		maxConsecutiveErrors: 10,
	}
}

// SetMaxConsecutiveErrors sets how many submissions may fail in a row before
// Run gives up.
func (c *Collector) SetMaxConsecutiveErrors(n int) {
	c.maxConsecutiveErrors = n
}

// Run consumes lines from r until the stream ends, the context is canceled,
// or too many consecutive submissions fail. Unparseable lines are skipped.
func (c *Collector) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	consecutiveErrors := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sub, ok := ParseSensorLine(line)
		if !ok {
			continue
		}

		if err := c.submit(ctx, sub); err != nil {
			consecutiveErrors++
			log.Printf("Collector: submission failed (%d/%d): %v",
				consecutiveErrors, c.maxConsecutiveErrors, err)
			if consecutiveErrors >= c.maxConsecutiveErrors {
				return fmt.Errorf("too many consecutive submission failures (%d)", consecutiveErrors)
			}
			continue
		}
		consecutiveErrors = 0
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read sensor stream: %w", err)
	}
	return nil
}

// submit sends one reading, retrying up to maxRetries with a fixed delay.
func (c *Collector) submit(ctx context.Context, sub models.SensorSubmission) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		created, err := c.submitter.CreateReading(ctx, sub)
		if err == nil {
			log.Printf("Collector: submitted reading %d - pH: %.1f, TDS: %.0f, Turbidity: %.1f",
				created.ID, sub.PH, sub.TDS, sub.Turbidity)
			return nil
		}
		lastErr = err

		if attempt < c.maxRetries {
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("submit reading after %d attempts: %w", c.maxRetries, lastErr)
}
