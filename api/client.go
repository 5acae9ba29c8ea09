package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"aquawatch/models"
)

// Client talks to the AquaWatch backend read/write API. It is the only
// place that knows URLs, status codes, and payload shapes; everything above
// it works with models and the error taxonomy in errors.go.
type Client struct {
	http *resty.Client
}

// NewClient creates a backend client with the given base URL and per-request
// timeout. A timeout is always set so a hung backend cannot hang the poller
// beyond one tick.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

type errorDetail struct {
	Detail string `json:"detail"`
}

// remoteError converts a non-2xx response into a RemoteError, picking up the
// backend's {detail} body when present.
func remoteError(resp *resty.Response) error {
	var body errorDetail
	_ = json.Unmarshal(resp.Body(), &body)
	return &RemoteError{StatusCode: resp.StatusCode(), Detail: body.Detail}
}

// readingPayload uses pointer fields so a payload with a missing metric is
// distinguishable from a legitimate zero value.
type readingPayload struct {
	ID        int64     `json:"id"`
	PH        *float64  `json:"ph"`
	TDS       *float64  `json:"tds"`
	Turbidity *float64  `json:"turbidity"`
	Timestamp time.Time `json:"timestamp"`
}

// LatestReading fetches the most recent sensor reading. A 404 maps to
// ErrNoReadings, a payload missing any metric to ErrIncompleteReading.
func (c *Client) LatestReading(ctx context.Context) (models.Reading, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/latest")
	if err != nil {
		return models.Reading{}, fmt.Errorf("request latest reading: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.Reading{}, ErrNoReadings
	}
	if !resp.IsSuccess() {
		return models.Reading{}, remoteError(resp)
	}

	var payload readingPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return models.Reading{}, fmt.Errorf("decode latest reading: %w", err)
	}
	if payload.PH == nil || payload.TDS == nil || payload.Turbidity == nil {
		return models.Reading{}, ErrIncompleteReading
	}

	return models.Reading{
		ID:        payload.ID,
		PH:        *payload.PH,
		TDS:       *payload.TDS,
		Turbidity: *payload.Turbidity,
		Timestamp: payload.Timestamp,
	}, nil
}

// History fetches the historical series for one period. A 400 maps to
// ErrInvalidPeriod.
func (c *Client) History(ctx context.Context, period models.Period) ([]models.HistoryPoint, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("period", string(period)).
		Get("/history")
	if err != nil {
		return nil, fmt.Errorf("request history for period %s: %w", period, err)
	}
	if resp.StatusCode() == http.StatusBadRequest {
		return nil, ErrInvalidPeriod
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp)
	}

	var points []models.HistoryPoint
	if err := json.Unmarshal(resp.Body(), &points); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return points, nil
}

// Pings fetches all community reports.
func (c *Client) Pings(ctx context.Context) ([]models.Ping, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/pings")
	if err != nil {
		return nil, fmt.Errorf("request pings: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, remoteError(resp)
	}

	var pings []models.Ping
	if err := json.Unmarshal(resp.Body(), &pings); err != nil {
		return nil, fmt.Errorf("decode pings: %w", err)
	}
	return pings, nil
}

// CreatePing submits a new community report and returns it as created.
func (c *Client) CreatePing(ctx context.Context, sub models.PingSubmission) (models.Ping, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post("/ping")
	if err != nil {
		return models.Ping{}, fmt.Errorf("submit ping: %w", err)
	}
	if !resp.IsSuccess() {
		return models.Ping{}, remoteError(resp)
	}

	var created models.Ping
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Ping{}, fmt.Errorf("decode created ping: %w", err)
	}
	return created, nil
}

// CreateReading submits a sensor reading on behalf of the collector.
func (c *Client) CreateReading(ctx context.Context, sub models.SensorSubmission) (models.Reading, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		Post("/sensor")
	if err != nil {
		return models.Reading{}, fmt.Errorf("submit reading: %w", err)
	}
	if !resp.IsSuccess() {
		return models.Reading{}, remoteError(resp)
	}

	var created models.Reading
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Reading{}, fmt.Errorf("decode created reading: %w", err)
	}
	return created, nil
}
