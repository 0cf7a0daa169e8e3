// Package api is the REST client for the water-quality backend. It owns the
// wire representation of sensor records, attaches the bearer token to every
// request, and turns a 401 anywhere into a cleared session.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/reading"
	"github.com/aquaview/water-quality-dashboard/internal/session"
)

// ErrUnauthorized is returned when the backend rejects the session. By the
// time a caller sees it the session store has already been cleared.
var ErrUnauthorized = errors.New("unauthorized: session rejected by backend")

const sensorDataPath = "/api/data/sensor-data"

// Client calls the water-quality backend.
type Client struct {
	http     *resty.Client
	sessions *session.Store
	ttl      time.Duration
	logger   *zap.Logger
}

// NewClient creates a backend client. The session TTL is applied to sessions
// established by Login.
func NewClient(cfg config.APIConfig, sessionTTL time.Duration, sessions *session.Store, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:     httpClient,
		sessions: sessions,
		ttl:      sessionTTL,
		logger:   logger,
	}

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := sessions.Token(); ok {
			req.SetAuthToken(token)
		}
		return nil
	})

	// Global, not per-call: any 401 means the session is dead everywhere.
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.logger.Warn("backend returned 401, clearing session",
				zap.String("url", resp.Request.URL))
			if err := sessions.Clear(); err != nil {
				c.logger.Error("failed to clear session", zap.Error(err))
			}
		}
		return nil
	})

	return c
}

// FetchParams are the server-side filters for collection fetches.
type FetchParams struct {
	Date     string // YYYY-MM-DD
	Location string
}

// FetchReadings retrieves the sensor data collection, optionally filtered
// server-side by date and location.
func (c *Client) FetchReadings(ctx context.Context, params FetchParams) ([]reading.RawRecord, error) {
	req := c.http.R().SetContext(ctx)
	if params.Date != "" {
		req.SetQueryParam("date", params.Date)
	}
	if params.Location != "" {
		req.SetQueryParam("location", params.Location)
	}

	var env collectionEnvelope
	resp, err := req.SetResult(&env).Get(sensorDataPath)
	if err := c.checkResponse(resp, err, "fetch sensor data"); err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("fetch sensor data: unexpected response status %q", env.Status)
	}
	return toRawRecords(env.Data), nil
}

// FetchRecent retrieves the recent-readings collection used by the home
// summary view.
func (c *Client) FetchRecent(ctx context.Context) ([]reading.RawRecord, error) {
	var env collectionEnvelope
	resp, err := c.http.R().SetContext(ctx).SetResult(&env).Get("/api/data/recent-data")
	if err := c.checkResponse(resp, err, "fetch recent data"); err != nil {
		return nil, err
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("fetch recent data: unexpected response status %q", env.Status)
	}
	return toRawRecords(env.Data), nil
}

// ReadingPayload is the mutable field set sent on create and update. Derived
// fields (canonical timestamp, sort key) never appear here.
type ReadingPayload struct {
	Location    string  `json:"location"`
	PHValue     float64 `json:"ph_value"`
	Temperature float64 `json:"temperature"`
	Turbidity   float64 `json:"turbidity"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status,omitempty"`
}

// CreateReading posts a new sensor record; the backend assigns the id.
func (c *Client) CreateReading(ctx context.Context, payload ReadingPayload) error {
	var env statusEnvelope
	resp, err := c.http.R().SetContext(ctx).SetBody(payload).SetResult(&env).Post(sensorDataPath)
	if err := c.checkResponse(resp, err, "create sensor record"); err != nil {
		return err
	}
	return env.check("create sensor record")
}

// UpdateReading replaces the mutable fields of the record with the given id.
func (c *Client) UpdateReading(ctx context.Context, id int, payload ReadingPayload) error {
	var env statusEnvelope
	resp, err := c.http.R().SetContext(ctx).
		SetBody(payload).
		SetResult(&env).
		Put(fmt.Sprintf("%s/%d", sensorDataPath, id))
	if err := c.checkResponse(resp, err, "update sensor record"); err != nil {
		return err
	}
	return env.check("update sensor record")
}

// DeleteReading removes the record with the given id. Deleting an id the
// backend no longer knows is treated as success by callers, so this only
// reports transport and auth failures.
func (c *Client) DeleteReading(ctx context.Context, id int) error {
	resp, err := c.http.R().SetContext(ctx).Delete(fmt.Sprintf("%s/%d", sensorDataPath, id))
	if err != nil {
		return fmt.Errorf("delete sensor record: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return fmt.Errorf("delete sensor record: %w", ErrUnauthorized)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("delete sensor record: backend returned %s", resp.Status())
	}
	return nil
}

// checkResponse folds transport errors, 401s, and non-2xx statuses into one
// error path so no malformed response leaks past the client.
func (c *Client) checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	if resp.IsError() {
		return fmt.Errorf("%s: backend returned %s", op, resp.Status())
	}
	return nil
}

type statusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e statusEnvelope) check(op string) error {
	if e.Status != "success" {
		return fmt.Errorf("%s: unexpected response status %q", op, e.Status)
	}
	return nil
}

type collectionEnvelope struct {
	Status string      `json:"status"`
	Data   []rawRecord `json:"data"`
}
