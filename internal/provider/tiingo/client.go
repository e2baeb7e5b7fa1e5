// Package tiingo fetches end-of-day prices from the Tiingo REST API.
package tiingo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tiingo-bronze/internal/model"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.tiingo.com"

const dailyPricesPath = "/tiingo/daily/{ticker}/prices"

const dateLayout = "2006-01-02"

// APIError is a non-2xx response from Tiingo.
type APIError struct {
	Ticker     string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("tiingo %s: status %d: %s", e.Ticker, e.StatusCode, body)
}

// ErrMissingAPIKey is returned by NewClient for an empty key.
var ErrMissingAPIKey = errors.New("tiingo API key is empty")

// Client is a DataProvider backed by the Tiingo daily prices endpoint.
// It issues exactly one request per FetchEOD call and never retries.
type Client struct {
	http   *resty.Client
	apiKey string
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.http.SetBaseURL(strings.TrimRight(u, "/"))
	}
}

// WithTimeout overrides RequestTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.http.SetLogger(slogAdapter{logger: logger})
	}
}

// NewClient creates a Tiingo client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		http: resty.New().
			SetTransport(baseTransportConfig()).
			SetBaseURL(DefaultBaseURL).
			SetTimeout(RequestTimeout).
			SetHeader("Accept", "application/json").
			SetRetryCount(0),
		apiKey: apiKey,
		logger: slog.Default(),
	}
	c.http.SetLogger(slogAdapter{logger: c.logger})
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetName returns provider name
func (c *Client) GetName() string {
	return "Tiingo"
}

// FetchEOD requests daily bars for ticker between from and to (inclusive).
func (c *Client) FetchEOD(ctx context.Context, ticker string, from, to time.Time) ([]model.PriceRow, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("ticker", ticker).
		SetQueryParams(map[string]string{
			"startDate": from.Format(dateLayout),
			"endDate":   to.Format(dateLayout),
			"token":     c.apiKey,
		}).
		Get(dailyPricesPath)
	if err != nil {
		return nil, fmt.Errorf("tiingo %s: request failed: %w", ticker, redact(err, c.apiKey))
	}
	if resp.IsError() {
		return nil, &APIError{Ticker: ticker, StatusCode: resp.StatusCode(), Status: resp.Status(), Body: resp.Body()}
	}

	raw, err := decodeEOD(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("tiingo %s: %w", ticker, err)
	}
	c.logger.Debug("tiingo response", "ticker", ticker, "rows", len(raw), "elapsed", resp.Time())

	rows := make([]model.PriceRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, r.ToRow(ticker))
	}
	return rows, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

// decodeEOD accepts an array of records; an empty body or null means no data.
func decodeEOD(body []byte) ([]EODRaw, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	var raw []EODRaw
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return raw, nil
}

// redact strips the token from transport errors, which embed the request URL.
func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return redactedError{msg: strings.ReplaceAll(err.Error(), token, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e redactedError) Error() string { return e.msg }

func (e redactedError) Unwrap() error { return e.err }
