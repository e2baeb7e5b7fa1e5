package tiingo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aaplBody = `[{"date":"2025-09-22T00:00:00.000Z","close":256.08,"high":256.64,"low":248.12,"open":248.3,"volume":105517416,
"adjClose":256.08,"adjHigh":256.64,"adjLow":248.12,"adjOpen":248.3,"adjVolume":105517416,"divCash":0.0,"splitFactor":1.0}]`

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewClient(t *testing.T) {
	_, err := NewClient("")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := NewClient("secret")
	require.NoError(t, err)
	assert.Equal(t, "Tiingo", c.GetName())
	assert.Equal(t, RequestTimeout, c.http.GetClient().Timeout)
	assert.Equal(t, DefaultBaseURL, c.http.BaseURL)
	require.NoError(t, c.Close())
}

func TestFetchEOD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tiingo/daily/AAPL/prices", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2025-09-22", q.Get("startDate"))
		assert.Equal(t, "2025-09-23", q.Get("endDate"))
		assert.Equal(t, "secret", q.Get("token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(aaplBody))
	}))
	defer srv.Close()

	c, err := NewClient("secret", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	rows, err := c.FetchEOD(context.Background(), "AAPL", day("2025-09-22"), day("2025-09-23"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, "2025-09-22T00:00:00.000Z", rows[0].Date)
	assert.Equal(t, 256.08, rows[0].Close)
	assert.Equal(t, int64(105517416), rows[0].Volume)
	assert.Equal(t, 1.0, rows[0].SplitFactor)
	assert.Empty(t, rows[0].Source, "tags are attached by the ingest run")
}

func TestFetchEODEmpty(t *testing.T) {
	for name, body := range map[string]string{"array": "[]", "blank": "", "null": "null"} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := NewClient("secret", WithBaseURL(srv.URL))
			require.NoError(t, err)
			rows, err := c.FetchEOD(context.Background(), "MSFT", day("2025-09-22"), day("2025-09-22"))
			require.NoError(t, err)
			assert.Empty(t, rows)
		})
	}
}

func TestFetchEODHTTPErrorNoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Error: Ticker 'ZZZZ' not found"}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = c.FetchEOD(context.Background(), "ZZZZ", day("2025-09-22"), day("2025-09-22"))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ZZZZ", apiErr.Ticker)
	assert.Contains(t, err.Error(), "not found")
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchEODBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	c, err := NewClient("secret", WithBaseURL(srv.URL))
	require.NoError(t, err)
	_, err = c.FetchEOD(context.Background(), "AAPL", day("2025-09-22"), day("2025-09-22"))
	require.Error(t, err)
}

func TestFetchEODTimeoutRedactsToken(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient("very-secret-token", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)
	_, err = c.FetchEOD(context.Background(), "AAPL", day("2025-09-22"), day("2025-09-22"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "very-secret-token")
}
