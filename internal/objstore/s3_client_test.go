package objstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Rows        string
	Auth        string
}

func fakeS3(t *testing.T, status int) (*httptest.Server, func() []recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Rows:        r.Header.Get("X-Amz-Meta-Rows"),
			Auth:        r.Header.Get("Authorization"),
		})
		mu.Unlock()
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
			return
		}
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), reqs...)
	}
}

func newTestS3Client(t *testing.T, endpoint string) *S3Client {
	t.Helper()
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	c, err := NewS3Client(context.Background(), S3Config{
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Endpoint:  endpoint,
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	return c
}

func TestS3ClientPutObject(t *testing.T) {
	srv, requests := fakeS3(t, http.StatusOK)
	c := newTestS3Client(t, srv.URL)

	err := c.PutObject(context.Background(), Object{
		Bucket:      "lake",
		Key:         "bronze/equities/tiingo/prices_eod/date=2025-09-22/part-0000.parquet",
		Body:        []byte("PAR1....PAR1"),
		ContentType: "application/vnd.apache.parquet",
		Metadata:    map[string]string{"rows": "1"},
	})
	require.NoError(t, err)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPut, reqs[0].Method)
	assert.Equal(t, "/lake/bronze/equities/tiingo/prices_eod/date=2025-09-22/part-0000.parquet", reqs[0].Path)
	assert.Equal(t, "application/vnd.apache.parquet", reqs[0].ContentType)
	assert.Equal(t, "1", reqs[0].Rows)
	assert.Contains(t, reqs[0].Auth, "Credential=test-access/")
}

func TestS3ClientPutObjectRejected(t *testing.T) {
	srv, _ := fakeS3(t, http.StatusForbidden)
	c := newTestS3Client(t, srv.URL)

	err := c.PutObject(context.Background(), Object{Bucket: "lake", Key: "bronze/x.parquet", Body: []byte("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload s3://lake/bronze/x.parquet")
}
