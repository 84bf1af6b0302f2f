package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/docsjson"
	docshttp "github.com/fwojciec/docsjson/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("returns raw body from server", func(t *testing.T) {
		t.Parallel()

		paths := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths <- r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"name":"Foo"}]`))
		}))
		defer server.Close()

		dl := docshttp.NewDownloader()

		body, err := dl.Download(context.Background(), server.URL+"/packages/foo/1.0.0/docs.json")

		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"name":"Foo"}]`), body)
		assert.Equal(t, "/packages/foo/1.0.0/docs.json", <-paths)
	})

	t.Run("sends a bare GET", func(t *testing.T) {
		t.Parallel()

		requests := make(chan *http.Request, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests <- r
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		_, err := docshttp.NewDownloader().Download(context.Background(), server.URL)

		require.NoError(t, err)
		r := <-requests
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.URL.RawQuery)
		assert.Empty(t, r.Header.Get("Authorization"))
	})

	t.Run("404 is not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		body, err := docshttp.NewDownloader().Download(context.Background(), server.URL+"/docs.json")

		require.Error(t, err)
		assert.Nil(t, body)
		assert.Equal(t, docsjson.ENOTFOUND, docsjson.ErrorCode(err))
	})

	t.Run("server error is upstream failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		body, err := docshttp.NewDownloader().Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Nil(t, body)
		assert.Equal(t, docsjson.EUPSTREAM, docsjson.ErrorCode(err))
		assert.Contains(t, docsjson.ErrorMessage(err), "500")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		dl := docshttp.NewDownloader(docshttp.WithTimeout(10 * time.Millisecond))

		_, err := dl.Download(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := docshttp.NewDownloader().Download(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("malformed URL is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := docshttp.NewDownloader().Download(context.Background(), "://packages/foo/1.0.0/docs.json")

		assert.Equal(t, docsjson.EINVALID, docsjson.ErrorCode(err))
	})
}

func TestDownloader_Retry(t *testing.T) {
	t.Parallel()

	t.Run("retries server errors until success", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		dl := docshttp.NewDownloader(docshttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}))

		body, err := dl.Download(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), body)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("gives up after last delay", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		dl := docshttp.NewDownloader(docshttp.WithRetryDelays([]time.Duration{time.Millisecond}))

		_, err := dl.Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, docsjson.EUPSTREAM, docsjson.ErrorCode(err))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		dl := docshttp.NewDownloader(docshttp.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond}))

		_, err := dl.Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, docsjson.ENOTFOUND, docsjson.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("makes a single attempt by default", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := docshttp.NewDownloader().Download(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docshttp.RetryDelays(0))
	assert.Equal(t,
		[]time.Duration{time.Second, 2 * time.Second, 4 * time.Second},
		docshttp.RetryDelays(3),
	)
}

func TestRetryDelays_CapsLongSchedules(t *testing.T) {
	t.Parallel()

	delays := docshttp.RetryDelays(64)

	require.Len(t, delays, 64)
	for i, d := range delays {
		assert.Positive(t, d, "delay %d", i)
		assert.LessOrEqual(t, d, docshttp.MaxRetryDelay, "delay %d", i)
	}
	assert.Equal(t, 16*time.Second, delays[4])
	assert.Equal(t, docshttp.MaxRetryDelay, delays[5])
	assert.Equal(t, docshttp.MaxRetryDelay, delays[63])
}
