package content

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHTTPFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/briefing/index.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"available_dates":[]}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second, testLogger())
	data, err := f.Fetch(context.Background(), "briefing/index.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"available_dates":[]}`, string(data))
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second, testLogger())
	_, err := f.Fetch(context.Background(), "briefing/2099-01-01.json")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 5*time.Second, testLogger())
	_, err := f.Fetch(context.Background(), "briefing/index.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, 50*time.Millisecond, testLogger())
	_, err := f.Fetch(context.Background(), "briefing/index.json")
	require.Error(t, err)
}

func TestHTTPFetcher_TrimsSlashes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/briefing/index.json", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/data/", 5*time.Second, testLogger())
	_, err := f.Fetch(context.Background(), "/briefing/index.json")
	require.NoError(t, err)
}

func TestFileFetcher_Success(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "briefing"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "briefing", "index.json"), []byte(`{}`), 0o644))

	f := NewFileFetcher(dir)
	data, err := f.Fetch(context.Background(), "briefing/index.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), data)
}

func TestFileFetcher_NotFound(t *testing.T) {
	f := NewFileFetcher(t.TempDir())
	_, err := f.Fetch(context.Background(), "briefing/missing.json")
	require.ErrorIs(t, err, ErrNotFound)
}
