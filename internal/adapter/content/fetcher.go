// Package content fetches raw JSON documents from the static content store:
// the raw-content host of a GitHub repository in production, a local data
// directory in development.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound marks a document that does not exist in the content store,
// as opposed to a transport or decode failure. Accessors collapse both to
// the same nil result; the distinction only feeds logs and metrics.
var ErrNotFound = errors.New("content: document not found")

// Fetcher retrieves one document by its path relative to the content root.
type Fetcher interface {
	Fetch(ctx context.Context, relPath string) ([]byte, error)
}

// HTTPFetcher fetches documents from a remote content host.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPFetcher creates a fetcher rooted at baseURL.
func NewHTTPFetcher(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, relPath string) ([]byte, error) {
	u := f.baseURL + "/" + strings.TrimLeft(relPath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", relPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", relPath, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}
	return data, nil
}

// FileFetcher reads documents from a local data directory. Used in
// development, where the content store is a checkout on disk.
type FileFetcher struct {
	root string
}

// NewFileFetcher creates a fetcher rooted at the given directory.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{root: root}
}

func (f *FileFetcher) Fetch(_ context.Context, relPath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(relPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", relPath, err)
	}
	return data, nil
}
