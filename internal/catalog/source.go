package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vytor/packdex/internal/logger"
)

// Source fetches a raw catalog file (card pool or question set) by file name.
// This interface enables testability by allowing mock implementations.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileSource reads catalog files from a local directory.
type FileSource struct {
	Dir string
}

func (s FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches catalog files from a base URL, for deployments that
// keep the static JSON on a CDN next to the web assets.
type HTTPSource struct {
	Base       string
	httpClient *http.Client
	log        *logger.Logger
}

func NewHTTPSource(base string) *HTTPSource {
	return &HTTPSource{
		Base:       strings.TrimRight(base, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("catalog"),
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog").WithField("file", name)
	url := s.Base + "/" + name

	log.Debug("fetching catalog file: %s", url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch catalog file: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	log.Debug("catalog response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("catalog request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("catalog status %d for %s", resp.StatusCode, name)
	}

	return io.ReadAll(resp.Body)
}
