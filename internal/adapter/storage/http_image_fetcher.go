package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"exam-worksheet/internal/config"
	"exam-worksheet/internal/domain"

	"golang.org/x/sync/singleflight"
)

// maxImageBytes caps a single downloaded image
const maxImageBytes = 20 << 20

// HTTPImageFetcher downloads problem and answer images from a public storage bucket.
type HTTPImageFetcher struct {
	baseURL *url.URL
	client  *http.Client
	sfGroup singleflight.Group
}

// NewHTTPImageFetcher creates a fetcher for the configured bucket URL
func NewHTTPImageFetcher(cfg config.StorageConfig) (*HTTPImageFetcher, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("storage base URL cannot be empty")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid storage base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("storage base URL must be http(s), got %q", cfg.BaseURL)
	}
	return &HTTPImageFetcher{
		baseURL: base,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

var _ domain.ImageFetcher = (*HTTPImageFetcher)(nil)

// Fetch implements domain.ImageFetcher. Concurrent fetches of the same file share one request.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, filename string) ([]byte, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, domain.NewInvalidInputError("image filename cannot be empty")
	}

	v, err, _ := f.sfGroup.Do(filename, func() (interface{}, error) {
		return f.download(ctx, filename)
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (f *HTTPImageFetcher) objectURL(filename string) string {
	u := *f.baseURL
	segments := strings.Split(strings.TrimLeft(filename, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u.RawPath = u.EscapedPath() + "/" + strings.Join(segments, "/")
	u.Path, _ = url.PathUnescape(u.RawPath)
	return u.String()
}

func (f *HTTPImageFetcher) download(ctx context.Context, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.objectURL(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", filename, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", filename, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrImageNotFound, filename)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("failed to fetch image %s: unexpected status %d", filename, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", filename, err)
	}
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", filename, maxImageBytes)
	}
	return body, nil
}
