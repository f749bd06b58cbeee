package catalog

import (
	"context"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/orderkart/orderkart/internal/domain"
)

// Fetcher retrieves the raw grouped catalog from a remote source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.RawGroup, error)
}

// HTTPFetcher fetches the catalog JSON with a plain GET. No auth, no
// conditional requests; every call is a full re-fetch.
type HTTPFetcher struct {
	url     string
	timeout time.Duration
}

func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{url: url, timeout: timeout}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]domain.RawGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	var groups []domain.RawGroup
	var code int
	err := gout.GET(f.url).
		WithContext(ctx).
		Code(&code).
		BindJSON(&groups).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}
	if code < 200 || code >= 300 {
		return nil, errors.Errorf("fetch catalog: upstream status %d", code)
	}
	return groups, nil
}
