package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAPIURL is the product endpoint used when none is configured.
const DefaultAPIURL = "https://api.escuelajs.co/api/v1/products"

// DefaultTimeout bounds the single startup request.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 32 << 20

// Source values reported in Result.
const (
	SourceNetwork = "network"
	SourceCache   = "cache"
	SourceNone    = "none"
)

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Result is the outcome of a load. Products is never nil: on failure it is
// empty and Err carries the reason, which is for logs only.
type Result struct {
	Products Collection
	Err      error
	Source   string
}

// Failed reports whether the load fell back to the empty collection.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Loader produces the product collection.
type Loader interface {
	Load(ctx context.Context) Result
}

// BodyFetcher retrieves the raw catalog response.
type BodyFetcher interface {
	FetchBody(ctx context.Context) ([]byte, error)
	URL() string
}

// HTTPLoader fetches the catalog with a single GET request.
type HTTPLoader struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPLoader creates a loader for url. A zero timeout means DefaultTimeout.
func NewHTTPLoader(url string, timeout time.Duration, logger zerolog.Logger) *HTTPLoader {
	if url == "" {
		url = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPLoader{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// URL returns the endpoint the loader fetches.
func (l *HTTPLoader) URL() string {
	return l.url
}

// FetchBody performs the GET request and returns the body of a 2xx response.
func (l *HTTPLoader) FetchBody(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog %s: %w", l.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog %s: %w", l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetching catalog %s: %w: %d", l.url, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", l.url, err)
	}
	return body, nil
}

// Load fetches and decodes the catalog. Any failure is logged and replaced by
// an empty collection.
func (l *HTTPLoader) Load(ctx context.Context) Result {
	start := time.Now()

	body, err := l.FetchBody(ctx)
	if err == nil {
		var products Collection
		if products, err = Decode(body, l.logger); err == nil {
			l.logger.Info().
				Str("operation", "load").
				Str("url", l.url).
				Int("count", len(products)).
				Dur("duration", time.Since(start)).
				Msg("catalog loaded")
			return Result{Products: products, Source: SourceNetwork}
		}
	}

	return emptyResult(l.logger, l.url, err)
}

func emptyResult(logger zerolog.Logger, url string, err error) Result {
	logger.Warn().
		Str("operation", "load").
		Str("url", url).
		Err(err).
		Msg("fetch failed, using empty list")
	return Result{Products: Collection{}, Err: err, Source: SourceNone}
}
