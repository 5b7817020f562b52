package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rshade/producttable/internal/cache"
)

// ResponseCache is the subset of cache.FileStore the cached loader needs.
type ResponseCache interface {
	Get(url string) (*cache.Entry, error)
	Set(url string, body json.RawMessage) error
}

// CachedLoader serves the catalog from a response cache when a fresh entry
// exists and otherwise fetches it, storing successful bodies.
type CachedLoader struct {
	fetcher BodyFetcher
	cache   ResponseCache
	logger  zerolog.Logger
}

// NewCachedLoader wraps fetcher with c.
func NewCachedLoader(fetcher BodyFetcher, c ResponseCache, logger zerolog.Logger) *CachedLoader {
	return &CachedLoader{
		fetcher: fetcher,
		cache:   c,
		logger:  logger.With().Str("component", "catalog").Logger(),
	}
}

// Load returns cached products when possible, falling back to the network and
// then to an empty collection.
func (l *CachedLoader) Load(ctx context.Context) Result {
	url := l.fetcher.URL()

	if products, ok := l.fromCache(url); ok {
		return Result{Products: products, Source: SourceCache}
	}

	body, err := l.fetcher.FetchBody(ctx)
	if err != nil {
		return emptyResult(l.logger, url, err)
	}

	products, err := Decode(body, l.logger)
	if err != nil {
		return emptyResult(l.logger, url, err)
	}

	if setErr := l.cache.Set(url, body); setErr != nil && !errors.Is(setErr, cache.ErrCacheDisabled) {
		l.logger.Warn().
			Str("operation", "cache_store").
			Err(setErr).
			Msg("could not cache catalog response")
	}

	l.logger.Info().
		Str("operation", "load").
		Str("url", url).
		Int("count", len(products)).
		Msg("catalog loaded")
	return Result{Products: products, Source: SourceNetwork}
}

func (l *CachedLoader) fromCache(url string) (Collection, bool) {
	entry, err := l.cache.Get(url)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheDisabled) {
			l.logger.Debug().
				Str("operation", "cache_lookup").
				Err(err).
				Msg("cache miss")
		}
		return nil, false
	}

	products, err := Decode(entry.Data, l.logger)
	if err != nil {
		l.logger.Warn().
			Str("operation", "cache_lookup").
			Err(err).
			Msg("ignoring corrupt cache entry")
		return nil, false
	}

	l.logger.Debug().
		Str("operation", "cache_lookup").
		Str("age", cache.FormatDuration(entry.Age())).
		Int("count", len(products)).
		Msg("catalog served from cache")
	return products, true
}
