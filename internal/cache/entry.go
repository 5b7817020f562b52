package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Entry is a single cached response body with TTL metadata.
type Entry struct {
	// Key is the SHA256 hex digest of the normalized request URL.
	Key string `json:"key"`

	// URL is the request URL the body was fetched from.
	URL string `json:"url"`

	// Data is the raw response body.
	Data json.RawMessage `json:"data"`

	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// NewEntry creates an entry for url expiring ttlSeconds from now.
func NewEntry(url string, data json.RawMessage, ttlSeconds int) *Entry {
	now := time.Now()
	return &Entry{
		Key:        KeyForURL(url),
		URL:        url,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// KeyForURL returns the cache key for a request URL. Surrounding whitespace
// and a trailing slash do not change the key.
func KeyForURL(url string) string {
	normalized := strings.TrimSuffix(strings.TrimSpace(url), "/")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the entry is past its expiry time.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Age returns the time since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining lifetime, or 0 once expired.
func (e *Entry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarshalJSON writes timestamps as RFC3339 for readable cache files.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(&struct {
		*alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias:     (*alias)(e),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		ExpiresAt: e.ExpiresAt.Format(time.RFC3339),
	})
}

// UnmarshalJSON parses the RFC3339 timestamps written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil Entry")
	}
	type alias Entry
	aux := &struct {
		*alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, aux.CreatedAt); err != nil {
		return err
	}
	if e.ExpiresAt, err = time.Parse(time.RFC3339, aux.ExpiresAt); err != nil {
		return err
	}
	return nil
}
