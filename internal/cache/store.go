package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound = errors.New("cache entry not found")
	ErrCacheExpired  = errors.New("cache entry expired")
	ErrInvalidURL    = errors.New("cache URL cannot be empty")
	ErrCacheDisabled = errors.New("cache is disabled")
)

// FileStore keeps response bodies as JSON files in one directory.
// Safe for concurrent use.
type FileStore struct {
	directory  string
	enabled    bool
	ttlSeconds int

	mu sync.RWMutex
}

// NewFileStore creates a store rooted at directory, creating it if needed.
// A disabled store never touches the filesystem and answers every call with
// ErrCacheDisabled.
func NewFileStore(directory string, enabled bool, ttlSeconds int) (*FileStore, error) {
	if !enabled {
		return &FileStore{enabled: false}, nil
	}

	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}

	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory:  directory,
		enabled:    true,
		ttlSeconds: ttlSeconds,
	}, nil
}

// Get returns the cached body for url.
// Returns ErrCacheNotFound when absent and ErrCacheExpired when stale; a stale
// file is removed.
func (s *FileStore) Get(url string) (*Entry, error) {
	if !s.enabled {
		return nil, ErrCacheDisabled
	}
	if url == "" {
		return nil, ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.pathFor(url)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if unmarshalErr := json.Unmarshal(data, &entry); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", unmarshalErr)
	}

	if entry.IsExpired() {
		_ = os.Remove(path)
		return nil, ErrCacheExpired
	}

	return &entry, nil
}

// Set stores body for url, replacing any previous entry.
func (s *FileStore) Set(url string, body json.RawMessage) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if url == "" {
		return ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryData, err := json.MarshalIndent(NewEntry(url, body, s.ttlSeconds), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	path := s.pathFor(url)
	tempPath := path + ".tmp"
	if writeErr := os.WriteFile(tempPath, entryData, 0600); writeErr != nil {
		return fmt.Errorf("failed to write cache file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, path); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", renameErr)
	}

	return nil
}

// Delete removes the entry for url. Missing entries are not an error.
func (s *FileStore) Delete(url string) error {
	if !s.enabled {
		return ErrCacheDisabled
	}
	if url == "" {
		return ErrInvalidURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(url)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every entry and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	return s.removeWhere(func(*Entry) bool { return true })
}

// CleanupExpired removes expired entries and returns how many were removed.
// Unreadable files are left alone.
func (s *FileStore) CleanupExpired() (int, error) {
	return s.removeWhere(func(e *Entry) bool { return e != nil && e.IsExpired() })
}

// Count returns the number of entries, including expired ones.
func (s *FileStore) Count() (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.entryFiles()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// IsEnabled reports whether caching is active.
func (s *FileStore) IsEnabled() bool {
	return s.enabled
}

// Directory returns the cache directory.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the TTL in seconds applied to new entries.
func (s *FileStore) TTL() int {
	return s.ttlSeconds
}

// removeWhere deletes entry files for which match returns true. match receives
// nil for files that cannot be decoded.
func (s *FileStore) removeWhere(match func(*Entry) bool) (int, error) {
	if !s.enabled {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.entryFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		path := filepath.Join(s.directory, name)
		var entry *Entry
		if data, readErr := os.ReadFile(path); readErr == nil {
			var e Entry
			if json.Unmarshal(data, &e) == nil {
				entry = &e
			}
		}
		if !match(entry) {
			continue
		}
		if removeErr := os.Remove(path); removeErr != nil {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", name, removeErr)
		}
		removed++
	}
	return removed, nil
}

func (s *FileStore) entryFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}
	var names []string
	for _, de := range dirEntries {
		if !de.IsDir() && filepath.Ext(de.Name()) == cacheFileExtension {
			names = append(names, de.Name())
		}
	}
	return names, nil
}

func (s *FileStore) pathFor(url string) string {
	return filepath.Join(s.directory, KeyForURL(url)+cacheFileExtension)
}
