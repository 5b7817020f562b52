// Package cache stores raw catalog API responses on disk with TTL expiration.
//
// Each entry is a JSON file named after the SHA256 of the request URL and
// holds the response body plus creation and expiry timestamps. Writes go
// through a temporary file and a rename so readers never see a partial entry.
// The cache is off unless enabled by configuration or the --cache-ttl flag.
package cache
