// Package cache stores fetched article pages so repeated extraction runs for
// the same concepts do not refetch the encyclopedia.
package cache

import "time"

// Cache is a byte-blob cache keyed by article title.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}
