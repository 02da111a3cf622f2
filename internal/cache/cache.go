package cache

import "context"

// Cache is a time-expiring key/value table for catalog data.
// Values are stored JSON encoded so readers never share memory with writers.
type Cache interface {
	// Get decodes the value stored under key into dest. The boolean is false on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Set stores value under key for the cache's TTL.
	Set(ctx context.Context, key string, value interface{}) error
	// Clear drops every key owned by this cache.
	Clear(ctx context.Context) error
}
