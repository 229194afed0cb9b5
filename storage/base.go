package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the shared key/value store used by the fetcher, the catalog and
// the media resolver. Expired entries are never returned.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key builds a namespaced cache key, e.g. "plugin.video.cc_openURL[https://...]".
func Key(addonID, namespace, id string) string {
	return fmt.Sprintf("%s_%s[%s]", addonID, namespace, id)
}

// GetJSON decodes a cached JSON value into v. It reports false on a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode cached value %s: %v", key, err)
	}
	return true, nil
}

// SetJSON stores v as JSON under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %v", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
