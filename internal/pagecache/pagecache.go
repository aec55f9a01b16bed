package pagecache

import (
	"context"
	"time"
)

// Cache stores fully rendered page bytes under a view key for a bounded
// time. Reads inside the window return the stored bytes even if the
// underlying data has changed; Clear drops every entry at once.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}
