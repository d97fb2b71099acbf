// Package routecache memoizes route geometry per restaurant→customer pair so
// repeated assignments between nearby points skip the directions API.
package routecache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"quickbite/internal/realtime"
)

const rootPath = "route_cache"

// TTL is the advisory lifetime of an entry. Expiry is lazy: nothing sweeps
// expired entries, readers check ExpiresAt themselves.
const TTL = 7 * 24 * time.Hour

// Entry is a cached route computation.
type Entry struct {
	Polyline    string   `json:"polyline"`
	DistanceKm  *float64 `json:"distance,omitempty"`
	DurationSec *float64 `json:"duration,omitempty"`
	CachedAt    int64    `json:"cached_at"`
	ExpiresAt   int64    `json:"expires_at"`
}

// Expired reports whether the entry is past its advisory lifetime at t.
func (e *Entry) Expired(t time.Time) bool {
	return t.UnixMilli() >= e.ExpiresAt
}

// Fingerprint derives the cache key from the four route endpoints. Each
// coordinate is rounded to 4 decimal places (~11 m), so requests within
// rounding tolerance share an entry. Tokens are made key-safe by replacing
// the decimal point with "_" and a leading minus with "m".
func Fingerprint(restaurantLat, restaurantLng, customerLat, customerLng float64) string {
	return coordToken(restaurantLat) + "_" + coordToken(restaurantLng) + "_" +
		coordToken(customerLat) + "_" + coordToken(customerLng)
}

func coordToken(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.Replace(s, "-", "m", 1)
	return strings.ReplaceAll(s, ".", "_")
}

type Cache struct {
	store realtime.Store
	now   func() time.Time
}

func NewCache(store realtime.Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Upsert writes the entry under key, stamping CachedAt/ExpiresAt, and returns
// the entry as stored. It always overwrites: a collision refreshes the entry.
// Returns (nil, nil) when the store is unavailable.
func (c *Cache) Upsert(ctx context.Context, key string, e Entry) (*Entry, error) {
	if key == "" {
		return nil, nil
	}
	if c.store == nil || !c.store.Ready() {
		return nil, nil
	}
	now := c.now()
	e.CachedAt = now.UnixMilli()
	e.ExpiresAt = now.Add(TTL).UnixMilli()
	if err := c.store.Set(ctx, rootPath+"/"+key, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Lookup returns the entry under key, or (nil, nil) when absent or the store
// is unavailable. The entry is returned as stored even when expired; callers
// decide whether to honour ExpiresAt.
func (c *Cache) Lookup(ctx context.Context, key string) (*Entry, error) {
	if key == "" || c.store == nil || !c.store.Ready() {
		return nil, nil
	}
	var e Entry
	if err := c.store.Get(ctx, rootPath+"/"+key, &e); err != nil {
		return nil, err
	}
	if e.CachedAt == 0 && e.Polyline == "" {
		return nil, nil
	}
	return &e, nil
}
