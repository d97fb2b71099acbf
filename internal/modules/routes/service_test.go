package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"googlemaps.github.io/maps"

	"quickbite/internal/modules/routecache"
	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

type stubDirections struct {
	calls  int
	routes []maps.Route
	err    error
}

func (s *stubDirections) Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	s.calls++
	return s.routes, nil, s.err
}

func oneRoute(polyline string, meters int, duration time.Duration) []maps.Route {
	return []maps.Route{{
		OverviewPolyline: maps.Polyline{Points: polyline},
		Legs: []*maps.Leg{{
			Distance: maps.Distance{Meters: meters},
			Duration: duration,
		}},
	}}
}

func TestRoute_MissComputesAndCaches(t *testing.T) {
	stub := &stubDirections{routes: oneRoute("abc", 5200, 15*time.Minute)}
	cache := routecache.NewCache(realtime.NewMemoryStore())
	svc := NewService(stub, cache)
	ctx := context.Background()

	restaurant := types.Point{Lat: 28.6, Lng: 77.2}
	customer := types.Point{Lat: 28.7, Lng: 77.3}

	entry, err := svc.Route(ctx, restaurant, customer)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if entry.Polyline != "abc" {
		t.Errorf("polyline = %q", entry.Polyline)
	}
	if entry.DistanceKm == nil || *entry.DistanceKm != 5.2 {
		t.Errorf("distance = %v", entry.DistanceKm)
	}
	if entry.DurationSec == nil || *entry.DurationSec != 900 {
		t.Errorf("duration = %v", entry.DurationSec)
	}
	if stub.calls != 1 {
		t.Errorf("directions calls = %d", stub.calls)
	}
	// The miss must hand back the stamped entry, not a zero-expiry copy.
	if entry.CachedAt == 0 || entry.ExpiresAt-entry.CachedAt != 604_800_000 {
		t.Errorf("returned entry not stamped: cached_at=%d expires_at=%d", entry.CachedAt, entry.ExpiresAt)
	}
	if entry.Expired(time.Now()) {
		t.Errorf("freshly computed entry reports expired")
	}

	key := routecache.Fingerprint(28.6, 77.2, 28.7, 77.3)
	cached, err := cache.Lookup(ctx, key)
	if err != nil || cached == nil {
		t.Fatalf("cache lookup: entry=%v err=%v", cached, err)
	}
	if cached.Polyline != "abc" {
		t.Errorf("cached polyline = %q", cached.Polyline)
	}
}

func TestRoute_FreshCacheHitSkipsAPI(t *testing.T) {
	stub := &stubDirections{routes: oneRoute("abc", 5200, 15*time.Minute)}
	cache := routecache.NewCache(realtime.NewMemoryStore())
	svc := NewService(stub, cache)
	ctx := context.Background()

	restaurant := types.Point{Lat: 28.6, Lng: 77.2}
	customer := types.Point{Lat: 28.7, Lng: 77.3}

	if _, err := svc.Route(ctx, restaurant, customer); err != nil {
		t.Fatalf("first route: %v", err)
	}
	if _, err := svc.Route(ctx, restaurant, customer); err != nil {
		t.Fatalf("second route: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("directions calls = %d, want the second request served from cache", stub.calls)
	}
}

func TestRoute_ExpiredEntryRecomputed(t *testing.T) {
	stub := &stubDirections{routes: oneRoute("fresh", 5200, 15*time.Minute)}
	cache := routecache.NewCache(realtime.NewMemoryStore())
	svc := NewService(stub, cache)
	ctx := context.Background()

	restaurant := types.Point{Lat: 28.6, Lng: 77.2}
	customer := types.Point{Lat: 28.7, Lng: 77.3}

	if _, err := svc.Route(ctx, restaurant, customer); err != nil {
		t.Fatalf("first route: %v", err)
	}
	// Jump past the entry's lifetime.
	svc.now = func() time.Time { return time.Now().Add(routecache.TTL + time.Hour) }
	if _, err := svc.Route(ctx, restaurant, customer); err != nil {
		t.Fatalf("second route: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("directions calls = %d, want expired entry recomputed", stub.calls)
	}
}

func TestRoute_NoRoute(t *testing.T) {
	svc := NewService(&stubDirections{}, nil)
	_, err := svc.Route(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, types.Point{Lat: 28.7, Lng: 77.3})
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("err = %v, want ErrNoRoute", err)
	}
}

func TestRoute_APIError(t *testing.T) {
	stub := &stubDirections{err: errors.New("quota exceeded")}
	svc := NewService(stub, nil)
	if _, err := svc.Route(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, types.Point{Lat: 28.7, Lng: 77.3}); err == nil {
		t.Errorf("api error swallowed")
	}
}
