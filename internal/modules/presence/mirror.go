package presence

import (
	"context"

	"github.com/redis/go-redis/v9"

	"quickbite/internal/types"
)

const geoKey = "presence:geo"

// GeoMirror keeps partner positions in a redis GEO set so radius queries do
// not have to scan the realtime store.
type GeoMirror struct {
	redis *redis.Client
}

func NewGeoMirror(rdb *redis.Client) *GeoMirror {
	return &GeoMirror{redis: rdb}
}

// Upsert adds or moves the partner in the GEO set. Partners going offline are
// removed so Nearby never returns them.
func (m *GeoMirror) Upsert(ctx context.Context, id types.ID, pos types.Point, online bool) error {
	if !online {
		return m.redis.ZRem(ctx, geoKey, string(id)).Err()
	}
	return m.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

// Near returns partner ids within radiusKm of origin, closest first.
func (m *GeoMirror) Near(ctx context.Context, origin types.Point, radiusKm float64) ([]types.ID, error) {
	results, err := m.redis.GeoSearch(ctx, geoKey, &redis.GeoSearchQuery{
		Longitude:  origin.Lng,
		Latitude:   origin.Lat,
		Radius:     radiusKm,
		RadiusUnit: "km",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}
