// Package routes computes restaurant→customer route geometry through the
// Google Maps Directions API, memoized in the route cache.
package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"quickbite/internal/modules/routecache"
	"quickbite/internal/types"
)

var ErrNoRoute = errors.New("no route found")

// DirectionsClient is the slice of the Google Maps client this service needs.
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

type Service struct {
	maps  DirectionsClient
	cache *routecache.Cache
	now   func() time.Time
}

func NewService(client DirectionsClient, cache *routecache.Cache) *Service {
	return &Service{maps: client, cache: cache, now: time.Now}
}

// NewMapsClient builds the production Directions client.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}
	return client, nil
}

// Route returns polyline, distance and duration for the pair, serving from
// the cache when a fresh entry exists and refreshing it otherwise.
func (s *Service) Route(ctx context.Context, restaurant, customer types.Point) (*routecache.Entry, error) {
	key := routecache.Fingerprint(restaurant.Lat, restaurant.Lng, customer.Lat, customer.Lng)
	if s.cache != nil {
		entry, err := s.cache.Lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if entry != nil && !entry.Expired(s.now()) {
			return entry, nil
		}
	}

	routesResp, _, err := s.maps.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", restaurant.Lat, restaurant.Lng),
		Destination: fmt.Sprintf("%f,%f", customer.Lat, customer.Lng),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("maps directions: %w", err)
	}
	if len(routesResp) == 0 || len(routesResp[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	leg := routesResp[0].Legs[0]
	distanceKm := float64(leg.Distance.Meters) / 1000
	durationSec := leg.Duration.Seconds()
	entry := routecache.Entry{
		Polyline:    routesResp[0].OverviewPolyline.Points,
		DistanceKm:  &distanceKm,
		DurationSec: &durationSec,
	}
	if s.cache != nil {
		stored, err := s.cache.Upsert(ctx, key, entry)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			// The stamped entry, so the caller sees the real expiry.
			return stored, nil
		}
	}
	return &entry, nil
}
