package dispatch

import (
	"context"
	"errors"
	"time"

	"quickbite/internal/modules/presence"
	"quickbite/internal/types"
)

// DefaultMaxAge is the staleness window applied when a dispatch request does
// not specify one.
const DefaultMaxAge = 2 * time.Minute

var ErrBadPickup = errors.New("pickup coordinates must be finite")

// PresenceSource supplies the full presence mapping for the scan.
type PresenceSource interface {
	All(ctx context.Context) (map[types.ID]presence.Record, error)
}

// NearbyIndex answers radius queries; backed by the redis GEO mirror.
type NearbyIndex interface {
	Near(ctx context.Context, origin types.Point, radiusKm float64) ([]types.ID, error)
}

// Candidate is the chosen partner for a pickup.
type Candidate struct {
	PartnerID  types.ID `json:"partner_id"`
	DistanceKm float64  `json:"distance_km"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
}

type Service struct {
	presence PresenceSource
	nearby   NearbyIndex
	now      func() time.Time
}

// NewService builds the matcher. nearby is optional.
func NewService(src PresenceSource, nearby NearbyIndex) *Service {
	return &Service{presence: src, nearby: nearby, now: time.Now}
}

// FindNearest scans all presence records and returns the closest partner that
// is online, has coordinates, and reported within maxAge. A negative maxAge
// means "unset" and falls back to DefaultMaxAge; zero is honoured literally,
// admitting only records stamped at or after now. It returns nil when no
// partner is eligible. When several partners are equidistant, which one wins
// is unspecified: the scan order of the underlying mapping is not stable, so
// callers must not rely on any particular tie-break.
func (s *Service) FindNearest(ctx context.Context, pickup types.Point, maxAge time.Duration) (*Candidate, error) {
	if !isFinite(pickup.Lat) || !isFinite(pickup.Lng) {
		return nil, ErrBadPickup
	}
	if maxAge < 0 {
		maxAge = DefaultMaxAge
	}

	records, err := s.presence.All(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-maxAge).UnixMilli()
	var best *Candidate
	for id, rec := range records {
		if rec.Status != presence.StatusOnline {
			continue
		}
		if rec.Lat == nil || rec.Lng == nil || !isFinite(*rec.Lat) || !isFinite(*rec.Lng) {
			continue
		}
		if rec.LastUpdated < cutoff {
			continue
		}
		d := haversineKm(pickup.Lat, pickup.Lng, *rec.Lat, *rec.Lng)
		if best == nil || d < best.DistanceKm {
			best = &Candidate{PartnerID: id, DistanceKm: d, Lat: *rec.Lat, Lng: *rec.Lng}
		}
	}
	return best, nil
}

// Nearby lists partner ids within radiusKm of origin via the GEO index,
// closest first. It returns nil when no index is configured.
func (s *Service) Nearby(ctx context.Context, origin types.Point, radiusKm float64) ([]types.ID, error) {
	if s.nearby == nil {
		return nil, nil
	}
	return s.nearby.Near(ctx, origin, radiusKm)
}
