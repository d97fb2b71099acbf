// Package userloc keeps each user's last known address and coordinates under
// users/{userId}. Last write wins; there are no other invariants.
package userloc

import (
	"context"
	"math"
	"time"

	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

const rootPath = "users"

// Location is one user location report. All fields are optional.
type Location struct {
	Lat              *float64
	Lng              *float64
	Accuracy         *float64
	Address          *string
	Area             *string
	City             *string
	State            *string
	FormattedAddress *string
}

type Service struct {
	store realtime.Store
	now   func() time.Time
}

func NewService(store realtime.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Set overwrites the provided fields of the user's record and refreshes
// last_updated. Returns (false, nil) on a missing id or unavailable store.
func (s *Service) Set(ctx context.Context, userID types.ID, loc Location) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}

	fields := map[string]any{
		"last_updated": s.now().UnixMilli(),
	}
	if loc.Lat != nil && loc.Lng != nil && isFinite(*loc.Lat) && isFinite(*loc.Lng) {
		fields["lat"] = *loc.Lat
		fields["lng"] = *loc.Lng
	}
	putFinite(fields, "accuracy", loc.Accuracy)
	putString(fields, "address", loc.Address)
	putString(fields, "area", loc.Area)
	putString(fields, "city", loc.City)
	putString(fields, "state", loc.State)
	putString(fields, "formatted_address", loc.FormattedAddress)

	if err := s.store.Patch(ctx, rootPath+"/"+string(userID), fields); err != nil {
		return false, err
	}
	return true, nil
}

func putString(fields map[string]any, key string, v *string) {
	if v != nil && *v != "" {
		fields[key] = *v
	}
}

func putFinite(fields map[string]any, key string, v *float64) {
	if v != nil && isFinite(*v) {
		fields[key] = *v
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
