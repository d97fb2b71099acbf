package presence

import (
	"context"
	"log"
	"math"
	"time"

	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

const rootPath = "delivery_boys"

type Service struct {
	store   realtime.Store
	mirror  *GeoMirror
	history *History
	now     func() time.Time
}

// NewService wires the presence adapter. mirror and history are optional;
// when nil the corresponding side writes are skipped.
func NewService(store realtime.Store, mirror *GeoMirror, history *History) *Service {
	return &Service{store: store, mirror: mirror, history: history, now: time.Now}
}

// SetPresence merges one heartbeat into the partner's record. It returns
// (false, nil) without touching the store when the partner id is empty or the
// store is unavailable; store I/O failures propagate to the caller.
func (s *Service) SetPresence(ctx context.Context, partnerID types.ID, u Update) (bool, error) {
	if partnerID == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}

	status := StatusOffline
	if u.Online {
		status = StatusOnline
	}
	fields := map[string]any{
		"status":       status,
		"last_updated": s.now().UnixMilli(),
	}
	hasPos := u.Lat != nil && u.Lng != nil && isFinite(*u.Lat) && isFinite(*u.Lng)
	if hasPos {
		fields["lat"] = *u.Lat
		fields["lng"] = *u.Lng
	}

	if err := s.store.Patch(ctx, rootPath+"/"+string(partnerID), fields); err != nil {
		return false, err
	}

	// Side writes are best-effort: a failed mirror or history append must not
	// fail the heartbeat. An offline heartbeat usually carries no position,
	// but it still has to evict the partner from the GEO mirror.
	if s.mirror != nil && (hasPos || !u.Online) {
		var pos types.Point
		if hasPos {
			pos = types.Point{Lat: *u.Lat, Lng: *u.Lng}
		}
		if err := s.mirror.Upsert(ctx, partnerID, pos, u.Online); err != nil {
			log.Printf("presence: geo mirror for %s: %v", partnerID, err)
		}
	}
	if s.history != nil && hasPos {
		pos := types.Point{Lat: *u.Lat, Lng: *u.Lng}
		if err := s.history.Append(ctx, partnerID, pos, u.Online, s.now()); err != nil {
			log.Printf("presence: history append for %s: %v", partnerID, err)
		}
	}
	return true, nil
}

// All returns the full partner-id → record mapping. The scan is O(n) over all
// partners, which is fine at the fleet sizes this service targets. An
// unavailable store yields an empty mapping.
func (s *Service) All(ctx context.Context) (map[types.ID]Record, error) {
	if s.store == nil || !s.store.Ready() {
		return nil, nil
	}
	var raw map[string]Record
	if err := s.store.Get(ctx, rootPath, &raw); err != nil {
		return nil, err
	}
	out := make(map[types.ID]Record, len(raw))
	for id, rec := range raw {
		out[types.ID(id)] = rec
	}
	return out, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
