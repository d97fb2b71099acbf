package ordersync

import (
	"context"
	"log"
	"math"
	"time"

	"quickbite/internal/modules/routecache"
	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

const (
	rootPath       = "active_orders"
	statusAssigned = "assigned"
	statusOnTheWay = "on_the_way"
)

type Service struct {
	store  realtime.Store
	routes *routecache.Cache
	now    func() time.Time
}

// NewService wires the geo sync. routes is optional; when nil, assignment
// syncs skip the opportunistic cache population.
func NewService(store realtime.Store, routes *routecache.Cache) *Service {
	return &Service{store: store, routes: routes, now: time.Now}
}

// SyncAssignment merges an assignment event into the order's record. The
// merge is field-by-field: only provided, well-typed values are written, so a
// partial event never clobbers earlier data. created_at is first-write-wins.
// When the event carries a polyline plus all four endpoint coordinates the
// route cache is refreshed as a side effect. Returns (false, nil) for a
// missing order id or an unavailable store.
func (s *Service) SyncAssignment(ctx context.Context, orderID types.ID, a Assignment) (bool, error) {
	if orderID == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}

	createdAt, err := s.preservedCreatedAt(ctx, orderID)
	if err != nil {
		return false, err
	}

	fields := map[string]any{
		"status":       statusAssigned,
		"created_at":   createdAt,
		"last_updated": s.now().UnixMilli(),
	}
	if a.PartnerID != nil && *a.PartnerID != "" {
		fields["boy_id"] = string(*a.PartnerID)
	}
	if a.Polyline != nil && *a.Polyline != "" {
		fields["polyline"] = *a.Polyline
	}
	putFinite(fields, "restaurant_lat", a.RestaurantLat)
	putFinite(fields, "restaurant_lng", a.RestaurantLng)
	putFinite(fields, "customer_lat", a.CustomerLat)
	putFinite(fields, "customer_lng", a.CustomerLng)
	putFinite(fields, "distance", a.DistanceKm)
	putFinite(fields, "duration", a.DurationSec)

	if err := s.store.Patch(ctx, rootPath+"/"+string(orderID), fields); err != nil {
		return false, err
	}

	if s.routes != nil && routeComplete(a) {
		key := routecache.Fingerprint(*a.RestaurantLat, *a.RestaurantLng, *a.CustomerLat, *a.CustomerLng)
		entry := routecache.Entry{Polyline: *a.Polyline, DistanceKm: a.DistanceKm, DurationSec: a.DurationSec}
		if _, err := s.routes.Upsert(ctx, key, entry); err != nil {
			log.Printf("ordersync: route cache upsert for %s: %v", orderID, err)
		}
	}
	return true, nil
}

// SyncLiveLocation merges a partner position report into the order's record,
// with the same merge discipline as SyncAssignment.
func (s *Service) SyncLiveLocation(ctx context.Context, orderID types.ID, u LiveUpdate) (bool, error) {
	if orderID == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}

	createdAt, err := s.preservedCreatedAt(ctx, orderID)
	if err != nil {
		return false, err
	}

	status := u.Status
	if status == "" {
		status = statusOnTheWay
	}
	fields := map[string]any{
		"status":       status,
		"created_at":   createdAt,
		"last_updated": s.now().UnixMilli(),
	}
	if u.PartnerID != nil && *u.PartnerID != "" {
		fields["boy_id"] = string(*u.PartnerID)
	}
	if u.Lat != nil && u.Lng != nil && isFinite(*u.Lat) && isFinite(*u.Lng) {
		fields["boy_lat"] = *u.Lat
		fields["boy_lng"] = *u.Lng
	}

	if err := s.store.Patch(ctx, rootPath+"/"+string(orderID), fields); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the order's realtime record once the delivery completes or
// the order is cancelled. Removing a record that does not exist is a no-op.
func (s *Service) Remove(ctx context.Context, orderID types.ID) (bool, error) {
	if orderID == "" {
		return false, nil
	}
	if s.store == nil || !s.store.Ready() {
		return false, nil
	}
	if err := s.store.Delete(ctx, rootPath+"/"+string(orderID)); err != nil {
		return false, err
	}
	return true, nil
}

// Get reads the order's current record; (nil, nil) when absent.
func (s *Service) Get(ctx context.Context, orderID types.ID) (*Record, error) {
	if orderID == "" || s.store == nil || !s.store.Ready() {
		return nil, nil
	}
	var rec Record
	if err := s.store.Get(ctx, rootPath+"/"+string(orderID), &rec); err != nil {
		return nil, err
	}
	if rec.CreatedAt == 0 {
		return nil, nil
	}
	return &rec, nil
}

// preservedCreatedAt reads the existing record so created_at survives every
// subsequent write. The read-then-write is not atomic against concurrent
// writers; per-key last-write-wins on independently optional fields is the
// accepted consistency model here.
func (s *Service) preservedCreatedAt(ctx context.Context, orderID types.ID) (int64, error) {
	var existing struct {
		CreatedAt int64 `json:"created_at"`
	}
	if err := s.store.Get(ctx, rootPath+"/"+string(orderID), &existing); err != nil {
		return 0, err
	}
	if existing.CreatedAt != 0 {
		return existing.CreatedAt, nil
	}
	return s.now().UnixMilli(), nil
}

func routeComplete(a Assignment) bool {
	if a.Polyline == nil || *a.Polyline == "" {
		return false
	}
	for _, v := range []*float64{a.RestaurantLat, a.RestaurantLng, a.CustomerLat, a.CustomerLng} {
		if v == nil || !isFinite(*v) {
			return false
		}
	}
	return true
}

func putFinite(fields map[string]any, key string, v *float64) {
	if v != nil && isFinite(*v) {
		fields[key] = *v
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
