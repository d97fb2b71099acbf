// Package ordersync maintains the realtime snapshot of one in-flight order
// under active_orders/{orderId}: assigned partner, route geometry, endpoint
// coordinates and the partner's live position.
package ordersync

import "quickbite/internal/types"

// Record mirrors the stored active-order node. Every field except the
// timestamps is optional and populated incrementally as the delivery
// progresses; created_at is set once and never overwritten.
type Record struct {
	Status        string   `json:"status"`
	CreatedAt     int64    `json:"created_at"`
	LastUpdated   int64    `json:"last_updated"`
	PartnerID     *string  `json:"boy_id,omitempty"`
	Polyline      *string  `json:"polyline,omitempty"`
	RestaurantLat *float64 `json:"restaurant_lat,omitempty"`
	RestaurantLng *float64 `json:"restaurant_lng,omitempty"`
	CustomerLat   *float64 `json:"customer_lat,omitempty"`
	CustomerLng   *float64 `json:"customer_lng,omitempty"`
	DistanceKm    *float64 `json:"distance,omitempty"`
	DurationSec   *float64 `json:"duration,omitempty"`
	PartnerLat    *float64 `json:"boy_lat,omitempty"`
	PartnerLng    *float64 `json:"boy_lng,omitempty"`
}

// Assignment carries the fields an assignment event may provide. Omitted
// fields are left untouched on the stored record.
type Assignment struct {
	PartnerID     *types.ID
	Polyline      *string
	RestaurantLat *float64
	RestaurantLng *float64
	CustomerLat   *float64
	CustomerLng   *float64
	DistanceKm    *float64
	DurationSec   *float64
}

// LiveUpdate carries one partner position report for an order in flight.
type LiveUpdate struct {
	PartnerID *types.ID
	Lat       *float64
	Lng       *float64
	// Status defaults to "on_the_way" when empty. It is an advisory free-text
	// tag, not an enum this subsystem enforces.
	Status string
}
