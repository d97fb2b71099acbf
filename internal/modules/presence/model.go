// Package presence tracks delivery-partner online status and last known
// position, one record per partner under delivery_boys/{partnerId}.
package presence

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Record is a partner's presence as stored. Coordinates are absent until the
// first heartbeat that carries a location; stale records are never deleted,
// they are filtered at query time.
type Record struct {
	Status      string   `json:"status"`
	LastUpdated int64    `json:"last_updated"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// Update is one heartbeat from the partner app. Lat/Lng are optional; a
// heartbeat that omits them must not clear previously stored coordinates.
type Update struct {
	Online bool
	Lat    *float64
	Lng    *float64
}
