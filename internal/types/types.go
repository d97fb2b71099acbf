// Package types holds small value objects shared across modules.
package types

// ID identifies a partner, order, user or zone.
type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
