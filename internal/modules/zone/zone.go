// Package zone gates serviceability: a coordinate is serviceable when it
// falls inside one of the configured delivery-zone polygons.
package zone

import (
	"quickbite/internal/types"
)

// Vertex is one polygon corner. Pointers because stored zone data may carry
// malformed vertices; those are skipped rather than rejected.
type Vertex struct {
	Lat *float64 `json:"latitude"`
	Lng *float64 `json:"longitude"`
}

// Zone is a named delivery area.
type Zone struct {
	Name     string   `json:"name"`
	Vertices []Vertex `json:"vertices"`
}

// Contains reports whether p lies inside the polygon, by the even-odd rule:
// a horizontal ray from p toggles inside/outside at each crossed edge. The
// polygon is implicitly closed (last vertex connects back to the first).
// Edges with a malformed endpoint contribute no crossing; fewer than 3
// vertices can never contain a point.
func Contains(p types.Point, vertices []Vertex) bool {
	if len(vertices) < 3 {
		return false
	}
	inside := false
	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		vi, vj := vertices[i], vertices[j]
		j = i
		if vi.Lat == nil || vi.Lng == nil || vj.Lat == nil || vj.Lng == nil {
			continue
		}
		crosses := (*vi.Lat > p.Lat) != (*vj.Lat > p.Lat) &&
			p.Lng < (*vj.Lng-*vi.Lng)*(p.Lat-*vi.Lat)/(*vj.Lat-*vi.Lat)+*vi.Lng
		if crosses {
			inside = !inside
		}
	}
	return inside
}
