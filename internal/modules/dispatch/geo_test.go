package dispatch

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: 28.6, lng1: 77.2,
			lat2: 28.6, lng2: 77.2,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "quarter circumference along the equator",
			lat1: 0, lng1: 0,
			lat2: 0, lng2: 90,
			wantKm:    math.Pi / 2 * 6371.0,
			tolerance: 0.1,
		},
		{
			name: "Connaught Place to India Gate (~2.5km)",
			lat1: 28.6315, lng1: 77.2167,
			lat2: 28.6129, lng2: 77.2295,
			wantKm:    2.4,
			tolerance: 0.5,
		},
		{
			name: "New York to Los Angeles (~3944km)",
			lat1: 40.7128, lng1: -74.0060,
			lat2: 34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(25.0, 121.0, 26.0, 122.0)
	d2 := haversineKm(26.0, 122.0, 25.0, 121.0)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}
