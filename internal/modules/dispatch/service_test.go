package dispatch

import (
	"context"
	"math"
	"testing"
	"time"

	"quickbite/internal/modules/presence"
	"quickbite/internal/types"
)

// stubPresence serves a fixed presence mapping.
type stubPresence struct {
	records map[types.ID]presence.Record
}

func (s *stubPresence) All(_ context.Context) (map[types.ID]presence.Record, error) {
	return s.records, nil
}

var testNow = time.UnixMilli(1_700_000_000_000)

func newTestMatcher(records map[types.ID]presence.Record) *Service {
	svc := NewService(&stubPresence{records: records}, nil)
	svc.now = func() time.Time { return testNow }
	return svc
}

func online(lat, lng float64, age time.Duration) presence.Record {
	return presence.Record{
		Status:      presence.StatusOnline,
		LastUpdated: testNow.Add(-age).UnixMilli(),
		Lat:         &lat,
		Lng:         &lng,
	}
}

func TestFindNearest_PicksClosest(t *testing.T) {
	svc := newTestMatcher(map[types.ID]presence.Record{
		"far":     online(28.9, 77.5, 0),
		"near":    online(28.61, 77.21, 0),
		"farther": online(29.5, 78.0, 0),
	})

	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a candidate")
	}
	if got.PartnerID != "near" {
		t.Errorf("partner = %s, want near", got.PartnerID)
	}
	if got.DistanceKm <= 0 || got.DistanceKm > 2 {
		t.Errorf("distance = %f km, want small positive", got.DistanceKm)
	}
	if got.Lat != 28.61 || got.Lng != 77.21 {
		t.Errorf("candidate position = (%f, %f)", got.Lat, got.Lng)
	}
}

func TestFindNearest_NoRecords(t *testing.T) {
	svc := newTestMatcher(nil)
	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected no candidate, got %+v", got)
	}
}

func TestFindNearest_FreshHeartbeatEligible(t *testing.T) {
	// A partner that just reported must be matchable with any staleness window.
	svc := newTestMatcher(map[types.ID]presence.Record{
		"p1": online(28.6, 77.2, 0),
	})
	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.61, Lng: 77.21}, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PartnerID != "p1" {
		t.Errorf("fresh partner not matched: %+v", got)
	}
}

func TestFindNearest_ExcludesStale(t *testing.T) {
	svc := newTestMatcher(map[types.ID]presence.Record{
		"stale": online(28.6, 77.2, 3*time.Minute),
		"fresh": online(29.5, 78.0, time.Minute),
	})

	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 2*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The stale record is far closer, but must never win.
	if got == nil || got.PartnerID != "fresh" {
		t.Errorf("candidate = %+v, want fresh", got)
	}
}

func TestFindNearest_ZeroMaxAgeExcludesOldRecords(t *testing.T) {
	// An explicit zero window is the strictest request a caller can make: it
	// must never be widened into the default.
	svc := newTestMatcher(map[types.ID]presence.Record{
		"old": online(28.6, 77.2, time.Minute),
	})

	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("maxAge=0 returned a 1-minute-old record: %+v", got)
	}

	// A record stamped exactly now is still admissible at zero.
	svc = newTestMatcher(map[types.ID]presence.Record{
		"now": online(28.6, 77.2, 0),
	})
	got, err = svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PartnerID != "now" {
		t.Errorf("just-stamped record not matched at maxAge=0: %+v", got)
	}
}

func TestFindNearest_NegativeMaxAgeUsesDefault(t *testing.T) {
	svc := newTestMatcher(map[types.ID]presence.Record{
		"p1": online(28.6, 77.2, time.Minute),
	})
	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.PartnerID != "p1" {
		t.Errorf("unset window should admit a record inside the default: %+v", got)
	}
}

func TestFindNearest_ExcludesOfflineAndPositionless(t *testing.T) {
	lat := 28.6
	svc := newTestMatcher(map[types.ID]presence.Record{
		"offline": {Status: presence.StatusOffline, LastUpdated: testNow.UnixMilli(), Lat: &lat, Lng: &lat},
		"no_pos":  {Status: presence.StatusOnline, LastUpdated: testNow.UnixMilli()},
		"half":    {Status: presence.StatusOnline, LastUpdated: testNow.UnixMilli(), Lat: &lat},
	})

	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("ineligible record matched: %+v", got)
	}
}

func TestFindNearest_TieReturnsSomeMinimalCandidate(t *testing.T) {
	// Two partners at the same spot: which wins is unspecified, but the
	// winner must be one of them at the minimal distance.
	svc := newTestMatcher(map[types.ID]presence.Record{
		"a": online(28.61, 77.21, 0),
		"b": online(28.61, 77.21, 0),
	})
	got, err := svc.FindNearest(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || (got.PartnerID != "a" && got.PartnerID != "b") {
		t.Errorf("candidate = %+v, want one of the tied partners", got)
	}
}

func TestFindNearest_RejectsBadPickup(t *testing.T) {
	svc := newTestMatcher(nil)
	nan := math.NaN()
	if _, err := svc.FindNearest(context.Background(), types.Point{Lat: nan, Lng: 77.2}, 0); err != ErrBadPickup {
		t.Errorf("err = %v, want ErrBadPickup", err)
	}
}

func TestNearby_NoIndexConfigured(t *testing.T) {
	svc := newTestMatcher(nil)
	ids, err := svc.Nearby(context.Background(), types.Point{Lat: 28.6, Lng: 77.2}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Errorf("expected nil without an index, got %v", ids)
	}
}
