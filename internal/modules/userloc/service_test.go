package userloc

import (
	"context"
	"testing"
	"time"

	"quickbite/internal/realtime"
)

func f(v float64) *float64 { return &v }

func str(s string) *string { return &s }

func TestSet(t *testing.T) {
	store := realtime.NewMemoryStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	ctx := context.Background()

	ok, err := svc.Set(ctx, "u1", Location{
		Lat: f(28.6), Lng: f(77.2),
		Address: str("12 Main St"),
		City:    str("Delhi"),
	})
	if err != nil || !ok {
		t.Fatalf("set: ok=%v err=%v", ok, err)
	}

	var got map[string]any
	if err := store.Get(ctx, "users/u1", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["lat"] != 28.6 || got["lng"] != 77.2 {
		t.Errorf("coordinates = %v / %v", got["lat"], got["lng"])
	}
	if got["address"] != "12 Main St" || got["city"] != "Delhi" {
		t.Errorf("address fields = %v / %v", got["address"], got["city"])
	}
	if got["last_updated"] != float64(1_700_000_000_000) {
		t.Errorf("last_updated = %v", got["last_updated"])
	}
	if _, present := got["area"]; present {
		t.Errorf("omitted field was written")
	}
}

func TestSet_PartialUpdateKeepsEarlierFields(t *testing.T) {
	store := realtime.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", Location{Lat: f(28.6), Lng: f(77.2), City: str("Delhi")}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if _, err := svc.Set(ctx, "u1", Location{Address: str("4 Park Ave")}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	var got map[string]any
	if err := store.Get(ctx, "users/u1", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["lat"] != 28.6 || got["city"] != "Delhi" {
		t.Errorf("earlier fields clobbered: %v", got)
	}
	if got["address"] != "4 Park Ave" {
		t.Errorf("address = %v", got["address"])
	}
}

func TestSet_LoneCoordinateIgnored(t *testing.T) {
	store := realtime.NewMemoryStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Set(ctx, "u1", Location{Lat: f(28.6)}); err != nil {
		t.Fatalf("set: %v", err)
	}
	var got map[string]any
	if err := store.Get(ctx, "users/u1", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, present := got["lat"]; present {
		t.Errorf("lat written without lng")
	}
}

func TestSet_InvalidInput(t *testing.T) {
	svc := NewService(realtime.NewMemoryStore())
	if ok, err := svc.Set(context.Background(), "", Location{}); err != nil || ok {
		t.Errorf("empty id: ok=%v err=%v, want false, nil", ok, err)
	}
	svc = NewService(realtime.Unavailable{})
	if ok, err := svc.Set(context.Background(), "u1", Location{}); err != nil || ok {
		t.Errorf("unavailable store: ok=%v err=%v, want false, nil", ok, err)
	}
}
