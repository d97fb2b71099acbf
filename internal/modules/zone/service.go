package zone

import (
	"context"

	"quickbite/internal/realtime"
	"quickbite/internal/types"
)

const rootPath = "zones"

type Service struct {
	store realtime.Store
}

func NewService(store realtime.Store) *Service {
	return &Service{store: store}
}

// Serviceable returns the id of the first zone containing p, or ("", false)
// when no zone does or the store is unavailable. Zone counts are small, so
// the linear scan is fine.
func (s *Service) Serviceable(ctx context.Context, p types.Point) (types.ID, bool, error) {
	if s.store == nil || !s.store.Ready() {
		return "", false, nil
	}
	var zones map[string]Zone
	if err := s.store.Get(ctx, rootPath, &zones); err != nil {
		return "", false, err
	}
	for id, z := range zones {
		if Contains(p, z.Vertices) {
			return types.ID(id), true, nil
		}
	}
	return "", false, nil
}
