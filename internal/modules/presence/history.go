package presence

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"quickbite/internal/types"
)

// History appends partner positions to Postgres for offline analytics.
type History struct {
	db *pgxpool.Pool
}

func NewHistory(db *pgxpool.Pool) *History {
	return &History{db: db}
}

func (h *History) Append(ctx context.Context, partnerID types.ID, pos types.Point, online bool, at time.Time) error {
	_, err := h.db.Exec(ctx, `
        INSERT INTO partner_location_history (partner_id, lat, lng, online, recorded_at)
        VALUES ($1, $2, $3, $4, $5)`,
		string(partnerID), pos.Lat, pos.Lng, online, at,
	)
	return err
}
