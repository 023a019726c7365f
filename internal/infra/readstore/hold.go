package readstore

import (
	"context"
	"time"

	"pod-booking-core/internal/infra"
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldReadStore struct {
	pool *pgxpool.Pool
}

func NewHoldReadStore(pool *pgxpool.Pool) *HoldReadStore {
	return &HoldReadStore{pool: pool}
}

func (r *HoldReadStore) FindBySession(ctx context.Context, sessionID uuid.UUID, activeOnly bool, now time.Time) ([]*queries.HoldView, error) {
	const q = `
SELECT h.id, h.room_id, COALESCE(r.number, ''), h.check_in, h.check_out,
       h.session_id, h.user_id, h.stage, h.hold_expiry, h.converted,
       h.reservation_id, h.created_at
FROM holds h
LEFT JOIN rooms r ON r.id = h.room_id
WHERE h.session_id = $1
  AND (NOT $2::bool OR (h.converted = FALSE AND h.hold_expiry > $3))
ORDER BY h.created_at`

	rows, err := r.pool.Query(ctx, q, sessionID, activeOnly, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find session holds", err)
	}
	defer rows.Close()

	result := []*queries.HoldView{}
	for rows.Next() {
		var v queries.HoldView
		err := rows.Scan(
			&v.ID, &v.RoomID, &v.RoomNumber, &v.CheckIn, &v.CheckOut,
			&v.SessionID, &v.UserID, &v.Stage, &v.HoldExpiry, &v.Converted,
			&v.ReservationID, &v.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate session holds", err)
	}
	return result, nil
}
