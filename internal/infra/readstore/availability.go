package readstore

import (
	"context"
	"time"

	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/infra"
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AvailabilityReadStore answers which rooms (and which date intervals) are
// blocked over a window. Expiry and conversion are filtered in SQL on every
// call; the store never assumes the purge sweep has run.
type AvailabilityReadStore struct {
	pool *pgxpool.Pool
}

func NewAvailabilityReadStore(pool *pgxpool.Pool) *AvailabilityReadStore {
	return &AvailabilityReadStore{pool: pool}
}

func (r *AvailabilityReadStore) ReservedRoomIDs(ctx context.Context, rng stay.Range) ([]uuid.UUID, error) {
	const q = `
SELECT DISTINCT room_id
FROM reservations
WHERE status <> 'cancelled'
  AND check_in < $1
  AND check_out > $2`

	return r.roomIDs(ctx, q, rng.CheckOut(), rng.CheckIn())
}

func (r *AvailabilityReadStore) HeldRoomIDs(ctx context.Context, rng stay.Range, excludeSession *uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	const q = `
SELECT DISTINCT room_id
FROM holds
WHERE converted = FALSE
  AND hold_expiry > $1
  AND check_in < $2
  AND check_out > $3
  AND ($4::uuid IS NULL OR session_id <> $4)`

	return r.roomIDs(ctx, q, now, rng.CheckOut(), rng.CheckIn(), excludeSession)
}

func (r *AvailabilityReadStore) roomIDs(ctx context.Context, q string, args ...any) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocked rooms", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocked rooms", err)
	}
	return ids, nil
}

func (r *AvailabilityReadStore) BlockingIntervals(ctx context.Context, roomIDs []uuid.UUID, rng stay.Range, excludeSession *uuid.UUID, now time.Time) ([]queries.BlockingInterval, error) {
	const q = `
SELECT room_id, check_in, check_out
FROM reservations
WHERE room_id = ANY($1)
  AND status <> 'cancelled'
  AND check_in < $2
  AND check_out > $3
UNION ALL
SELECT room_id, check_in, check_out
FROM holds
WHERE room_id = ANY($1)
  AND converted = FALSE
  AND hold_expiry > $4
  AND check_in < $2
  AND check_out > $3
  AND ($5::uuid IS NULL OR session_id <> $5)`

	rows, err := r.pool.Query(ctx, q, roomIDs, rng.CheckOut(), rng.CheckIn(), now, excludeSession)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find blocking intervals", err)
	}
	defer rows.Close()

	var intervals []queries.BlockingInterval
	for rows.Next() {
		var iv queries.BlockingInterval
		if err := rows.Scan(&iv.RoomID, &iv.CheckIn, &iv.CheckOut); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking interval", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate blocking intervals", err)
	}
	return intervals, nil
}
