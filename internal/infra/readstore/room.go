package readstore

import (
	"context"

	"pod-booking-core/internal/infra"
	"pod-booking-core/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomReadStore struct {
	pool *pgxpool.Pool
}

func NewRoomReadStore(pool *pgxpool.Pool) *RoomReadStore {
	return &RoomReadStore{pool: pool}
}

func (r *RoomReadStore) FindByFilter(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	// NULL filter arguments match everything; ordering is the canonical
	// cheapest-first with id as the stable tie-break.
	const q = `
SELECT id, number, zone, quality, status, nightly_price_cents
FROM rooms
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::text IS NULL OR zone = $2)
  AND ($3::text IS NULL OR quality = $3)
ORDER BY nightly_price_cents, id`

	rows, err := r.pool.Query(ctx, q, filter.Status, filter.Zone, filter.Quality)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find rooms", err)
	}
	defer rows.Close()

	result := []*queries.RoomView{}
	for rows.Next() {
		var v queries.RoomView
		if err := rows.Scan(&v.ID, &v.Number, &v.Zone, &v.Quality, &v.Status, &v.NightlyPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return result, nil
}
