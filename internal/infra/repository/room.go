package repository

import (
	"context"

	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const q = `
SELECT id, number, zone, quality, status, nightly_price_cents
FROM rooms
WHERE id = $1`

	var (
		roomID            uuid.UUID
		number            string
		zone              string
		quality           string
		status            string
		nightlyPriceCents int32
	)
	err := queryRow(ctx, r.pool, q, id).Scan(&roomID, &number, &zone, &quality, &status, &nightlyPriceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find room by id", err)
	}

	entity, err := room.NewRoom(roomID, number, room.Zone(zone), room.Quality(quality), room.Status(status), nightlyPriceCents)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid room row", err)
	}
	return entity, nil
}
