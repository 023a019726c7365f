package repository

import (
	"context"
	"time"

	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, rng stay.Range) ([]*reservation.Reservation, error) {
	const q = `
SELECT id, room_id, user_id, check_in, check_out, status, created_at, updated_at
FROM reservations
WHERE room_id = $1
  AND status <> 'cancelled'
  AND check_in < $2
  AND check_out > $3
ORDER BY check_in`

	rows, err := query(ctx, r.pool, q, roomID, rng.CheckOut(), rng.CheckIn())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}
	defer rows.Close()

	var reservations []*reservation.Reservation
	for rows.Next() {
		var (
			id, resRoomID         uuid.UUID
			userID                *uuid.UUID
			checkIn, checkOut     time.Time
			status                string
			createdAt, updatedAt  time.Time
		)
		if err := rows.Scan(&id, &resRoomID, &userID, &checkIn, &checkOut, &status, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		resRange, err := stay.NewRange(checkIn, checkOut)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to rebuild reservation range", err)
		}
		reservations = append(reservations, reservation.ReconstructReservation(
			id, resRoomID, userID, resRange, reservation.Status(status), createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return reservations, nil
}

// Create inserts a committed reservation. The table's exclusion constraint
// re-validates non-overlap atomically at insert; of two racing inserts for the
// same room and range exactly one commits, the other surfaces KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const stmt = `
INSERT INTO reservations (id, room_id, user_id, check_in, check_out, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`

	_, err := exec(ctx, r.pool, stmt,
		res.ID(),
		res.RoomID(),
		res.UserID(),
		res.StayRange().CheckIn(),
		res.StayRange().CheckOut(),
		res.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}
