package commands

import (
	"context"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/domain/stay"

	"github.com/google/uuid"
)

// TxManager runs fn inside one database transaction; the transaction travels
// in the context so repository calls made from fn join it.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type HoldRepository interface {
	Create(ctx context.Context, h *hold.Hold) error
	// FindByID reports KindNotFound for holds that were released, purged or
	// never existed.
	FindByID(ctx context.Context, id uuid.UUID) (*hold.Hold, error)
	// FindActiveOverlapping returns holds for the room with converted =
	// false, hold_expiry > now and a range overlapping r, excluding holds
	// belonging to excludeSession when given.
	FindActiveOverlapping(ctx context.Context, roomID uuid.UUID, r stay.Range, excludeSession *uuid.UUID, now time.Time) ([]*hold.Hold, error)
	// AdvanceStage persists a stage transition and refreshed expiry;
	// KindNotFound when the hold no longer exists.
	AdvanceStage(ctx context.Context, holdID uuid.UUID, stage hold.Stage, newExpiry time.Time) error
	// MarkConverted retires the hold from contention and links the committed
	// reservation. Converted holds are kept as the reservation's audit trail.
	MarkConverted(ctx context.Context, holdID uuid.UUID, reservationID uuid.UUID) error
	// Release deletes the hold; deleting a non-existent hold is not an error.
	Release(ctx context.Context, holdID uuid.UUID) error
	// ReleaseBySession deletes all of a session's unconverted holds and
	// returns how many were removed.
	ReleaseBySession(ctx context.Context, sessionID uuid.UUID) (int64, error)
	// PurgeExpired deletes unconverted holds with hold_expiry < now.
	// Idempotent and safe to run concurrently; converted holds are exempt.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type ReservationRepository interface {
	// FindOverlapping returns non-cancelled reservations for the room whose
	// range overlaps r.
	FindOverlapping(ctx context.Context, roomID uuid.UUID, r stay.Range) ([]*reservation.Reservation, error)
	// Create inserts a committed reservation. The store itself re-validates
	// non-overlap atomically at insert time and reports KindConflict when
	// another committed reservation already covers part of the range.
	Create(ctx context.Context, res *reservation.Reservation) error
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}
