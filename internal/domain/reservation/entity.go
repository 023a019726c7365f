package reservation

import (
	"time"

	"pod-booking-core/internal/domain/stay"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

// Reservation is the authoritative committed booking. Any non-cancelled
// reservation blocks its room for its date range; the hold system never
// overrides this.
type Reservation struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    *uuid.UUID
	stayRange stay.Range
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(roomID uuid.UUID, userID *uuid.UUID, stayRange stay.Range) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		stayRange: stayRange,
		status:    StatusConfirmed,
	}
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	userID *uuid.UUID,
	stayRange stay.Range,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		stayRange: stayRange,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) RoomID() uuid.UUID    { return r.roomID }
func (r *Reservation) UserID() *uuid.UUID   { return r.userID }
func (r *Reservation) StayRange() stay.Range { return r.stayRange }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }

// Blocks reports whether this reservation removes its room from availability
// for its date range.
func (r *Reservation) Blocks() bool {
	return r.status != StatusCancelled
}
