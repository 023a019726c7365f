package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateHoldRequest takes RFC3339 timestamps; only the calendar day matters,
// range normalization drops the time component.
type CreateHoldRequest struct {
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	CheckIn  time.Time `json:"check_in" binding:"required"`
	CheckOut time.Time `json:"check_out" binding:"required"`
}

type ConvertHoldRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
}
