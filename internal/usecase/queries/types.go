package queries

import (
	"context"
	"time"

	"pod-booking-core/internal/domain/stay"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type RoomView struct {
	ID                uuid.UUID `json:"id"`
	Number            string    `json:"number"`
	Zone              string    `json:"zone"`
	Quality           string    `json:"quality"`
	Status            string    `json:"status"`
	NightlyPriceCents int32     `json:"nightly_price_cents"`
}

// RecommendedRoomView is a partially-available room surfaced as an
// alternative suggestion, annotated with how much of the requested window is
// actually free.
type RecommendedRoomView struct {
	RoomView
	AvailableNights      int  `json:"available_nights"`
	TotalNights          int  `json:"total_nights"`
	AvailablePercent     int  `json:"available_percent"`
	OutsideRequestedZone bool `json:"outside_requested_zone"`
}

type HoldView struct {
	ID            uuid.UUID  `json:"id"`
	RoomID        uuid.UUID  `json:"room_id"`
	RoomNumber    string     `json:"room_number"`
	CheckIn       time.Time  `json:"check_in"`
	CheckOut      time.Time  `json:"check_out"`
	SessionID     uuid.UUID  `json:"session_id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Stage         string     `json:"stage"`
	HoldExpiry    time.Time  `json:"hold_expiry"`
	Converted     bool       `json:"converted"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BlockingInterval is one reservation or hold date range that removes nights
// from a room inside a query window.
type BlockingInterval struct {
	RoomID   uuid.UUID
	CheckIn  time.Time
	CheckOut time.Time
}

// RoomFilter narrows inventory lookups. Nil fields match everything.
type RoomFilter struct {
	Status  *string
	Zone    *string
	Quality *string
}

type RoomReadStore interface {
	// FindByFilter returns rooms ordered by nightly price ascending, id
	// ascending as tie-break.
	FindByFilter(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type AvailabilityReadStore interface {
	// ReservedRoomIDs returns ids of rooms blocked by a non-cancelled
	// reservation overlapping r.
	ReservedRoomIDs(ctx context.Context, r stay.Range) ([]uuid.UUID, error)
	// HeldRoomIDs returns ids of rooms blocked by an unconverted hold with
	// hold_expiry > now overlapping r, excluding holds of excludeSession.
	HeldRoomIDs(ctx context.Context, r stay.Range, excludeSession *uuid.UUID, now time.Time) ([]uuid.UUID, error)
	// BlockingIntervals returns every reservation and active-hold range
	// overlapping r for the given rooms.
	BlockingIntervals(ctx context.Context, roomIDs []uuid.UUID, r stay.Range, excludeSession *uuid.UUID, now time.Time) ([]BlockingInterval, error)
}

type HoldReadStore interface {
	FindBySession(ctx context.Context, sessionID uuid.UUID, activeOnly bool, now time.Time) ([]*HoldView, error)
}
