package hold

import (
	"errors"
	"time"

	"pod-booking-core/internal/domain/stay"

	"github.com/google/uuid"
)

var (
	ErrInvalidTTL       = errors.New("hold ttl must be positive")
	ErrInvalidStage     = errors.New("invalid hold stage")
	ErrAlreadyConverted = errors.New("hold is already converted")
	ErrStageRegression  = errors.New("hold stage cannot move backwards")
)

// Stage is the hold's position in the booking funnel.
type Stage string

const (
	StageConfirmation Stage = "confirmation"
	StagePayment      Stage = "payment"
)

func (s Stage) String() string { return string(s) }

func (s Stage) IsValid() bool {
	switch s {
	case StageConfirmation, StagePayment:
		return true
	default:
		return false
	}
}

// Hold is a temporary, expiring soft-reservation of a room/date-range for one
// booking session. Room and date range are immutable after creation; only
// stage, expiry, converted and reservationID mutate.
type Hold struct {
	id            uuid.UUID
	roomID        uuid.UUID
	stayRange     stay.Range
	sessionID     uuid.UUID
	userID        *uuid.UUID
	stage         Stage
	holdExpiry    time.Time
	converted     bool
	reservationID *uuid.UUID
	createdAt     time.Time
}

func NewHold(
	roomID uuid.UUID,
	stayRange stay.Range,
	sessionID uuid.UUID,
	userID *uuid.UUID,
	ttl time.Duration,
	now time.Time,
) (*Hold, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Hold{
		id:         uuid.New(),
		roomID:     roomID,
		stayRange:  stayRange,
		sessionID:  sessionID,
		userID:     userID,
		stage:      StageConfirmation,
		holdExpiry: now.Add(ttl),
		createdAt:  now,
	}, nil
}

func ReconstructHold(
	id, roomID uuid.UUID,
	stayRange stay.Range,
	sessionID uuid.UUID,
	userID *uuid.UUID,
	stage Stage,
	holdExpiry time.Time,
	converted bool,
	reservationID *uuid.UUID,
	createdAt time.Time,
) *Hold {
	return &Hold{
		id:            id,
		roomID:        roomID,
		stayRange:     stayRange,
		sessionID:     sessionID,
		userID:        userID,
		stage:         stage,
		holdExpiry:    holdExpiry,
		converted:     converted,
		reservationID: reservationID,
		createdAt:     createdAt,
	}
}

func (h *Hold) ID() uuid.UUID             { return h.id }
func (h *Hold) RoomID() uuid.UUID         { return h.roomID }
func (h *Hold) StayRange() stay.Range     { return h.stayRange }
func (h *Hold) SessionID() uuid.UUID      { return h.sessionID }
func (h *Hold) UserID() *uuid.UUID        { return h.userID }
func (h *Hold) Stage() Stage              { return h.stage }
func (h *Hold) HoldExpiry() time.Time     { return h.holdExpiry }
func (h *Hold) Converted() bool           { return h.converted }
func (h *Hold) ReservationID() *uuid.UUID { return h.reservationID }
func (h *Hold) CreatedAt() time.Time      { return h.createdAt }

// ExpiredAt reports whether the hold is logically inert at now, regardless of
// whether the purge sweep has physically deleted it yet.
func (h *Hold) ExpiredAt(now time.Time) bool {
	return !h.holdExpiry.After(now)
}

// ActiveAt reports whether the hold still contends for its room: unconverted
// and unexpired. Converted holds are retained as an audit trail but never
// count toward availability contention.
func (h *Hold) ActiveAt(now time.Time) bool {
	return !h.converted && !h.ExpiredAt(now)
}

// BlocksAt reports whether the hold blocks the given range at now.
func (h *Hold) BlocksAt(now time.Time, r stay.Range) bool {
	return h.ActiveAt(now) && h.stayRange.Overlaps(r)
}

// AdvanceToPayment moves the hold into the payment stage with a refreshed
// expiry. Advancing an already-payment hold only refreshes the expiry.
func (h *Hold) AdvanceToPayment(newExpiry time.Time) error {
	if h.converted {
		return ErrAlreadyConverted
	}
	h.stage = StagePayment
	h.holdExpiry = newExpiry
	return nil
}

// Extend refreshes the expiry without changing the stage.
func (h *Hold) Extend(newExpiry time.Time) error {
	if h.converted {
		return ErrAlreadyConverted
	}
	h.holdExpiry = newExpiry
	return nil
}

// MarkConverted retires the hold from contention, linking it to the committed
// reservation that superseded it. Terminal: conversion always wins over an
// expiry sweep racing at the same instant.
func (h *Hold) MarkConverted(reservationID uuid.UUID) error {
	if h.converted {
		return ErrAlreadyConverted
	}
	h.converted = true
	h.reservationID = &reservationID
	return nil
}
