package commands

import (
	"context"
	"log/slog"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/infra"
	"pod-booking-core/internal/pkg/clock"
	"pod-booking-core/internal/pkg/config"
	"pod-booking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrRoomUnavailable         = errs.New("room unavailable for requested dates")
	ErrHoldNotFound            = errs.New("hold not found")
	ErrHoldAlreadyConverted    = errs.New("hold already converted")
	ErrInvalidStayRange        = errs.New("invalid stay range")
	ErrReservationConflict     = errs.New("reservation conflict")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type RequestHoldParams struct {
	RoomID    uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
	SessionID uuid.UUID
	UserID    *uuid.UUID
}

type HoldCommands interface {
	// RequestHold re-checks committed reservations and competing holds
	// immediately before creating a confirmation-stage hold. The check and
	// the create are not atomic against a concurrent identical request;
	// hold creation is advisory soft-locking and the reservation commit is
	// the final authority.
	RequestHold(ctx context.Context, params RequestHoldParams) (*hold.Hold, error)
	// ExtendToPayment advances an active hold to the payment stage with a
	// refreshed expiry, capped so the total hold lifetime never exceeds the
	// configured maximum.
	ExtendToPayment(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error)
	// Convert retires the hold after an externally committed reservation.
	Convert(ctx context.Context, holdID uuid.UUID, reservationID uuid.UUID) (*hold.Hold, error)
	// ConfirmBooking commits a reservation for the hold's room and range
	// and converts the hold, in one transaction. Of two racing sessions at
	// most one succeeds; the loser gets ErrReservationConflict and its
	// stale hold stays releasable.
	ConfirmBooking(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error)
	// Release deletes the hold; releasing an unknown id is a no-op.
	Release(ctx context.Context, holdID uuid.UUID) error
	// Abandon releases every hold of a browsing session.
	Abandon(ctx context.Context, sessionID uuid.UUID) (int64, error)
	// Sweep purges expired unconverted holds. Storage compaction only: all
	// read paths filter expiry themselves and never depend on the sweep.
	Sweep(ctx context.Context) (int64, error)
}

type holdCommandsImpl struct {
	holdRepo        HoldRepository
	reservationRepo ReservationRepository
	roomRepo        RoomRepository
	txManager       TxManager
	clock           clock.Clock
	cfg             config.HoldConfig
}

func NewHoldCommands(
	holdRepo HoldRepository,
	reservationRepo ReservationRepository,
	roomRepo RoomRepository,
	txManager TxManager,
	clk clock.Clock,
	cfg config.Config,
) HoldCommands {
	return &holdCommandsImpl{
		holdRepo:        holdRepo,
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		txManager:       txManager,
		clock:           clk,
		cfg:             cfg.Hold,
	}
}

func (c *holdCommandsImpl) RequestHold(ctx context.Context, params RequestHoldParams) (*hold.Hold, error) {
	stayRange, err := stay.NewRange(params.CheckIn, params.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidStayRange)
	}

	roomEntity, err := c.roomRepo.FindByID(ctx, params.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !roomEntity.Bookable() {
		return nil, ErrRoomUnavailable
	}

	if err := c.checkContention(ctx, params.RoomID, stayRange, params.SessionID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	newHold, err := hold.NewHold(params.RoomID, stayRange, params.SessionID, params.UserID, c.cfg.ConfirmationTTL, now)
	if err != nil {
		return nil, err
	}
	if err := c.holdRepo.Create(ctx, newHold); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return newHold, nil
}

// checkContention rejects a range already covered by a committed reservation
// or another session's live hold. Advisory: the exclusion constraint at
// reservation commit remains the only hard guarantee.
func (c *holdCommandsImpl) checkContention(ctx context.Context, roomID uuid.UUID, r stay.Range, sessionID uuid.UUID) error {
	reservations, err := c.reservationRepo.FindOverlapping(ctx, roomID, r)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(reservations) > 0 {
		return ErrRoomUnavailable
	}

	competing, err := c.holdRepo.FindActiveOverlapping(ctx, roomID, r, &sessionID, c.clock.Now())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if len(competing) > 0 {
		return ErrRoomUnavailable
	}
	return nil
}

func (c *holdCommandsImpl) ExtendToPayment(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error) {
	h, err := c.findLiveHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if h.Converted() {
		return nil, ErrHoldAlreadyConverted
	}

	now := c.clock.Now()
	newExpiry := now.Add(c.cfg.PaymentTTL)
	// Total confirmation+payment lifetime is bounded so an abandoned session
	// cannot pin a room indefinitely through repeated extensions.
	if maxExpiry := h.CreatedAt().Add(c.cfg.MaxLifetime); newExpiry.After(maxExpiry) {
		newExpiry = maxExpiry
	}

	if err := h.AdvanceToPayment(newExpiry); err != nil {
		return nil, errs.Mark(err, ErrHoldAlreadyConverted)
	}
	if err := c.holdRepo.AdvanceStage(ctx, h.ID(), hold.StagePayment, newExpiry); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return h, nil
}

func (c *holdCommandsImpl) Convert(ctx context.Context, holdID uuid.UUID, reservationID uuid.UUID) (*hold.Hold, error) {
	h, err := c.findHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if h.Converted() {
		// Replayed conversion with the same reservation is a success.
		if h.ReservationID() != nil && *h.ReservationID() == reservationID {
			return h, nil
		}
		return nil, ErrHoldAlreadyConverted
	}

	if err := h.MarkConverted(reservationID); err != nil {
		return nil, errs.Mark(err, ErrHoldAlreadyConverted)
	}
	if err := c.holdRepo.MarkConverted(ctx, h.ID(), reservationID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return h, nil
}

func (c *holdCommandsImpl) ConfirmBooking(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error) {
	h, err := c.findLiveHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if h.Converted() {
		return h, nil
	}

	res := reservation.NewReservation(h.RoomID(), h.UserID(), h.StayRange())
	err = c.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := c.reservationRepo.Create(ctx, res); err != nil {
			return err
		}
		return c.holdRepo.MarkConverted(ctx, h.ID(), res.ID())
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			// Lost the race: another session committed first. The stale
			// hold stays for the caller to release or let expire.
			return nil, ErrReservationConflict
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := h.MarkConverted(res.ID()); err != nil {
		return nil, errs.Mark(err, ErrHoldAlreadyConverted)
	}
	return h, nil
}

func (c *holdCommandsImpl) Release(ctx context.Context, holdID uuid.UUID) error {
	if err := c.holdRepo.Release(ctx, holdID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *holdCommandsImpl) Abandon(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	released, err := c.holdRepo.ReleaseBySession(ctx, sessionID)
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return released, nil
}

func (c *holdCommandsImpl) Sweep(ctx context.Context) (int64, error) {
	purged, err := c.holdRepo.PurgeExpired(ctx, c.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if purged > 0 {
		slog.Debug("purged expired holds", "count", purged)
	}
	return purged, nil
}

func (c *holdCommandsImpl) findHold(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error) {
	h, err := c.holdRepo.FindByID(ctx, holdID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return h, nil
}

// findLiveHold treats an expired-but-unpurged hold the same as a purged one:
// logically it no longer exists.
func (c *holdCommandsImpl) findLiveHold(ctx context.Context, holdID uuid.UUID) (*hold.Hold, error) {
	h, err := c.findHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if !h.Converted() && h.ExpiredAt(c.clock.Now()) {
		return nil, ErrHoldNotFound
	}
	return h, nil
}
