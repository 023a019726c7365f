//go:build unit

// Package fake provides an in-memory stand-in for the persistence layer so
// usecase behavior, including hold/reservation races, can be exercised
// without a database. The reservation store enforces commit-time overlap
// exclusivity under a mutex, mirroring the exclusion constraint in Postgres.
package fake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/infra"
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type World struct {
	mu           sync.Mutex
	rooms        map[uuid.UUID]*room.Room
	holds        map[uuid.UUID]*hold.Hold
	reservations map[uuid.UUID]*reservation.Reservation
}

func NewWorld() *World {
	return &World{
		rooms:        make(map[uuid.UUID]*room.Room),
		holds:        make(map[uuid.UUID]*hold.Hold),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

// Port adapters. Separate types because the command ports overlap in method
// names (Create, FindByID).
func (w *World) HoldRepo() *HoldRepo               { return &HoldRepo{w} }
func (w *World) ReservationRepo() *ReservationRepo { return &ReservationRepo{w} }
func (w *World) RoomRepo() *RoomRepo               { return &RoomRepo{w} }

func (w *World) AddRoom(r *room.Room) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rooms[r.ID()] = r
}

func (w *World) AddReservation(res *reservation.Reservation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reservations[res.ID()] = res
}

// AddHold inserts a hold bypassing the request-time contention check,
// simulating the interleaving where two sessions both pass the check before
// either creates.
func (w *World) AddHold(h *hold.Hold) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.holds[h.ID()] = copyHold(h)
}

func (w *World) Reservation(id uuid.UUID) *reservation.Reservation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reservations[id]
}

func (w *World) Hold(id uuid.UUID) *hold.Hold {
	w.mu.Lock()
	defer w.mu.Unlock()
	h, ok := w.holds[id]
	if !ok {
		return nil
	}
	return copyHold(h)
}

func (w *World) HoldCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.holds)
}

// WithTx satisfies commands.TxManager; the fake has no transactions.
func (w *World) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- commands.RoomRepository ---

type RoomRepo struct{ w *World }

func (r *RoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	rm, ok := r.w.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

// --- commands.ReservationRepository ---

type ReservationRepo struct{ w *World }

func (r *ReservationRepo) FindOverlapping(_ context.Context, roomID uuid.UUID, rng stay.Range) ([]*reservation.Reservation, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*reservation.Reservation
	for _, res := range r.w.reservations {
		if res.RoomID() == roomID && res.Blocks() && res.StayRange().Overlaps(rng) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *ReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	for _, existing := range r.w.reservations {
		if existing.RoomID() == res.RoomID() && existing.Blocks() && existing.StayRange().Overlaps(res.StayRange()) {
			return infra.WrapRepoErr("overlapping reservation", nil, infra.KindConflict)
		}
	}
	r.w.reservations[res.ID()] = res
	return nil
}

// --- commands.HoldRepository ---

type HoldRepo struct{ w *World }

func (r *HoldRepo) Create(_ context.Context, h *hold.Hold) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	r.w.holds[h.ID()] = copyHold(h)
	return nil
}

func (r *HoldRepo) FindByID(_ context.Context, id uuid.UUID) (*hold.Hold, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	h, ok := r.w.holds[id]
	if !ok {
		return nil, infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return copyHold(h), nil
}

func (r *HoldRepo) FindActiveOverlapping(_ context.Context, roomID uuid.UUID, rng stay.Range, excludeSession *uuid.UUID, now time.Time) ([]*hold.Hold, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var out []*hold.Hold
	for _, h := range r.w.holds {
		if h.RoomID() != roomID || !h.BlocksAt(now, rng) {
			continue
		}
		if excludeSession != nil && h.SessionID() == *excludeSession {
			continue
		}
		out = append(out, copyHold(h))
	}
	return out, nil
}

func (r *HoldRepo) AdvanceStage(_ context.Context, holdID uuid.UUID, stage hold.Stage, newExpiry time.Time) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	h, ok := r.w.holds[holdID]
	if !ok {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	if stage == hold.StagePayment {
		return h.AdvanceToPayment(newExpiry)
	}
	return h.Extend(newExpiry)
}

func (r *HoldRepo) MarkConverted(_ context.Context, holdID uuid.UUID, reservationID uuid.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	h, ok := r.w.holds[holdID]
	if !ok {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return h.MarkConverted(reservationID)
}

func (r *HoldRepo) Release(_ context.Context, holdID uuid.UUID) error {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	delete(r.w.holds, holdID)
	return nil
}

func (r *HoldRepo) ReleaseBySession(_ context.Context, sessionID uuid.UUID) (int64, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var released int64
	for id, h := range r.w.holds {
		if h.SessionID() == sessionID && !h.Converted() {
			delete(r.w.holds, id)
			released++
		}
	}
	return released, nil
}

func (r *HoldRepo) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.w.mu.Lock()
	defer r.w.mu.Unlock()
	var purged int64
	for id, h := range r.w.holds {
		if !h.Converted() && h.ExpiredAt(now) {
			delete(r.w.holds, id)
			purged++
		}
	}
	return purged, nil
}

// --- queries.RoomReadStore ---

func (w *World) FindByFilter(_ context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := []*queries.RoomView{}
	for _, r := range w.rooms {
		if filter.Status != nil && r.Status().String() != *filter.Status {
			continue
		}
		if filter.Zone != nil && r.Zone().String() != *filter.Zone {
			continue
		}
		if filter.Quality != nil && r.Quality().String() != *filter.Quality {
			continue
		}
		out = append(out, &queries.RoomView{
			ID:                r.ID(),
			Number:            r.Number(),
			Zone:              r.Zone().String(),
			Quality:           r.Quality().String(),
			Status:            r.Status().String(),
			NightlyPriceCents: r.NightlyPriceCents(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NightlyPriceCents != out[j].NightlyPriceCents {
			return out[i].NightlyPriceCents < out[j].NightlyPriceCents
		}
		return strings.Compare(out[i].ID.String(), out[j].ID.String()) < 0
	})
	return out, nil
}

// --- queries.AvailabilityReadStore ---

func (w *World) ReservedRoomIDs(_ context.Context, r stay.Range) ([]uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []uuid.UUID
	for _, res := range w.reservations {
		if res.Blocks() && res.StayRange().Overlaps(r) {
			out = append(out, res.RoomID())
		}
	}
	return out, nil
}

func (w *World) HeldRoomIDs(_ context.Context, r stay.Range, excludeSession *uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []uuid.UUID
	for _, h := range w.holds {
		if !h.BlocksAt(now, r) {
			continue
		}
		if excludeSession != nil && h.SessionID() == *excludeSession {
			continue
		}
		out = append(out, h.RoomID())
	}
	return out, nil
}

func (w *World) BlockingIntervals(_ context.Context, roomIDs []uuid.UUID, r stay.Range, excludeSession *uuid.UUID, now time.Time) ([]queries.BlockingInterval, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wanted := make(map[uuid.UUID]struct{}, len(roomIDs))
	for _, id := range roomIDs {
		wanted[id] = struct{}{}
	}

	var out []queries.BlockingInterval
	for _, res := range w.reservations {
		if _, ok := wanted[res.RoomID()]; !ok {
			continue
		}
		if res.Blocks() && res.StayRange().Overlaps(r) {
			out = append(out, queries.BlockingInterval{
				RoomID:   res.RoomID(),
				CheckIn:  res.StayRange().CheckIn(),
				CheckOut: res.StayRange().CheckOut(),
			})
		}
	}
	for _, h := range w.holds {
		if _, ok := wanted[h.RoomID()]; !ok {
			continue
		}
		if excludeSession != nil && h.SessionID() == *excludeSession {
			continue
		}
		if h.BlocksAt(now, r) {
			out = append(out, queries.BlockingInterval{
				RoomID:   h.RoomID(),
				CheckIn:  h.StayRange().CheckIn(),
				CheckOut: h.StayRange().CheckOut(),
			})
		}
	}
	return out, nil
}

// --- queries.HoldReadStore ---

func (w *World) FindBySession(_ context.Context, sessionID uuid.UUID, activeOnly bool, now time.Time) ([]*queries.HoldView, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := []*queries.HoldView{}
	for _, h := range w.holds {
		if h.SessionID() != sessionID {
			continue
		}
		if activeOnly && !h.ActiveAt(now) {
			continue
		}
		number := ""
		if r, ok := w.rooms[h.RoomID()]; ok {
			number = r.Number()
		}
		out = append(out, &queries.HoldView{
			ID:            h.ID(),
			RoomID:        h.RoomID(),
			RoomNumber:    number,
			CheckIn:       h.StayRange().CheckIn(),
			CheckOut:      h.StayRange().CheckOut(),
			SessionID:     h.SessionID(),
			UserID:        h.UserID(),
			Stage:         h.Stage().String(),
			HoldExpiry:    h.HoldExpiry(),
			Converted:     h.Converted(),
			ReservationID: h.ReservationID(),
			CreatedAt:     h.CreatedAt(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func copyHold(h *hold.Hold) *hold.Hold {
	return hold.ReconstructHold(
		h.ID(), h.RoomID(), h.StayRange(), h.SessionID(), h.UserID(),
		h.Stage(), h.HoldExpiry(), h.Converted(), h.ReservationID(), h.CreatedAt(),
	)
}
