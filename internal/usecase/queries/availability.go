package queries

import (
	"context"

	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/pkg/clock"

	"github.com/google/uuid"
)

// AvailabilitySearch narrows an availability or recommendation query.
// SessionID, when set, excludes that session's own holds so a session never
// blocks itself from the room it already holds.
type AvailabilitySearch struct {
	Range     stay.Range
	Zone      *room.Zone
	Quality   *room.Quality
	SessionID *uuid.UUID
}

type AvailabilityQueries interface {
	// FindAvailableRooms returns rooms with administrative status
	// "available" that are free of committed reservations and active
	// competing holds over the requested range, ordered by price ascending.
	// The result is a point-in-time snapshot, advisory only: a concurrent
	// session may still hold or reserve any returned room before the caller
	// acts on it.
	FindAvailableRooms(ctx context.Context, search AvailabilitySearch) ([]*RoomView, error)
}

type availabilityQueriesImpl struct {
	rooms        RoomReadStore
	availability AvailabilityReadStore
	clock        clock.Clock
}

func NewAvailabilityQueries(rooms RoomReadStore, availability AvailabilityReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{
		rooms:        rooms,
		availability: availability,
		clock:        clk,
	}
}

func (q *availabilityQueriesImpl) FindAvailableRooms(ctx context.Context, search AvailabilitySearch) ([]*RoomView, error) {
	candidates, err := q.rooms.FindByFilter(ctx, bookableFilter(search.Zone, search.Quality))
	if err != nil {
		return nil, err
	}

	blocked, err := q.blockedRoomIDs(ctx, search)
	if err != nil {
		return nil, err
	}

	// Store ordering (price asc, id asc) is preserved by filtering in place.
	available := make([]*RoomView, 0, len(candidates))
	for _, r := range candidates {
		if _, ok := blocked[r.ID]; !ok {
			available = append(available, r)
		}
	}
	return available, nil
}

// blockedRoomIDs unions rooms blocked by reservations with rooms blocked by
// competing holds. Both stores filter expiry and conversion themselves; the
// purge sweep is never relied on here.
func (q *availabilityQueriesImpl) blockedRoomIDs(ctx context.Context, search AvailabilitySearch) (map[uuid.UUID]struct{}, error) {
	reserved, err := q.availability.ReservedRoomIDs(ctx, search.Range)
	if err != nil {
		return nil, err
	}
	held, err := q.availability.HeldRoomIDs(ctx, search.Range, search.SessionID, q.clock.Now())
	if err != nil {
		return nil, err
	}

	blocked := make(map[uuid.UUID]struct{}, len(reserved)+len(held))
	for _, id := range reserved {
		blocked[id] = struct{}{}
	}
	for _, id := range held {
		blocked[id] = struct{}{}
	}
	return blocked, nil
}

func bookableFilter(zone *room.Zone, quality *room.Quality) RoomFilter {
	status := room.StatusAvailable.String()
	filter := RoomFilter{Status: &status}
	if zone != nil {
		z := zone.String()
		filter.Zone = &z
	}
	if quality != nil {
		qs := quality.String()
		filter.Quality = &qs
	}
	return filter
}
