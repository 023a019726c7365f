package queries

import (
	"context"
	"math"
	"sort"
	"strings"

	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/pkg/clock"

	"github.com/google/uuid"
)

// Recommendation tuning. Both values mirror the booking funnel's historical
// behavior; whether they should become tenant-configurable is an open product
// question, so they stay named constants for now.
const (
	// MaxUnavailableFraction is the largest tolerated share of blocked
	// nights for a room to still be worth suggesting.
	MaxUnavailableFraction = 0.33
	// RecommendationLimit caps the suggestion list length.
	RecommendationLimit = 5
)

type RecommendationQueries interface {
	// FindRecommendedRooms proposes partially-available rooms when the
	// availability search came up short: rooms from the requested zone plus
	// its fallback zone whose blocked-night share over the window is at
	// most MaxUnavailableFraction. Fully free rooms are the availability
	// resolver's job and are not duplicated here; fully blocked rooms are
	// discarded. Heuristic upsell, not a correctness path.
	FindRecommendedRooms(ctx context.Context, search AvailabilitySearch) ([]*RecommendedRoomView, error)
}

type recommendationQueriesImpl struct {
	rooms        RoomReadStore
	availability AvailabilityReadStore
	clock        clock.Clock
}

func NewRecommendationQueries(rooms RoomReadStore, availability AvailabilityReadStore, clk clock.Clock) RecommendationQueries {
	return &recommendationQueriesImpl{
		rooms:        rooms,
		availability: availability,
		clock:        clk,
	}
}

func (q *recommendationQueriesImpl) FindRecommendedRooms(ctx context.Context, search AvailabilitySearch) ([]*RecommendedRoomView, error) {
	candidates, outsideZone, err := q.candidateRooms(ctx, search)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []*RecommendedRoomView{}, nil
	}

	roomIDs := make([]uuid.UUID, len(candidates))
	for i, r := range candidates {
		roomIDs[i] = r.ID
	}

	intervals, err := q.availability.BlockingIntervals(ctx, roomIDs, search.Range, search.SessionID, q.clock.Now())
	if err != nil {
		return nil, err
	}

	blockedNights := make(map[uuid.UUID]int, len(candidates))
	for _, iv := range intervals {
		blocker, err := stay.NewRange(iv.CheckIn, iv.CheckOut)
		if err != nil {
			continue
		}
		blockedNights[iv.RoomID] += search.Range.OverlapNights(blocker)
	}

	totalNights := search.Range.Nights()
	recommended := make([]*RecommendedRoomView, 0, len(candidates))
	for _, r := range candidates {
		blocked := blockedNights[r.ID]
		if blocked > totalNights {
			blocked = totalNights
		}
		fraction := float64(blocked) / float64(totalNights)
		if blocked == 0 || fraction > MaxUnavailableFraction {
			continue
		}

		available := totalNights - blocked
		recommended = append(recommended, &RecommendedRoomView{
			RoomView:             *r,
			AvailableNights:      available,
			TotalNights:          totalNights,
			AvailablePercent:     int(math.Round(float64(available) / float64(totalNights) * 100)),
			OutsideRequestedZone: outsideZone[r.ID],
		})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		if recommended[i].NightlyPriceCents != recommended[j].NightlyPriceCents {
			return recommended[i].NightlyPriceCents < recommended[j].NightlyPriceCents
		}
		return strings.Compare(recommended[i].ID.String(), recommended[j].ID.String()) < 0
	})
	if len(recommended) > RecommendationLimit {
		recommended = recommended[:RecommendationLimit]
	}
	return recommended, nil
}

// candidateRooms collects the requested zone's rooms plus the fixed fallback
// zone's rooms, flagging the latter as outside the requested zone.
func (q *recommendationQueriesImpl) candidateRooms(ctx context.Context, search AvailabilitySearch) ([]*RoomView, map[uuid.UUID]bool, error) {
	outsideZone := make(map[uuid.UUID]bool)

	primary, err := q.rooms.FindByFilter(ctx, bookableFilter(search.Zone, search.Quality))
	if err != nil {
		return nil, nil, err
	}

	if search.Zone == nil {
		return primary, outsideZone, nil
	}

	fallback, ok := search.Zone.Fallback()
	if !ok {
		return primary, outsideZone, nil
	}

	adjacent, err := q.rooms.FindByFilter(ctx, bookableFilter(&fallback, search.Quality))
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(primary))
	for _, r := range primary {
		seen[r.ID] = struct{}{}
	}
	candidates := primary
	for _, r := range adjacent {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		outsideZone[r.ID] = true
		candidates = append(candidates, r)
	}
	return candidates, outsideZone, nil
}
