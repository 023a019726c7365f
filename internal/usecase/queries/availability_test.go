//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/pkg/clock"
	"pod-booking-core/internal/usecase/queries"
	"pod-booking-core/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRange(t *testing.T, in, out string) stay.Range {
	t.Helper()
	r, err := stay.NewRange(day(in), day(out))
	require.NoError(t, err)
	return r
}

func addRoom(t *testing.T, w *fake.World, number string, zone room.Zone, quality room.Quality, status room.Status, price int32) *room.Room {
	t.Helper()
	r, err := room.NewRoom(uuid.New(), number, zone, quality, status, price)
	require.NoError(t, err)
	w.AddRoom(r)
	return r
}

func addHold(t *testing.T, w *fake.World, roomID uuid.UUID, r stay.Range, sessionID uuid.UUID, ttl time.Duration, now time.Time) *hold.Hold {
	t.Helper()
	h, err := hold.NewHold(roomID, r, sessionID, nil, ttl, now)
	require.NoError(t, err)
	w.AddHold(h)
	return h
}

func TestFindAvailableRooms(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)

	world := fake.NewWorld()
	cheap := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
	reserved := addRoom(t, world, "classic-102", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 6000)
	heldByOther := addRoom(t, world, "classic-103", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 7000)
	heldByMe := addRoom(t, world, "classic-104", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 8000)
	expired := addRoom(t, world, "classic-105", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 9000)
	addRoom(t, world, "classic-106", room.ZoneBusiness, room.QualityClassic, room.StatusMaintenance, 4000)

	window := mustRange(t, "2025-03-01", "2025-03-05")
	mySession := uuid.New()

	world.AddReservation(reservation.NewReservation(reserved.ID(), nil, mustRange(t, "2025-03-03", "2025-03-06")))
	addHold(t, world, heldByOther.ID(), window, uuid.New(), 5*time.Minute, baseTime)
	addHold(t, world, heldByMe.ID(), window, mySession, 5*time.Minute, baseTime)
	// created well in the past; inert even though no sweep ever ran
	addHold(t, world, expired.ID(), window, uuid.New(), 5*time.Minute, baseTime.Add(-time.Hour))

	q := queries.NewAvailabilityQueries(world, world, clk)

	t.Run("filters blocked rooms and keeps price ordering", func(t *testing.T) {
		rooms, err := q.FindAvailableRooms(ctx, queries.AvailabilitySearch{
			Range:     window,
			SessionID: &mySession,
		})
		require.NoError(t, err)

		ids := make([]uuid.UUID, len(rooms))
		for i, r := range rooms {
			ids[i] = r.ID
		}
		assert.Equal(t, []uuid.UUID{cheap.ID(), heldByMe.ID(), expired.ID()}, ids)
	})

	t.Run("own hold blocks other sessions", func(t *testing.T) {
		otherSession := uuid.New()
		rooms, err := q.FindAvailableRooms(ctx, queries.AvailabilitySearch{
			Range:     window,
			SessionID: &otherSession,
		})
		require.NoError(t, err)
		for _, r := range rooms {
			assert.NotEqual(t, heldByMe.ID(), r.ID)
		}
	})

	t.Run("disjoint window is unaffected by any blocker", func(t *testing.T) {
		rooms, err := q.FindAvailableRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-06-01", "2025-06-03"),
		})
		require.NoError(t, err)
		assert.Len(t, rooms, 5, "all bookable rooms free in a distant window")
	})

	t.Run("adjacent reservation does not block a touching window", func(t *testing.T) {
		// checkout day equals the reservation's check-in: half-open, no overlap
		rooms, err := q.FindAvailableRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-03-01", "2025-03-03"),
		})
		require.NoError(t, err)
		found := false
		for _, r := range rooms {
			if r.ID == reserved.ID() {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("zone and quality filters narrow candidates", func(t *testing.T) {
		deluxe := addRoom(t, world, "deluxe-201", room.ZoneCouples, room.QualityDeluxe, room.StatusAvailable, 12000)

		zone := room.ZoneCouples
		quality := room.QualityDeluxe
		rooms, err := q.FindAvailableRooms(ctx, queries.AvailabilitySearch{
			Range:   window,
			Zone:    &zone,
			Quality: &quality,
		})
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, deluxe.ID(), rooms[0].ID)
	})
}

func TestListBySession(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)

	world := fake.NewWorld()
	r := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
	session := uuid.New()

	live := addHold(t, world, r.ID(), mustRange(t, "2025-03-01", "2025-03-03"), session, 5*time.Minute, baseTime)
	addHold(t, world, r.ID(), mustRange(t, "2025-04-01", "2025-04-03"), session, 5*time.Minute, baseTime.Add(-time.Hour))
	addHold(t, world, r.ID(), mustRange(t, "2025-05-01", "2025-05-03"), uuid.New(), 5*time.Minute, baseTime)

	q := queries.NewHoldQueries(world, clk)

	t.Run("active only hides the expired hold", func(t *testing.T) {
		views, err := q.ListBySession(ctx, session, true)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, live.ID(), views[0].ID)
		assert.Equal(t, "classic-101", views[0].RoomNumber)
	})

	t.Run("full listing keeps expired holds visible", func(t *testing.T) {
		views, err := q.ListBySession(ctx, session, false)
		require.NoError(t, err)
		assert.Len(t, views, 2)
	})
}
