//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pod-booking-core/internal/domain/reservation"
	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/pkg/clock"
	"pod-booking-core/internal/usecase/queries"
	"pod-booking-core/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRecommendedRooms(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)

	t.Run("keeps rooms at or under the blocked-night threshold", func(t *testing.T) {
		world := fake.NewWorld()
		// 10-night window: 3 blocked nights is 0.30, inside the threshold
		kept := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
		world.AddReservation(reservation.NewReservation(kept.ID(), nil, mustRange(t, "2025-03-02", "2025-03-05")))

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-03-01", "2025-03-11"),
		})
		require.NoError(t, err)

		require.Len(t, views, 1)
		assert.Equal(t, kept.ID(), views[0].ID)
		assert.Equal(t, 7, views[0].AvailableNights)
		assert.Equal(t, 10, views[0].TotalNights)
		assert.Equal(t, 70, views[0].AvailablePercent)
		assert.False(t, views[0].OutsideRequestedZone)
	})

	t.Run("drops rooms just over the threshold", func(t *testing.T) {
		world := fake.NewWorld()
		// 6-night window: 2 blocked nights is 0.333..., just over 0.33
		r := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
		world.AddReservation(reservation.NewReservation(r.ID(), nil, mustRange(t, "2025-03-01", "2025-03-03")))

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-03-01", "2025-03-07"),
		})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("fully free and fully blocked rooms are never suggested", func(t *testing.T) {
		world := fake.NewWorld()
		addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
		full := addRoom(t, world, "classic-102", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 6000)
		world.AddReservation(reservation.NewReservation(full.ID(), nil, mustRange(t, "2025-03-01", "2025-03-11")))

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-03-01", "2025-03-11"),
		})
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("blocker extending past the window counts clipped nights only", func(t *testing.T) {
		world := fake.NewWorld()
		r := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
		// overlaps the 10-night window by 2 nights; total blocker length is 6
		world.AddReservation(reservation.NewReservation(r.ID(), nil, mustRange(t, "2025-02-25", "2025-03-03")))

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: mustRange(t, "2025-03-01", "2025-03-11"),
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, 8, views[0].AvailableNights)
	})

	t.Run("single-gender zone pulls flagged fallback rooms", func(t *testing.T) {
		world := fake.NewWorld()
		women := addRoom(t, world, "w-101", room.ZoneWomenOnly, room.QualityClassic, room.StatusAvailable, 5000)
		business := addRoom(t, world, "b-201", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 6000)
		addRoom(t, world, "c-301", room.ZoneCouples, room.QualityClassic, room.StatusAvailable, 4000)

		window := mustRange(t, "2025-03-01", "2025-03-11")
		blocker := mustRange(t, "2025-03-01", "2025-03-03")
		world.AddReservation(reservation.NewReservation(women.ID(), nil, blocker))
		world.AddReservation(reservation.NewReservation(business.ID(), nil, blocker))

		zone := room.ZoneWomenOnly
		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: window,
			Zone:  &zone,
		})
		require.NoError(t, err)

		require.Len(t, views, 2, "couples zone never consulted")
		assert.Equal(t, women.ID(), views[0].ID)
		assert.False(t, views[0].OutsideRequestedZone)
		assert.Equal(t, business.ID(), views[1].ID)
		assert.True(t, views[1].OutsideRequestedZone)
	})

	t.Run("couples zone has no fallback", func(t *testing.T) {
		world := fake.NewWorld()
		couples := addRoom(t, world, "c-301", room.ZoneCouples, room.QualityClassic, room.StatusAvailable, 5000)
		business := addRoom(t, world, "b-201", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 6000)

		window := mustRange(t, "2025-03-01", "2025-03-11")
		blocker := mustRange(t, "2025-03-01", "2025-03-03")
		world.AddReservation(reservation.NewReservation(couples.ID(), nil, blocker))
		world.AddReservation(reservation.NewReservation(business.ID(), nil, blocker))

		zone := room.ZoneCouples
		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{
			Range: window,
			Zone:  &zone,
		})
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, couples.ID(), views[0].ID)
	})

	t.Run("list is price-ordered and capped", func(t *testing.T) {
		world := fake.NewWorld()
		window := mustRange(t, "2025-03-01", "2025-03-11")
		blocker := mustRange(t, "2025-03-01", "2025-03-03")

		for i := 0; i < 8; i++ {
			r := addRoom(t, world, fmt.Sprintf("classic-1%02d", i), room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, int32(9000-i*500))
			world.AddReservation(reservation.NewReservation(r.ID(), nil, blocker))
		}

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{Range: window})
		require.NoError(t, err)

		require.Len(t, views, queries.RecommendationLimit)
		for i := 1; i < len(views); i++ {
			assert.LessOrEqual(t, views[i-1].NightlyPriceCents, views[i].NightlyPriceCents)
		}
	})

	t.Run("expired holds never count against a room", func(t *testing.T) {
		world := fake.NewWorld()
		r := addRoom(t, world, "classic-101", room.ZoneBusiness, room.QualityClassic, room.StatusAvailable, 5000)
		window := mustRange(t, "2025-03-01", "2025-03-11")

		world.AddReservation(reservation.NewReservation(r.ID(), nil, mustRange(t, "2025-03-01", "2025-03-03")))
		addHold(t, world, r.ID(), mustRange(t, "2025-03-05", "2025-03-09"), uuid.New(), 5*time.Minute, baseTime.Add(-time.Hour))

		q := queries.NewRecommendationQueries(world, world, clk)
		views, err := q.FindRecommendedRooms(ctx, queries.AvailabilitySearch{Range: window})
		require.NoError(t, err)
		require.Len(t, views, 1, "only the 2 reserved nights count, 0.2 under threshold")
		assert.Equal(t, 8, views[0].AvailableNights)
	})
}
