//go:build unit

package hold_test

import (
	"testing"
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/domain/stay"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestHold(t *testing.T, ttl time.Duration) *hold.Hold {
	t.Helper()
	r, err := stay.NewRange(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	h, err := hold.NewHold(uuid.New(), r, uuid.New(), nil, ttl, now)
	require.NoError(t, err)
	return h
}

func TestNewHold(t *testing.T) {
	t.Run("starts in confirmation stage with expiry now+ttl", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)
		assert.Equal(t, hold.StageConfirmation, h.Stage())
		assert.Equal(t, now.Add(5*time.Minute), h.HoldExpiry())
		assert.False(t, h.Converted())
		assert.Nil(t, h.ReservationID())
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		r, err := stay.NewRange(
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		_, err = hold.NewHold(uuid.New(), r, uuid.New(), nil, 0, now)
		require.ErrorIs(t, err, hold.ErrInvalidTTL)

		_, err = hold.NewHold(uuid.New(), r, uuid.New(), nil, -time.Minute, now)
		require.ErrorIs(t, err, hold.ErrInvalidTTL)
	})
}

func TestHoldActivity(t *testing.T) {
	t.Run("active before expiry, inert at and after expiry", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)
		assert.True(t, h.ActiveAt(now))
		assert.True(t, h.ActiveAt(now.Add(5*time.Minute-time.Second)))
		assert.False(t, h.ActiveAt(now.Add(5*time.Minute)))
		assert.False(t, h.ActiveAt(now.Add(time.Hour)))
	})

	t.Run("converted hold never contends even before expiry", func(t *testing.T) {
		h := newTestHold(t, time.Hour)
		require.NoError(t, h.MarkConverted(uuid.New()))
		assert.False(t, h.ActiveAt(now))
	})

	t.Run("blocks only overlapping ranges while active", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)

		overlapping, err := stay.NewRange(
			time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)
		disjoint, err := stay.NewRange(
			time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 22, 0, 0, 0, 0, time.UTC),
		)
		require.NoError(t, err)

		assert.True(t, h.BlocksAt(now, overlapping))
		assert.False(t, h.BlocksAt(now, disjoint))
		assert.False(t, h.BlocksAt(now.Add(time.Hour), overlapping), "expired hold must not block")
	})
}

func TestHoldTransitions(t *testing.T) {
	t.Run("advance to payment refreshes stage and expiry", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)
		newExpiry := now.Add(10 * time.Minute)

		require.NoError(t, h.AdvanceToPayment(newExpiry))
		assert.Equal(t, hold.StagePayment, h.Stage())
		assert.Equal(t, newExpiry, h.HoldExpiry())

		// advancing again is idempotent on stage
		later := now.Add(12 * time.Minute)
		require.NoError(t, h.AdvanceToPayment(later))
		assert.Equal(t, hold.StagePayment, h.Stage())
		assert.Equal(t, later, h.HoldExpiry())
	})

	t.Run("extend keeps stage", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)
		require.NoError(t, h.Extend(now.Add(8*time.Minute)))
		assert.Equal(t, hold.StageConfirmation, h.Stage())
		assert.Equal(t, now.Add(8*time.Minute), h.HoldExpiry())
	})

	t.Run("conversion is terminal", func(t *testing.T) {
		h := newTestHold(t, 5*time.Minute)
		resID := uuid.New()

		require.NoError(t, h.MarkConverted(resID))
		assert.True(t, h.Converted())
		require.NotNil(t, h.ReservationID())
		assert.Equal(t, resID, *h.ReservationID())

		assert.ErrorIs(t, h.MarkConverted(uuid.New()), hold.ErrAlreadyConverted)
		assert.ErrorIs(t, h.AdvanceToPayment(now.Add(time.Hour)), hold.ErrAlreadyConverted)
		assert.ErrorIs(t, h.Extend(now.Add(time.Hour)), hold.ErrAlreadyConverted)
	})
}
