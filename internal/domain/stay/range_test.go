//go:build unit

package stay_test

import (
	"testing"
	"time"

	"pod-booking-core/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestNewRange(t *testing.T) {
	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := stay.NewRange(day("2025-03-03"), day("2025-03-01"))
		require.ErrorIs(t, err, stay.ErrInvalidRange)
	})

	t.Run("rejects zero-night range", func(t *testing.T) {
		_, err := stay.NewRange(day("2025-03-01"), day("2025-03-01"))
		require.ErrorIs(t, err, stay.ErrInvalidRange)
	})

	t.Run("normalizes intraday timestamps to midnight UTC", func(t *testing.T) {
		in := time.Date(2025, 3, 1, 14, 30, 12, 0, time.UTC)
		out := time.Date(2025, 3, 3, 9, 5, 0, 0, time.UTC)
		r, err := stay.NewRange(in, out)
		require.NoError(t, err)
		assert.Equal(t, day("2025-03-01"), r.CheckIn())
		assert.Equal(t, day("2025-03-03"), r.CheckOut())
	})
}

func TestRangeOverlaps(t *testing.T) {
	base := mustRange(t, "2025-03-10", "2025-03-15")

	cases := []struct {
		name    string
		in, out string
		want    bool
	}{
		{"identical", "2025-03-10", "2025-03-15", true},
		{"contained", "2025-03-11", "2025-03-13", true},
		{"containing", "2025-03-08", "2025-03-20", true},
		{"overlap left edge", "2025-03-08", "2025-03-11", true},
		{"overlap right edge", "2025-03-14", "2025-03-18", true},
		{"single shared night", "2025-03-14", "2025-03-15", true},
		{"back to back before (checkout = checkin)", "2025-03-05", "2025-03-10", false},
		{"back to back after (checkin = checkout)", "2025-03-15", "2025-03-20", false},
		{"fully before", "2025-03-01", "2025-03-05", false},
		{"fully after", "2025-03-20", "2025-03-25", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			other := mustRange(t, c.in, c.out)
			assert.Equal(t, c.want, base.Overlaps(other))
			assert.Equal(t, c.want, other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestRangeNights(t *testing.T) {
	assert.Equal(t, 1, mustRange(t, "2025-03-01", "2025-03-02").Nights())
	assert.Equal(t, 5, mustRange(t, "2025-03-10", "2025-03-15").Nights())
}

func TestRangeOverlapNights(t *testing.T) {
	window := mustRange(t, "2025-03-10", "2025-03-15")

	cases := []struct {
		name    string
		in, out string
		want    int
	}{
		{"disjoint", "2025-03-01", "2025-03-05", 0},
		{"adjacent", "2025-03-05", "2025-03-10", 0},
		{"clipped left", "2025-03-08", "2025-03-12", 2},
		{"clipped right", "2025-03-13", "2025-03-20", 2},
		{"contained", "2025-03-11", "2025-03-13", 2},
		{"covers window", "2025-03-01", "2025-03-31", 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			blocker := mustRange(t, c.in, c.out)
			assert.Equal(t, c.want, window.OverlapNights(blocker))
		})
	}
}

func TestRangeToDaterange(t *testing.T) {
	r := mustRange(t, "2025-03-01", "2025-03-03")
	assert.Equal(t, "[2025-03-01,2025-03-03)", r.ToDaterange())
}
