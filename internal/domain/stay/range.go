package stay

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("check-in must be before check-out")

// Range is a half-open date interval [checkIn, checkOut) at day granularity.
// The checkout day itself is not occupied. Both ends are normalized to
// midnight UTC so intraday timestamp drift can never produce a false
// non-overlap.
type Range struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewRange(checkIn, checkOut time.Time) (Range, error) {
	in := Midnight(checkIn)
	out := Midnight(checkOut)
	if !in.Before(out) {
		return Range{}, ErrInvalidRange
	}
	return Range{checkIn: in, checkOut: out}, nil
}

// Midnight truncates t to 00:00 UTC of its calendar day.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r Range) CheckIn() time.Time  { return r.checkIn }
func (r Range) CheckOut() time.Time { return r.checkOut }

func (r Range) IsZero() bool {
	return r.checkIn.IsZero() && r.checkOut.IsZero()
}

// Overlaps reports whether two half-open intervals share at least one night:
// a1 < b2 && b1 < a2.
func (r Range) Overlaps(other Range) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// Nights is the number of occupied nights, i.e. the day distance between
// check-in and check-out.
func (r Range) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// OverlapNights counts the nights of other that fall inside r, clipping
// other to r's window. Zero when the intervals are disjoint.
func (r Range) OverlapNights(other Range) int {
	start := r.checkIn
	if other.checkIn.After(start) {
		start = other.checkIn
	}
	end := r.checkOut
	if other.checkOut.Before(end) {
		end = other.checkOut
	}
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// ToDaterange renders the interval in Postgres daterange literal form.
func (r Range) ToDaterange() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format("2006-01-02"), r.checkOut.Format("2006-01-02"))
}
