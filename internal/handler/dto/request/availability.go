package request

import (
	"time"

	"pod-booking-core/internal/domain/room"
	"pod-booking-core/internal/domain/stay"
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilitySearchRequest carries the query-string form of an availability
// or recommendation search. Dates are calendar days; any time component is
// discarded by range normalization.
type AvailabilitySearchRequest struct {
	CheckIn  time.Time `form:"check_in" binding:"required" time_format:"2006-01-02"`
	CheckOut time.Time `form:"check_out" binding:"required" time_format:"2006-01-02"`
	Zone     *string   `form:"zone"`
	Quality  *string   `form:"quality"`
}

func (r AvailabilitySearchRequest) ToSearch(sessionID *uuid.UUID) (queries.AvailabilitySearch, error) {
	rng, err := stay.NewRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return queries.AvailabilitySearch{}, err
	}

	search := queries.AvailabilitySearch{
		Range:     rng,
		SessionID: sessionID,
	}
	if r.Zone != nil {
		z := room.Zone(*r.Zone)
		if !z.IsValid() {
			return queries.AvailabilitySearch{}, room.ErrInvalidZone
		}
		search.Zone = &z
	}
	if r.Quality != nil {
		q := room.Quality(*r.Quality)
		if !q.IsValid() {
			return queries.AvailabilitySearch{}, room.ErrInvalidQuality
		}
		search.Quality = &q
	}
	return search, nil
}
