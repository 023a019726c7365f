package response

import (
	"time"

	"pod-booking-core/internal/domain/hold"
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HoldResponse struct {
	ID            uuid.UUID  `json:"id"`
	RoomID        uuid.UUID  `json:"roomId"`
	RoomNumber    string     `json:"roomNumber,omitempty"`
	CheckIn       time.Time  `json:"checkIn"`
	CheckOut      time.Time  `json:"checkOut"`
	SessionID     uuid.UUID  `json:"sessionId"`
	UserID        *uuid.UUID `json:"userId,omitempty"`
	Stage         string     `json:"stage"`
	HoldExpiry    time.Time  `json:"holdExpiry"`
	Converted     bool       `json:"converted"`
	ReservationID *uuid.UUID `json:"reservationId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type ReleasedResponse struct {
	Released int64 `json:"released"`
}

type SweptResponse struct {
	Purged int64 `json:"purged"`
}

func FromHold(h *hold.Hold) *HoldResponse {
	return &HoldResponse{
		ID:            h.ID(),
		RoomID:        h.RoomID(),
		CheckIn:       h.StayRange().CheckIn(),
		CheckOut:      h.StayRange().CheckOut(),
		SessionID:     h.SessionID(),
		UserID:        h.UserID(),
		Stage:         h.Stage().String(),
		HoldExpiry:    h.HoldExpiry(),
		Converted:     h.Converted(),
		ReservationID: h.ReservationID(),
		CreatedAt:     h.CreatedAt(),
	}
}

func FromHoldViews(views []*queries.HoldView) []*HoldResponse {
	result := make([]*HoldResponse, len(views))
	for i, v := range views {
		r := &HoldResponse{}
		_ = copier.Copy(r, v)
		result[i] = r
	}
	return result
}
