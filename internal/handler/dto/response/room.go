package response

import (
	"pod-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID                uuid.UUID `json:"id"`
	Number            string    `json:"number"`
	Zone              string    `json:"zone"`
	Quality           string    `json:"quality"`
	Status            string    `json:"status"`
	NightlyPriceCents int32     `json:"nightlyPriceCents"`
}

type RecommendedRoomResponse struct {
	RoomResponse
	AvailableNights      int  `json:"availableNights"`
	TotalNights          int  `json:"totalNights"`
	AvailablePercent     int  `json:"availablePercent"`
	OutsideRequestedZone bool `json:"outsideRequestedZone"`
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	result := make([]*RoomResponse, len(views))
	for i, v := range views {
		r := &RoomResponse{}
		_ = copier.Copy(r, v)
		result[i] = r
	}
	return result
}

func FromRecommendedRoomViews(views []*queries.RecommendedRoomView) []*RecommendedRoomResponse {
	result := make([]*RecommendedRoomResponse, len(views))
	for i, v := range views {
		r := &RecommendedRoomResponse{}
		_ = copier.Copy(r, v)
		result[i] = r
	}
	return result
}
