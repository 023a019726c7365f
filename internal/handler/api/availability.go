package api

import (
	"net/http"

	reqdto "pod-booking-core/internal/handler/dto/request"
	resdto "pod-booking-core/internal/handler/dto/response"
	"pod-booking-core/internal/handler/middleware"
	"pod-booking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries   queries.AvailabilityQueries
	recommendationQueries queries.RecommendationQueries
}

func NewAvailabilityHandler(
	availabilityQueries queries.AvailabilityQueries,
	recommendationQueries queries.RecommendationQueries,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries:   availabilityQueries,
		recommendationQueries: recommendationQueries,
	}
}

// @Summary Search available rooms
// @Description List rooms free of reservations and competing holds over a date range
// @Tags rooms
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param zone query string false "Zone filter"
// @Param quality query string false "Quality filter"
// @Param X-Session-ID header string false "Session whose own holds are ignored"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/available [get]
func (h *AvailabilityHandler) SearchAvailable(c *gin.Context) {
	search, ok := h.bindSearch(c)
	if !ok {
		return
	}

	rooms, err := h.availabilityQueries.FindAvailableRooms(c.Request.Context(), search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}

// @Summary Suggest partially available rooms
// @Description List rooms mostly free over the range, as alternatives when the availability search comes up short
// @Tags rooms
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param zone query string false "Zone filter"
// @Param quality query string false "Quality filter"
// @Param X-Session-ID header string false "Session whose own holds are ignored"
// @Success 200 {array} resdto.RecommendedRoomResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/recommended [get]
func (h *AvailabilityHandler) SearchRecommended(c *gin.Context) {
	search, ok := h.bindSearch(c)
	if !ok {
		return
	}

	rooms, err := h.recommendationQueries.FindRecommendedRooms(c.Request.Context(), search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRecommendedRoomViews(rooms))
}

func (h *AvailabilityHandler) bindSearch(c *gin.Context) (queries.AvailabilitySearch, bool) {
	var req reqdto.AvailabilitySearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid search parameters",
		})
		return queries.AvailabilitySearch{}, false
	}

	var sessionID *uuid.UUID
	if id, ok := middleware.GetSessionID(c); ok {
		sessionID = &id
	}

	search, err := req.ToSearch(sessionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return queries.AvailabilitySearch{}, false
	}
	return search, true
}
