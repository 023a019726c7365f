package api

import (
	"errors"
	"net/http"

	reqdto "pod-booking-core/internal/handler/dto/request"
	resdto "pod-booking-core/internal/handler/dto/response"
	"pod-booking-core/internal/handler/middleware"
	"pod-booking-core/internal/usecase/commands"
	"pod-booking-core/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holdCommands commands.HoldCommands
	holdQueries  queries.HoldQueries
}

func NewHoldHandler(holdCommands commands.HoldCommands, holdQueries queries.HoldQueries) *HoldHandler {
	return &HoldHandler{
		holdCommands: holdCommands,
		holdQueries:  holdQueries,
	}
}

// @Summary Create hold
// @Description Place a temporary soft-lock on a room for a date range
// @Tags holds
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "Browsing session ID"
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.RequestHoldParams{
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		SessionID: sessionID,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		params.UserID = &userID
	}

	created, err := h.holdCommands.RequestHold(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStayRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-in must be before check-out",
			})
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrRoomUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room is not available for the requested dates",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHold(created))
}

// @Summary List session holds
// @Description List the current session's holds
// @Tags holds
// @Produce json
// @Param X-Session-ID header string true "Browsing session ID"
// @Param active query bool false "Only holds still contending for their room"
// @Success 200 {array} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Router /holds [get]
func (h *HoldHandler) ListHolds(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	activeOnly := c.Query("active") == "true"

	views, err := h.holdQueries.ListBySession(c.Request.Context(), sessionID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldViews(views))
}

// @Summary Advance hold to payment
// @Description Move a confirmation-stage hold into the payment stage with a longer expiry
// @Tags holds
// @Produce json
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id}/payment [post]
func (h *HoldHandler) AdvanceToPayment(c *gin.Context) {
	holdID, ok := h.holdIDParam(c)
	if !ok {
		return
	}

	extended, err := h.holdCommands.ExtendToPayment(c.Request.Context(), holdID)
	if err != nil {
		h.abortLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(extended))
}

// @Summary Confirm booking
// @Description Commit a reservation for the held room and retire the hold
// @Tags holds
// @Produce json
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id}/confirm [post]
func (h *HoldHandler) ConfirmBooking(c *gin.Context) {
	holdID, ok := h.holdIDParam(c)
	if !ok {
		return
	}

	confirmed, err := h.holdCommands.ConfirmBooking(c.Request.Context(), holdID)
	if err != nil {
		if errors.Is(err, commands.ErrReservationConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room was booked by another session",
			})
			return
		}
		h.abortLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(confirmed))
}

// @Summary Convert hold
// @Description Link a hold to a reservation committed by an external flow
// @Tags holds
// @Accept json
// @Produce json
// @Param id path string true "Hold ID"
// @Param request body reqdto.ConvertHoldRequest true "Committed reservation"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id}/convert [post]
func (h *HoldHandler) ConvertHold(c *gin.Context) {
	holdID, ok := h.holdIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ConvertHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	converted, err := h.holdCommands.Convert(c.Request.Context(), holdID, req.ReservationID)
	if err != nil {
		h.abortLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromHold(converted))
}

// @Summary Release hold
// @Description Delete a hold; releasing an unknown hold succeeds
// @Tags holds
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /holds/{id} [delete]
func (h *HoldHandler) ReleaseHold(c *gin.Context) {
	holdID, ok := h.holdIDParam(c)
	if !ok {
		return
	}

	if err := h.holdCommands.Release(c.Request.Context(), holdID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Abandon session
// @Description Release every hold of the current session
// @Tags holds
// @Produce json
// @Param X-Session-ID header string true "Browsing session ID"
// @Success 200 {object} resdto.ReleasedResponse
// @Failure 400 {object} map[string]string
// @Router /holds [delete]
func (h *HoldHandler) AbandonSession(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	released, err := h.holdCommands.Abandon(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.ReleasedResponse{Released: released})
}

// @Summary Sweep expired holds
// @Description Purge expired unconverted holds; a maintenance endpoint, correctness never depends on it
// @Tags holds
// @Produce json
// @Success 200 {object} resdto.SweptResponse
// @Router /holds/sweep [post]
func (h *HoldHandler) SweepHolds(c *gin.Context) {
	purged, err := h.holdCommands.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.SweptResponse{Purged: purged})
}

func (h *HoldHandler) holdIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *HoldHandler) abortLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrHoldNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Hold not found or expired",
		})
	case errors.Is(err, commands.ErrHoldAlreadyConverted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Hold is already converted",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
