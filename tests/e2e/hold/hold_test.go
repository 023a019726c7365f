//go:build e2e

package hold_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"pod-booking-core/internal/handler/dto/response"
	"pod-booking-core/tests/common/dbtest"
	"pod-booking-core/tests/common/httptest"
	"pod-booking-core/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	availableURL   = "/api/rooms/available?check_in=%s&check_out=%s"
	recommendedURL = "/api/rooms/recommended?check_in=%s&check_out=%s"
	holdsURL       = "/api/holds"
)

type HoldSuite struct {
	e2e.SharedSuite
}

func TestHoldSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(HoldSuite))
}

func (s *HoldSuite) createHold(t *testing.T, sessionID uuid.UUID, room string, checkIn, checkOut string) (*response.HoldResponse, int) {
	t.Helper()
	body := map[string]any{
		"room_id":   dbtest.SeedRoomIDs[room].String(),
		"check_in":  checkIn + "T00:00:00Z",
		"check_out": checkOut + "T00:00:00Z",
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL, body, sessionID.String())
	if w.Code != http.StatusCreated {
		return nil, w.Code
	}
	var created response.HoldResponse
	httptest.DecodeResponseBody(t, w.Body, &created)
	return &created, w.Code
}

func (s *HoldSuite) availableRooms(t *testing.T, sessionID *uuid.UUID, checkIn, checkOut string) []response.RoomResponse {
	t.Helper()
	session := ""
	if sessionID != nil {
		session = sessionID.String()
	}
	url := fmt.Sprintf(availableURL, checkIn, checkOut)
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, session)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []response.RoomResponse
	httptest.DecodeResponseBody(t, w.Body, &rooms)
	return rooms
}

func roomNumbers(rooms []response.RoomResponse) []string {
	numbers := make([]string, len(rooms))
	for i, r := range rooms {
		numbers[i] = r.Number
	}
	return numbers
}

// =============================================================================
// TestHoldLifecycle - hold creation through booking confirmation
// =============================================================================

func (s *HoldSuite) TestHoldLifecycle() {
	s.Run("full funnel: hold, payment, confirm", func() {
		t := s.T()
		sessionA := uuid.New()
		sessionB := uuid.New()

		// Fresh inventory: every available room, cheapest first, no maintenance.
		wantRooms := []string{"classic-101", "w-301", "classic-102", "b-401", "deluxe-201"}
		gotRooms := roomNumbers(s.availableRooms(t, &sessionB, "2025-03-01", "2025-03-03"))
		require.Empty(t, cmp.Diff(wantRooms, gotRooms, cmpopts.EquateEmpty()))

		created, code := s.createHold(t, sessionA, "classic-101", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, "confirmation", created.Stage)

		// Held room vanishes for other sessions but not for the holder.
		require.NotContains(t, roomNumbers(s.availableRooms(t, &sessionB, "2025-03-01", "2025-03-03")), "classic-101")
		require.Contains(t, roomNumbers(s.availableRooms(t, &sessionA, "2025-03-01", "2025-03-03")), "classic-101")

		// Competing hold on the same dates is rejected.
		_, code = s.createHold(t, sessionB, "classic-101", "2025-03-02", "2025-03-04")
		require.Equal(t, http.StatusConflict, code)

		// Advance to payment: stage changes and expiry grows.
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/payment", nil, sessionA.String())
		var paid response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
		require.Equal(t, "payment", paid.Stage)
		require.True(t, paid.HoldExpiry.After(created.HoldExpiry))

		// Confirm: reservation committed, hold converted.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/confirm", nil, sessionA.String())
		var confirmed response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.True(t, confirmed.Converted)
		require.NotNil(t, confirmed.ReservationID)

		var status string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM reservations WHERE id = $1", *confirmed.ReservationID).Scan(&status)
		require.NoError(t, err)
		require.Equal(t, "confirmed", status)

		// Now the room is gone for everyone, holder included.
		require.NotContains(t, roomNumbers(s.availableRooms(t, &sessionA, "2025-03-01", "2025-03-03")), "classic-101")

		// Adjacent dates stay bookable: checkout day is not occupied.
		_, code = s.createHold(t, sessionB, "classic-101", "2025-03-03", "2025-03-05")
		require.Equal(t, http.StatusCreated, code)
	})

	s.Run("maintenance room is never bookable", func() {
		t := s.T()
		_, code := s.createHold(t, uuid.New(), "maint-501", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusConflict, code)
	})

	s.Run("reservation blocks holds even after the winning hold is gone", func() {
		t := s.T()
		sessionA := uuid.New()

		created, code := s.createHold(t, sessionA, "classic-102", "2025-04-01", "2025-04-05")
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/confirm", nil, sessionA.String())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		_, code = s.createHold(t, uuid.New(), "classic-102", "2025-04-03", "2025-04-06")
		require.Equal(t, http.StatusConflict, code)
	})
}

// =============================================================================
// TestExpiry - expired holds are invisible before any sweep runs
// =============================================================================

func (s *HoldSuite) TestExpiry() {
	s.Run("expired hold frees the room without a sweep", func() {
		t := s.T()
		sessionA := uuid.New()
		sessionB := uuid.New()

		created, code := s.createHold(t, sessionA, "classic-101", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)

		// Force the hold into the past instead of waiting out the TTL.
		_, err := s.DB.Exec(context.Background(),
			"UPDATE holds SET hold_expiry = $1 WHERE id = $2",
			time.Now().UTC().Add(-time.Minute), created.ID)
		require.NoError(t, err)

		require.Contains(t, roomNumbers(s.availableRooms(t, &sessionB, "2025-03-01", "2025-03-03")), "classic-101")

		// Active listing hides it, full listing still shows it.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, holdsURL+"?active=true", nil, sessionA.String())
		var active []response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &active)
		require.Empty(t, active)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, holdsURL, nil, sessionA.String())
		var all []response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &all)
		require.Len(t, all, 1)

		// Extending an expired hold fails as if it were already purged.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/payment", nil, sessionA.String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "")

		// Sweep compacts it away; converted holds would survive.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/sweep", nil, "")
		var swept response.SweptResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &swept)
		require.Equal(t, int64(1), swept.Purged)
	})

	s.Run("sweep keeps converted holds", func() {
		t := s.T()
		sessionA := uuid.New()

		created, code := s.createHold(t, sessionA, "classic-101", "2025-05-01", "2025-05-03")
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/confirm", nil, sessionA.String())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE holds SET hold_expiry = $1 WHERE id = $2",
			time.Now().UTC().Add(-time.Minute), created.ID)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/sweep", nil, "")
		var swept response.SweptResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &swept)
		require.Equal(t, int64(0), swept.Purged)

		var count int
		require.NoError(t, s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM holds WHERE id = $1", created.ID).Scan(&count))
		require.Equal(t, 1, count, "converted hold kept as audit trail")
	})
}

// =============================================================================
// TestAbandonAndRelease
// =============================================================================

func (s *HoldSuite) TestAbandonAndRelease() {
	s.Run("abandon releases only the session's holds", func() {
		t := s.T()
		sessionA := uuid.New()
		sessionB := uuid.New()

		_, code := s.createHold(t, sessionA, "classic-101", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)
		_, code = s.createHold(t, sessionA, "classic-102", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)
		other, code := s.createHold(t, sessionB, "b-401", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, holdsURL, nil, sessionA.String())
		var released response.ReleasedResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &released)
		require.Equal(t, int64(2), released.Released)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, holdsURL, nil, sessionB.String())
		var remaining []response.HoldResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &remaining)
		require.Len(t, remaining, 1)
		require.Equal(t, other.ID, remaining[0].ID)
	})

	s.Run("release is idempotent over HTTP", func() {
		t := s.T()
		sessionA := uuid.New()

		created, code := s.createHold(t, sessionA, "classic-101", "2025-03-01", "2025-03-03")
		require.Equal(t, http.StatusCreated, code)

		for range 2 {
			w := httptest.PerformRequest(t, s.Router, http.MethodDelete, holdsURL+"/"+created.ID.String(), nil, sessionA.String())
			require.Equal(t, http.StatusNoContent, w.Code)
		}
	})
}

// =============================================================================
// TestRecommendations
// =============================================================================

func (s *HoldSuite) TestRecommendations() {
	s.Run("partially blocked room is suggested with availability share", func() {
		t := s.T()
		sessionA := uuid.New()

		// Block 3 of 10 nights on classic-101.
		created, code := s.createHold(t, sessionA, "classic-101", "2025-03-02", "2025-03-05")
		require.Equal(t, http.StatusCreated, code)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, holdsURL+"/"+created.ID.String()+"/confirm", nil, sessionA.String())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		url := fmt.Sprintf(recommendedURL, "2025-03-01", "2025-03-11")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")

		var recommended []response.RecommendedRoomResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &recommended)
		require.Len(t, recommended, 1, "fully free rooms are not suggested")
		require.Equal(t, "classic-101", recommended[0].Number)
		require.Equal(t, 7, recommended[0].AvailableNights)
		require.Equal(t, 70, recommended[0].AvailablePercent)
	})
}
