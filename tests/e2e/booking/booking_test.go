//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/handler/dto/request"
	"pluralink/internal/handler/dto/response"
	"pluralink/tests/common/dbtest"
	"pluralink/tests/common/httptest"
	"pluralink/tests/e2e"
	"pluralink/tests/e2e/common/helper"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const bookingsURL = "/api/bookings"

type BookingSuite struct {
	e2e.SharedSuite
	auth *helper.JWTTestHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.auth = helper.NewJWTTestHelper(s.Config.JWT)
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

type marketplace struct {
	clientID      uuid.UUID
	clientToken   string
	providerID    uuid.UUID
	providerToken string
	serviceID     uuid.UUID
	date          string
	weekday       int
}

// seedMarketplace creates a provider open 09:00-17:00 on the weekday one week
// from now, a 60-minute service, and a client.
func (s *BookingSuite) seedMarketplace(t *testing.T) marketplace {
	t.Helper()

	day := time.Now().UTC().AddDate(0, 0, 7)
	m := marketplace{
		date:    day.Format("2006-01-02"),
		weekday: int(day.Weekday()),
	}

	m.providerID, m.providerToken = s.auth.CreateUserWithToken(t, s.DB, "provider@example.com", booking.ActorProvider)
	m.clientID, m.clientToken = s.auth.CreateUserWithToken(t, s.DB, "client@example.com", booking.ActorClient)
	m.serviceID = dbtest.CreateTestService(t, s.DB, m.providerID, "Deep Clean", 60)
	dbtest.CreateTestRule(t, s.DB, m.providerID, m.weekday, 9*60, 17*60, true)

	return m
}

func (s *BookingSuite) createBooking(t *testing.T, m marketplace, startTime string) response.BookingResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
		ProviderID: m.providerID,
		ServiceID:  m.serviceID,
		Date:       m.date,
		StartTime:  startTime,
		Notes:      "First visit",
	}, m.clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: client books a free slot", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		created := s.createBooking(t, m, "10:00")

		expected := response.BookingResponse{
			ClientID:     m.clientID,
			ClientName:   "client",
			ProviderID:   m.providerID,
			ProviderName: "provider",
			ServiceID:    m.serviceID,
			ServiceName:  "Deep Clean",
			Date:         m.date,
			Slot:         "10:00-11:00",
			Status:       "pending",
			Notes:        "First visit",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, created, opts...); diff != "" {
			t.Errorf("booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: overlapping slot is rejected", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		s.createBooking(t, m, "10:00")

		_, otherToken := s.auth.CreateUserWithToken(t, s.DB, "client2@example.com", booking.ActorClient)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			ProviderID: m.providerID,
			ServiceID:  m.serviceID,
			Date:       m.date,
			StartTime:  "10:30",
		}, otherToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: slot outside availability is rejected", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			ProviderID: m.providerID,
			ServiceID:  m.serviceID,
			Date:       m.date,
			StartTime:  "18:00",
		}, m.clientToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: unauthenticated request is rejected", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			ProviderID: m.providerID,
			ServiceID:  m.serviceID,
			Date:       m.date,
			StartTime:  "10:00",
		}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		expired := s.auth.CreateExpiredToken(t, m.clientID, booking.ActorClient)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			ProviderID: m.providerID,
			ServiceID:  m.serviceID,
			Date:       m.date,
			StartTime:  "10:00",
		}, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *BookingSuite) TestLifecycle() {
	s.Run("Normal case: provider confirms, client sees the new status", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/confirm", nil, m.providerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, m.clientToken)
		require.Equal(t, http.StatusOK, gw.Code)

		var fetched response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &fetched))
		require.Equal(t, "confirmed", fetched.Status)
	})

	s.Run("Error case: client cannot confirm", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/confirm", nil, m.clientToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Normal case: either party can cancel a live booking", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/cancel", nil, m.providerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		// The slot is free again for another client.
		_, otherToken := s.auth.CreateUserWithToken(t, s.DB, "client3@example.com", booking.ActorClient)
		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, request.CreateBookingRequest{
			ProviderID: m.providerID,
			ServiceID:  m.serviceID,
			Date:       m.date,
			StartTime:  "10:00",
		}, otherToken)
		require.Equal(t, http.StatusCreated, rw.Code, rw.Body.String())
	})

	s.Run("Normal case: provider completes a past confirmed booking", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		pastID := dbtest.CreateTestBooking(t, s.DB, m.clientID, m.providerID, m.serviceID,
			yesterday, 10*60, 11*60, "confirmed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+pastID.String()+"/complete", nil, m.providerToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("Error case: completing before the appointment ends fails", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/confirm", nil, m.providerToken)
		require.Equal(t, http.StatusNoContent, cw.Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/complete", nil, m.providerToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: cancelling a completed booking fails", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		pastID := dbtest.CreateTestBooking(t, s.DB, m.clientID, m.providerID, m.serviceID,
			yesterday, 10*60, 11*60, "completed")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+pastID.String()+"/cancel", nil, m.clientToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestReschedule() {
	s.Run("Normal case: reschedule links a replacement booking", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/reschedule",
			request.RescheduleBookingRequest{Date: m.date, StartTime: "14:00"}, m.clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var next response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &next))
		require.NotEqual(t, created.ID, next.ID)
		require.Equal(t, "pending", next.Status)
		require.Equal(t, "14:00-15:00", next.Slot)
		require.NotNil(t, next.PreviousBookingID)
		require.Equal(t, created.ID, *next.PreviousBookingID)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, m.clientToken)
		require.Equal(t, http.StatusOK, gw.Code)
		var old response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &old))
		require.Equal(t, "rescheduled", old.Status)
	})

	s.Run("Normal case: rescheduling to the same slot keeps it", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/reschedule",
			request.RescheduleBookingRequest{Date: m.date, StartTime: "10:00"}, m.clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: provider cannot reschedule", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/reschedule",
			request.RescheduleBookingRequest{Date: m.date, StartTime: "14:00"}, m.providerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *BookingSuite) TestList() {
	s.Run("Normal case: cursor pagination walks the client's bookings", func() {
		t := s.T()
		m := s.seedMarketplace(t)

		for _, start := range []string{"09:00", "10:00", "11:00"} {
			s.createBooking(t, m, start)
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2", nil, m.clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page1 struct {
			Bookings   []response.BookingListResponse `json:"bookings"`
			NextCursor string                         `json:"next_cursor"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page1))
		require.Len(t, page1.Bookings, 2)
		require.NotEmpty(t, page1.NextCursor)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2&after="+page1.NextCursor, nil, m.clientToken)
		require.Equal(t, http.StatusOK, w2.Code, w2.Body.String())

		var page2 struct {
			Bookings   []response.BookingListResponse `json:"bookings"`
			NextCursor string                         `json:"next_cursor"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &page2))
		require.Len(t, page2.Bookings, 1)
		require.Empty(t, page2.NextCursor)

		seen := map[uuid.UUID]bool{}
		for _, b := range append(page1.Bookings, page2.Bookings...) {
			require.False(t, seen[b.ID], "booking %s appeared twice", b.ID)
			seen[b.ID] = true
		}
	})

	s.Run("Normal case: status filter narrows the list", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")
		s.createBooking(t, m, "12:00")

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL+"/"+created.ID.String()+"/confirm", nil, m.providerToken)
		require.Equal(t, http.StatusNoContent, cw.Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?status=confirmed", nil, m.clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var page struct {
			Bookings []response.BookingListResponse `json:"bookings"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &page))
		require.Len(t, page.Bookings, 1)
		require.Equal(t, created.ID, page.Bookings[0].ID)
	})

	s.Run("Error case: a stranger cannot read someone else's booking", func() {
		t := s.T()
		m := s.seedMarketplace(t)
		created := s.createBooking(t, m, "10:00")

		strangerID := uuid.New()
		strangerToken := s.auth.GenerateToken(t, strangerID, booking.ActorClient)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"/"+created.ID.String(), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
