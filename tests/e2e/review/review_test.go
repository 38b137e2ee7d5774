//go:build e2e

package review_test

import (
	"fmt"
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

const (
	reviewsURL     = "/api/reviews"
	userReviewsURL = "/api/users/%s/reviews"
	ratingStatsURL = "/api/users/%s/rating-stats"
)

type ReviewSuite struct {
	e2e.SharedSuite
	auth *helper.JWTTestHelper
}

func (s *ReviewSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.auth = helper.NewJWTTestHelper(s.Config.JWT)
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

type reviewFixture struct {
	clientID      uuid.UUID
	clientToken   string
	providerID    uuid.UUID
	providerToken string
	bookingID     uuid.UUID
}

// seedCompletedBooking creates both parties and a completed appointment from
// yesterday, which is the precondition for submitting a review.
func (s *ReviewSuite) seedCompletedBooking(t *testing.T) reviewFixture {
	t.Helper()

	var f reviewFixture
	f.providerID, f.providerToken = s.auth.CreateUserWithToken(t, s.DB, "provider@example.com", booking.ActorProvider)
	f.clientID, f.clientToken = s.auth.CreateUserWithToken(t, s.DB, "client@example.com", booking.ActorClient)
	serviceID := dbtest.CreateTestService(t, s.DB, f.providerID, "Deep Clean", 60)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	f.bookingID = dbtest.CreateTestBooking(t, s.DB, f.clientID, f.providerID, serviceID,
		yesterday, 10*60, 11*60, "completed")

	return f
}

func (s *ReviewSuite) TestSubmitReview() {
	s.Run("Normal case: client reviews the provider", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID,
			Rating:    5,
			Comment:   "Excellent service!",
		}, f.clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ReviewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		expected := response.ReviewResponse{
			BookingID:    f.bookingID,
			ReviewerID:   f.clientID,
			ReviewerName: "client",
			ReviewerType: "client",
			RevieweeID:   f.providerID,
			RevieweeName: "provider",
			RevieweeType: "provider",
			Rating:       5,
			Comment:      "Excellent service!",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReviewResponse{}, "ID", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, created, opts...); diff != "" {
			t.Errorf("review response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: provider reviews the client on the same booking", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID, Rating: 5,
		}, f.clientToken)
		require.Equal(t, http.StatusCreated, cw.Code)

		pw := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID, Rating: 4, Comment: "Punctual and friendly",
		}, f.providerToken)
		require.Equal(t, http.StatusCreated, pw.Code, pw.Body.String())

		var created response.ReviewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, pw.Body, &created))
		require.Equal(t, f.clientID, created.RevieweeID)
	})

	s.Run("Error case: second review from the same side is rejected", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID, Rating: 4,
		}, f.clientToken)
		require.Equal(t, http.StatusCreated, w1.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID, Rating: 2,
		}, f.clientToken)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("Error case: a booking that is not completed cannot be reviewed", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		serviceID := dbtest.CreateTestService(t, s.DB, f.providerID, "Quick Fix", 30)
		future := time.Now().UTC().AddDate(0, 0, 7)
		pendingID := dbtest.CreateTestBooking(t, s.DB, f.clientID, f.providerID, serviceID,
			future, 9*60, 10*60, "pending")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: pendingID, Rating: 3,
		}, f.clientToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: an outsider cannot review the booking", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		_, outsiderToken := s.auth.CreateUserWithToken(t, s.DB, "outsider@example.com", booking.ActorClient)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
			BookingID: f.bookingID, Rating: 1,
		}, outsiderToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *ReviewSuite) TestRevieweeListing() {
	s.Run("Normal case: received reviews list newest first with stats", func() {
		t := s.T()
		f := s.seedCompletedBooking(t)

		serviceID := dbtest.CreateTestService(t, s.DB, f.providerID, "Quick Fix", 30)
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		secondBooking := dbtest.CreateTestBooking(t, s.DB, f.clientID, f.providerID, serviceID,
			yesterday, 12*60, 13*60, "completed")

		for _, rev := range []struct {
			bookingID uuid.UUID
			rating    int
		}{
			{f.bookingID, 5},
			{secondBooking, 3},
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, request.SubmitReviewRequest{
				BookingID: rev.bookingID, Rating: rev.rating,
			}, f.clientToken)
			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		}

		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(userReviewsURL, f.providerID), nil, "")
		require.Equal(t, http.StatusOK, lw.Code)

		var listed struct {
			Reviews []response.ReviewListItemResponse `json:"reviews"`
		}
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Len(t, listed.Reviews, 2)

		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(ratingStatsURL, f.providerID), nil, "")
		require.Equal(t, http.StatusOK, sw.Code)

		var stats response.RatingStatsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &stats))
		require.Equal(t, int32(2), stats.TotalReviews)
		require.InDelta(t, 4.0, stats.AverageRating, 0.001)
	})

	s.Run("Normal case: a user with no reviews has empty stats", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "fresh@example.com", "provider")

		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(ratingStatsURL, userID), nil, "")
		require.Equal(t, http.StatusOK, sw.Code)

		var stats response.RatingStatsResponse
		require.NoError(t, httptest.DecodeResponseBody(t, sw.Body, &stats))
		require.Equal(t, int32(0), stats.TotalReviews)
	})
}
