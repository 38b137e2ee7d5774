//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"pluralink/internal/domain/booking"
	"pluralink/internal/handler/api"
	resdto "pluralink/internal/handler/dto/response"
	"pluralink/internal/usecase/commands"
	"pluralink/internal/usecase/queries"
	"pluralink/tests/common/httptest"
	commandsmock "pluralink/tests/mock/commands"
	queriesmock "pluralink/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReviewCommands
	mockQueries  *queriesmock.MockReviewQueries
	handler      *api.ReviewHandler
	actor        booking.Actor
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCommands, s.mockQueries)
	s.actor = booking.Actor{ID: uuid.New(), Type: booking.ActorClient}

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", s.actor)
		c.Next()
	}

	s.router.POST("/reviews", authMiddleware, s.handler.Submit)
	s.router.GET("/reviews/:id", s.handler.Get)
	s.router.GET("/users/:id/reviews", s.handler.ListByReviewee)
	s.router.GET("/users/:id/rating-stats", s.handler.RatingStats)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

func reviewView(id uuid.UUID) *queries.ReviewView {
	return &queries.ReviewView{
		ID:           id,
		BookingID:    uuid.New(),
		ReviewerID:   uuid.New(),
		ReviewerName: "Ada Client",
		ReviewerType: "client",
		RevieweeID:   uuid.New(),
		RevieweeName: "Bo Provider",
		RevieweeType: "provider",
		Rating:       5,
		Comment:      "Excellent service!",
		CreatedAt:    time.Now().UTC(),
	}
}

func (s *ReviewHandlerTestSuite) TestSubmit() {
	body := map[string]any{
		"booking_id": uuid.New().String(),
		"rating":     5,
		"comment":    "Excellent service!",
	}

	s.Run("success: returns 201 with the stored review", func() {
		reviewID := uuid.New()
		s.mockCommands.EXPECT().Submit(gomock.Any(), s.actor, gomock.Any()).
			Return(&commands.SubmitReviewResult{ReviewID: reviewID}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), reviewID).
			Return(reviewView(reviewID), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")

		var resp resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(reviewID, resp.ID)
		s.Equal(int32(5), resp.Rating)
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 without a booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", map[string]any{"rating": 5}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: domain errors map to status codes", func() {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"booking not completed", commands.ErrInvalidState, http.StatusConflict},
			{"already reviewed", commands.ErrDuplicateReview, http.StatusConflict},
			{"not a participant", commands.ErrForbidden, http.StatusForbidden},
			{"unknown booking", commands.ErrBookingNotFound, http.StatusNotFound},
			{"rating out of range", commands.ErrInvalidArgument, http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Submit(gomock.Any(), s.actor, gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reviews", body, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.status, "")
			})
		}
	})
}

func (s *ReviewHandlerTestSuite) TestGet() {
	s.Run("success: reviews are public", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(reviewView(id), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+id.String(), nil, "")

		var resp resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(id, resp.ID)
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid review ID format")
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, queries.ErrNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *ReviewHandlerTestSuite) TestListByReviewee() {
	revieweeID := uuid.New()

	s.Run("success: returns items and next cursor", func() {
		items := []*queries.ReviewListItem{
			{ID: uuid.New(), BookingID: uuid.New(), ReviewerName: "Ada Client", Rating: 4, CreatedAt: time.Now().UTC()},
		}
		next := &queries.Cursor{After: "opaque"}
		s.mockQueries.EXPECT().ListByReviewee(gomock.Any(), revieweeID, nil, 20).
			Return(items, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+revieweeID.String()+"/reviews", nil, "")

		var body struct {
			Reviews    []resdto.ReviewListItemResponse `json:"reviews"`
			NextCursor string                          `json:"next_cursor"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Reviews, 1)
		s.Equal("opaque", body.NextCursor)
	})

	s.Run("success: limit and cursor pass through", func() {
		s.mockQueries.EXPECT().ListByReviewee(gomock.Any(), revieweeID, &queries.Cursor{After: "abc"}, 5).
			Return(nil, nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/users/"+revieweeID.String()+"/reviews?limit=5&after=abc", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on a garbage cursor", func() {
		s.mockQueries.EXPECT().ListByReviewee(gomock.Any(), revieweeID, &queries.Cursor{After: "zzz"}, 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/users/"+revieweeID.String()+"/reviews?after=zzz", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *ReviewHandlerTestSuite) TestRatingStats() {
	s.Run("success: aggregates for a reviewee", func() {
		revieweeID := uuid.New()
		s.mockQueries.EXPECT().GetRevieweeRatingStats(gomock.Any(), revieweeID).
			Return(&queries.RevieweeRatingStats{RevieweeID: revieweeID, TotalReviews: 3, AverageRating: 4.5}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/"+revieweeID.String()+"/rating-stats", nil, "")

		var resp resdto.RatingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(int32(3), resp.TotalReviews)
		s.InDelta(4.5, resp.AverageRating, 0.001)
	})

	s.Run("error: 400 on malformed user id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/bad/rating-stats", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid user ID format")
	})
}
