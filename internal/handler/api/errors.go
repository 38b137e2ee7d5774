package api

import (
	"errors"
	"net/http"

	"pluralink/internal/handler/httperr"
	"pluralink/internal/pkg/errs"
	"pluralink/internal/usecase/commands"
	"pluralink/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// Only reachable when a route skips RequireAuth by mistake.
var errMissingActor = errs.New("actor missing from request context")

// abortDomainErr translates usecase sentinels into HTTP statuses. Anything
// unmarked is an infrastructure failure and stays opaque to the caller.
func abortDomainErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound),
		errors.Is(err, commands.ErrRuleNotFound),
		errors.Is(err, commands.ErrUnknownService),
		errors.Is(err, commands.ErrUnknownProvider),
		errors.Is(err, queries.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found")

	case errors.Is(err, commands.ErrForbidden),
		errors.Is(err, queries.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Operation not allowed")

	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is not available")

	case errors.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking state does not allow this operation")

	case errors.Is(err, commands.ErrRuleOverlap):
		httperr.AbortWithError(c, http.StatusConflict, err, "Rule overlaps an existing availability rule")

	case errors.Is(err, commands.ErrDuplicateReview):
		httperr.AbortWithError(c, http.StatusConflict, err, "Review already submitted")

	case errors.Is(err, commands.ErrTooEarly):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Appointment has not ended yet")

	case errors.Is(err, commands.ErrInvalidArgument),
		errors.Is(err, queries.ErrInvalidCursor),
		errors.Is(err, queries.ErrInvalidFilter):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request")

	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}
