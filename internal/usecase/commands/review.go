package commands

import (
	"context"

	"pluralink/internal/domain/booking"
	domreview "pluralink/internal/domain/review"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/errs"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDuplicateReview = errs.New("review already submitted for this booking")

type SubmitReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type SubmitReviewResult struct {
	ReviewID uuid.UUID
}

type ReviewCommands interface {
	Submit(ctx context.Context, actor booking.Actor, req SubmitReviewRequest) (*SubmitReviewResult, error)
}

type reviewUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewReviewUseCase(uow shared.UnitOfWork) ReviewCommands {
	return &reviewUseCaseImpl{uow: uow}
}

// Submit records one review per booking side. The reviewee is always the
// booking's counter-party; callers never name it. The unique index on
// (booking_id, reviewer_type) backs the duplicate check under concurrency.
func (uc *reviewUseCaseImpl) Submit(ctx context.Context, actor booking.Actor, req SubmitReviewRequest) (*SubmitReviewResult, error) {
	rating, err := domreview.NewRating(req.Rating)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidArgument)
	}
	comment, err := domreview.NewComment(req.Comment)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidArgument)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}

		rev, derr := domreview.NewReview(snap.Entity(), actor, rating, comment)
		if derr != nil {
			switch derr {
			case domreview.ErrBookingNotCompleted:
				return ErrInvalidState
			case domreview.ErrReviewerNotOnBooking:
				return ErrForbidden
			default:
				return derr
			}
		}

		exists, derr := tx.Reads().HasReview(ctx, req.BookingID, actor.Type)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if exists {
			return ErrDuplicateReview
		}

		id, derr := tx.Reviews().Create(ctx, rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateReview
			}
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SubmitReviewResult{ReviewID: createdID}, nil
}
