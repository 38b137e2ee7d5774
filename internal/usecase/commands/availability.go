package commands

import (
	"context"

	"pluralink/internal/domain/availability"
	"pluralink/internal/domain/booking"
	"pluralink/internal/domain/schedule"
	"pluralink/internal/infra"
	"pluralink/internal/pkg/config"
	"pluralink/internal/pkg/errs"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRuleNotFound = errs.New("availability rule not found")
	ErrRuleOverlap  = errs.New("availability rule overlaps an existing rule")
)

type UpsertRuleRequest struct {
	DayOfWeek int
	StartTime string
	EndTime   string
	Available bool
}

type CreateRuleResult struct {
	RuleID uuid.UUID
}

type AvailabilityCommands interface {
	CreateRule(ctx context.Context, actor booking.Actor, req UpsertRuleRequest) (*CreateRuleResult, error)
	UpdateRule(ctx context.Context, actor booking.Actor, ruleID uuid.UUID, req UpsertRuleRequest) error
	DeleteRule(ctx context.Context, actor booking.Actor, ruleID uuid.UUID) error
}

type availabilityUseCaseImpl struct {
	uow            shared.UnitOfWork
	granularityMin int
}

func NewAvailabilityUseCase(uow shared.UnitOfWork, cfg config.SchedulingConfig) AvailabilityCommands {
	return &availabilityUseCaseImpl{uow: uow, granularityMin: cfg.GranularityMin}
}

func (uc *availabilityUseCaseImpl) CreateRule(ctx context.Context, actor booking.Actor, req UpsertRuleRequest) (*CreateRuleResult, error) {
	if actor.Type != booking.ActorProvider {
		return nil, ErrForbidden
	}
	interval, err := uc.parseInterval(req)
	if err != nil {
		return nil, err
	}
	rule, err := availability.NewRule(actor.ID, req.DayOfWeek, interval, req.Available)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidArgument)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, derr := tx.Reads().RulesForProvider(ctx, actor.ID)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if derr = availability.ValidateNoOverlap(existing, rule); derr != nil {
			return ErrRuleOverlap
		}
		id, derr := tx.AvailabilityRules().Create(ctx, rule)
		if derr != nil {
			return mapRuleWriteErr(derr)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateRuleResult{RuleID: createdID}, nil
}

func (uc *availabilityUseCaseImpl) UpdateRule(ctx context.Context, actor booking.Actor, ruleID uuid.UUID, req UpsertRuleRequest) error {
	if actor.Type != booking.ActorProvider {
		return ErrForbidden
	}
	interval, err := uc.parseInterval(req)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rule, derr := uc.ownedRule(ctx, tx, actor, ruleID)
		if derr != nil {
			return derr
		}
		if derr = rule.Revise(req.DayOfWeek, interval, req.Available); derr != nil {
			return errs.Mark(derr, ErrInvalidArgument)
		}
		existing, derr := tx.Reads().RulesForProvider(ctx, actor.ID)
		if derr != nil {
			return errs.Mark(derr, ErrDatabaseOperationFailed)
		}
		if derr = availability.ValidateNoOverlap(existing, rule); derr != nil {
			return ErrRuleOverlap
		}
		return mapRuleWriteErr(tx.AvailabilityRules().Update(ctx, rule))
	})
}

func (uc *availabilityUseCaseImpl) DeleteRule(ctx context.Context, actor booking.Actor, ruleID uuid.UUID) error {
	if actor.Type != booking.ActorProvider {
		return ErrForbidden
	}
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := uc.ownedRule(ctx, tx, actor, ruleID); derr != nil {
			return derr
		}
		return mapRuleWriteErr(tx.AvailabilityRules().Delete(ctx, ruleID))
	})
}

func (uc *availabilityUseCaseImpl) ownedRule(ctx context.Context, tx shared.Tx, actor booking.Actor, ruleID uuid.UUID) (*availability.Rule, error) {
	rule, err := tx.Reads().RuleByID(ctx, ruleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !rule.OwnedBy(actor.ID) {
		return nil, ErrForbidden
	}
	return rule, nil
}

func (uc *availabilityUseCaseImpl) parseInterval(req UpsertRuleRequest) (interval schedule.TimeInterval, err error) {
	interval, err = schedule.ParseTimeInterval(req.StartTime, req.EndTime, uc.granularityMin)
	if err != nil {
		return schedule.TimeInterval{}, errs.Mark(err, ErrInvalidArgument)
	}
	return interval, nil
}

// mapRuleWriteErr mirrors the booking write mapping: the rules exclusion
// constraint backs ValidateNoOverlap under concurrency.
func mapRuleWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return ErrRuleOverlap
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
