package repository

import (
	"context"

	"pluralink/internal/domain/availability"
	"pluralink/internal/infra"

	"github.com/google/uuid"
)

type AvailabilityRuleRepository struct {
	db infra.DBTX
}

func NewAvailabilityRuleRepository(db infra.DBTX) *AvailabilityRuleRepository {
	return &AvailabilityRuleRepository{db: db}
}

func (r *AvailabilityRuleRepository) Create(ctx context.Context, rule *availability.Rule) (uuid.UUID, error) {
	const query = `
		INSERT INTO availability_rules (id, provider_id, weekday, slot, available)
		VALUES ($1, $2, $3, int4range($4, $5), $6)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		rule.ID(), rule.ProviderID(), int(rule.Weekday()),
		rule.Interval().Start().Minutes(), rule.Interval().End().Minutes(),
		rule.IsAvailable(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create availability rule", err)
	}
	return id, nil
}

func (r *AvailabilityRuleRepository) Update(ctx context.Context, rule *availability.Rule) error {
	const query = `
		UPDATE availability_rules
		SET weekday = $2, slot = int4range($3, $4), available = $5, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		rule.ID(), int(rule.Weekday()),
		rule.Interval().Start().Minutes(), rule.Interval().End().Minutes(),
		rule.IsAvailable(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update availability rule", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "availability rule not found")
	}
	return nil
}

func (r *AvailabilityRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM availability_rules WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete availability rule", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "availability rule not found")
	}
	return nil
}
