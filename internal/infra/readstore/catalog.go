package readstore

import (
	"context"

	"pluralink/internal/infra"
	"pluralink/internal/usecase/queries"
	"pluralink/internal/usecase/shared"

	"github.com/google/uuid"
)

// CatalogReadStore covers the read-only service and provider rows the
// scheduling core depends on.
type CatalogReadStore struct {
	db infra.DBTX
}

func NewCatalogReadStore(db infra.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

func (s *CatalogReadStore) FindService(ctx context.Context, serviceID uuid.UUID) (*queries.ServiceInfo, error) {
	return findService(ctx, s.db, serviceID)
}

func (s *CatalogReadStore) ServiceSnapshot(ctx context.Context, serviceID uuid.UUID) (*shared.ServiceSnapshot, error) {
	info, err := findService(ctx, s.db, serviceID)
	if err != nil {
		return nil, err
	}
	return &shared.ServiceSnapshot{
		ID:          info.ID,
		ProviderID:  info.ProviderID,
		Name:        info.Name,
		DurationMin: info.DurationMin,
		Active:      info.Active,
	}, nil
}

func (s *CatalogReadStore) ProviderSnapshot(ctx context.Context, providerID uuid.UUID) (*shared.ProviderSnapshot, error) {
	const query = `SELECT id, name FROM users WHERE id = $1 AND role = 'provider'`

	var snap shared.ProviderSnapshot
	if err := s.db.QueryRow(ctx, query, providerID).Scan(&snap.ID, &snap.DisplayName); err != nil {
		return nil, infra.WrapRepoErr("failed to find provider", err)
	}
	return &snap, nil
}

func findService(ctx context.Context, db infra.DBTX, serviceID uuid.UUID) (*queries.ServiceInfo, error) {
	const query = `
		SELECT id, provider_id, name, duration_min, active
		FROM services
		WHERE id = $1`

	var info queries.ServiceInfo
	err := db.QueryRow(ctx, query, serviceID).Scan(
		&info.ID, &info.ProviderID, &info.Name, &info.DurationMin, &info.Active,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return &info, nil
}
