package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// InterestRepository reads the static interest reference table.
type InterestRepository struct {
	q sqlx.ExtContext
}

// ListAll returns every interest, grouped by category then name.
func (r *InterestRepository) ListAll(ctx context.Context) ([]domain.Interest, error) {
	query := `
		SELECT id, category, name, created_at
		FROM interest
		ORDER BY category, name`

	var interests []domain.Interest
	if err := sqlx.SelectContext(ctx, r.q, &interests, query); err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return interests, nil
}
