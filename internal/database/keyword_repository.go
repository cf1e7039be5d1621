package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// KeywordRepository manages the keyword dictionary and place-keyword links.
type KeywordRepository struct {
	q sqlx.ExtContext
}

// Ensure returns the id of the keyword with the given name, inserting it
// if missing. The upsert keeps the dictionary free of duplicates under
// concurrent callbacks.
func (r *KeywordRepository) Ensure(ctx context.Context, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO keyword (id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`

	var id uuid.UUID
	if err := sqlx.GetContext(ctx, r.q, &id, query, uuid.New(), name); err != nil {
		return uuid.Nil, fmt.Errorf("ensure keyword %q: %w", name, err)
	}
	return id, nil
}

// LinkToPlace attaches a keyword to a place, ignoring an existing link.
func (r *KeywordRepository) LinkToPlace(ctx context.Context, placeID, keywordID uuid.UUID) error {
	query := `
		INSERT INTO place_keyword (place_id, keyword_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (place_id, keyword_id) DO NOTHING`

	if _, err := r.q.ExecContext(ctx, query, placeID, keywordID); err != nil {
		return fmt.Errorf("link keyword to place: %w", err)
	}
	return nil
}

// ListByPlace returns a place's keywords ordered by name.
func (r *KeywordRepository) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.Keyword, error) {
	query := `
		SELECT k.id, k.name, k.created_at
		FROM keyword k
		JOIN place_keyword pk ON pk.keyword_id = k.id
		WHERE pk.place_id = $1
		ORDER BY k.name`

	var keywords []domain.Keyword
	if err := sqlx.SelectContext(ctx, r.q, &keywords, query, placeID); err != nil {
		return nil, fmt.Errorf("list keywords by place: %w", err)
	}
	return keywords, nil
}
