package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// LinkRepository manages place platform references and content-place links.
type LinkRepository struct {
	q sqlx.ExtContext
}

// FindRefByPlatformID returns the platform reference for (platform, external id).
// This is the primary dedup lookup for incoming place details.
func (r *LinkRepository) FindRefByPlatformID(ctx context.Context, platform domain.PlacePlatform, platformPlaceID string) (*domain.PlatformReference, error) {
	query := `
		SELECT id, place_id, platform, platform_place_id, created_at
		FROM place_platform_reference
		WHERE platform = $1 AND platform_place_id = $2`

	var ref domain.PlatformReference
	if err := sqlx.GetContext(ctx, r.q, &ref, query, platform, platformPlaceID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find platform reference: %w", err)
	}
	return &ref, nil
}

// RefExistsForPlace reports whether the place already carries a reference
// for the given platform.
func (r *LinkRepository) RefExistsForPlace(ctx context.Context, placeID uuid.UUID, platform domain.PlacePlatform) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM place_platform_reference
			WHERE place_id = $1 AND platform = $2
		)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, query, placeID, platform); err != nil {
		return false, fmt.Errorf("check platform reference: %w", err)
	}
	return exists, nil
}

// InsertRef records a platform reference. A concurrent insert of the same
// (platform, platform_place_id) pair is absorbed by the unique constraint.
func (r *LinkRepository) InsertRef(ctx context.Context, ref *domain.PlatformReference) error {
	query := `
		INSERT INTO place_platform_reference (id, place_id, platform, platform_place_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (platform, platform_place_id) DO NOTHING`

	if _, err := r.q.ExecContext(ctx, query, ref.ID, ref.PlaceID, ref.Platform, ref.PlatformPlaceID); err != nil {
		return fmt.Errorf("insert platform reference: %w", err)
	}
	return nil
}

// ListRefsByPlace returns all platform references for a place.
func (r *LinkRepository) ListRefsByPlace(ctx context.Context, placeID uuid.UUID) ([]domain.PlatformReference, error) {
	query := `
		SELECT id, place_id, platform, platform_place_id, created_at
		FROM place_platform_reference
		WHERE place_id = $1
		ORDER BY created_at`

	var refs []domain.PlatformReference
	if err := sqlx.SelectContext(ctx, r.q, &refs, query, placeID); err != nil {
		return nil, fmt.Errorf("list platform references: %w", err)
	}
	return refs, nil
}

// DeleteLinksByContent removes every content-place link for a content row.
// Reprocessing replaces the link set wholesale rather than diffing it.
func (r *LinkRepository) DeleteLinksByContent(ctx context.Context, contentID uuid.UUID) error {
	query := `DELETE FROM content_place WHERE content_id = $1`

	if _, err := r.q.ExecContext(ctx, query, contentID); err != nil {
		return fmt.Errorf("delete content place links: %w", err)
	}
	return nil
}

// LinkExists reports whether a content-place link already exists.
func (r *LinkRepository) LinkExists(ctx context.Context, contentID, placeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM content_place
			WHERE content_id = $1 AND place_id = $2
		)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.q, &exists, query, contentID, placeID); err != nil {
		return false, fmt.Errorf("check content place link: %w", err)
	}
	return exists, nil
}

// InsertLink records a content-place link at the given position.
func (r *LinkRepository) InsertLink(ctx context.Context, link *domain.ContentPlaceLink) error {
	query := `
		INSERT INTO content_place (id, content_id, place_id, position, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	if _, err := r.q.ExecContext(ctx, query, link.ID, link.ContentID, link.PlaceID, link.Position); err != nil {
		return fmt.Errorf("insert content place link: %w", err)
	}
	return nil
}

// ListLinksByContent returns a content's place links in mention order.
func (r *LinkRepository) ListLinksByContent(ctx context.Context, contentID uuid.UUID) ([]domain.ContentPlaceLink, error) {
	query := `
		SELECT id, content_id, place_id, position, created_at
		FROM content_place
		WHERE content_id = $1
		ORDER BY position`

	var links []domain.ContentPlaceLink
	if err := sqlx.SelectContext(ctx, r.q, &links, query, contentID); err != nil {
		return nil, fmt.Errorf("list content place links: %w", err)
	}
	return links, nil
}
