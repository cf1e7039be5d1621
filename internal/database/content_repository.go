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

// contentSelectList is the column list for SELECT on content (single
// source for schema changes).
const contentSelectList = `id, platform, status, content_type, original_url, title, summary,
			caption, platform_uploader, likes_count, comments_count, posted_at,
			hashtags, thumbnail_url, image_urls, author_profile_image_url,
			last_checked_at, created_at, updated_at, deleted_at`

// ContentRepository manages content rows.
type ContentRepository struct {
	q sqlx.ExtContext
}

// GetByID returns the content with the given id.
func (r *ContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	query := `SELECT ` + contentSelectList + `
		FROM content
		WHERE id = $1 AND deleted_at IS NULL`

	var c domain.Content
	if err := sqlx.GetContext(ctx, r.q, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("get content by id: %w", err)
	}
	return &c, nil
}

// GetByIDForUpdate returns the content row locked for the duration of the
// surrounding transaction. The row lock is the cross-process backstop for
// per-content-id serialization.
func (r *ContentRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	query := `SELECT ` + contentSelectList + `
		FROM content
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`

	var c domain.Content
	if err := sqlx.GetContext(ctx, r.q, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("get content for update: %w", err)
	}
	return &c, nil
}

// FindByOriginalURL returns the content claiming the given source URL.
func (r *ContentRepository) FindByOriginalURL(ctx context.Context, url string) (*domain.Content, error) {
	query := `SELECT ` + contentSelectList + `
		FROM content
		WHERE original_url = $1 AND deleted_at IS NULL`

	var c domain.Content
	if err := sqlx.GetContext(ctx, r.q, &c, query, url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find content by url: %w", err)
	}
	return &c, nil
}

// Update persists the mutable columns of a content row.
func (r *ContentRepository) Update(ctx context.Context, c *domain.Content) error {
	query := `
		UPDATE content
		SET platform = $2,
		    status = $3,
		    content_type = $4,
		    original_url = $5,
		    caption = $6,
		    platform_uploader = $7,
		    likes_count = $8,
		    comments_count = $9,
		    posted_at = $10,
		    hashtags = $11,
		    thumbnail_url = $12,
		    image_urls = $13,
		    author_profile_image_url = $14,
		    last_checked_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query,
		c.ID, c.Platform, c.Status, c.ContentType, c.OriginalURL,
		c.Caption, c.PlatformUploader, c.LikesCount, c.CommentsCount,
		c.PostedAt, c.Hashtags, c.ThumbnailURL, c.ImageURLs,
		c.AuthorProfileImageURL,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return expectOneRow(result, domain.ErrContentNotFound)
}

// UpdateStatus transitions a content row's lifecycle status only.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error {
	query := `
		UPDATE content
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update content status: %w", err)
	}
	return expectOneRow(result, domain.ErrContentNotFound)
}

// expectOneRow translates a zero-row exec into the given sentinel.
func expectOneRow(result sql.Result, sentinel error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if rows == 0 {
		return sentinel
	}
	return nil
}
