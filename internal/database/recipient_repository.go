package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// RecipientRepository manages the members awaiting a completion notice
// for a content row.
type RecipientRepository struct {
	q sqlx.ExtContext
}

// ListUnnotified returns the recipients of a content row whose notice has
// not gone out yet.
func (r *RecipientRepository) ListUnnotified(ctx context.Context, contentID uuid.UUID) ([]domain.ContentRecipient, error) {
	query := `
		SELECT id, content_id, member_id, notified, created_at, updated_at
		FROM content_recipient
		WHERE content_id = $1 AND notified = false
		ORDER BY created_at`

	var recipients []domain.ContentRecipient
	if err := sqlx.SelectContext(ctx, r.q, &recipients, query, contentID); err != nil {
		return nil, fmt.Errorf("list unnotified recipients: %w", err)
	}
	return recipients, nil
}

// MarkNotified flips a recipient's notified flag. The flag only moves
// from false to true; a row already notified is left alone.
func (r *RecipientRepository) MarkNotified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE content_recipient
		SET notified = true, updated_at = NOW()
		WHERE id = $1 AND notified = false`

	if _, err := r.q.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark recipient notified: %w", err)
	}
	return nil
}
