package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mapsee-lab/placesync/internal/database"
	"github.com/mapsee-lab/placesync/internal/domain"
)

func newTestStore(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, setupErr := sqlmock.New()
	if setupErr != nil {
		t.Fatalf("failed to create sqlmock: %v", setupErr)
	}
	t.Cleanup(func() { db.Close() })

	return database.NewStore(sqlx.NewDb(db, "sqlmock")), mock
}

func contentRows(id uuid.UUID, status domain.ContentStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "platform", "status", "content_type", "original_url", "title",
		"summary", "caption", "platform_uploader", "likes_count",
		"comments_count", "posted_at", "hashtags", "thumbnail_url",
		"image_urls", "author_profile_image_url", "last_checked_at",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		id, "INSTAGRAM", status, nil, "https://instagram.com/p/abc", nil,
		nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil,
		now, now, nil,
	)
}

func TestContentRepository_GetByID(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	contentID := uuid.New()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "returns the content row",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM content").
					WithArgs(contentID).
					WillReturnRows(contentRows(contentID, domain.ContentStatusPending))
			},
		},
		{
			name: "missing row maps to sentinel",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM content").
					WithArgs(contentID).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrContentNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			content, callErr := store.Contents.GetByID(ctx, contentID)
			if tc.wantErr != nil {
				if !errors.Is(callErr, tc.wantErr) {
					t.Errorf("GetByID() error = %v, want %v", callErr, tc.wantErr)
				}
			} else {
				if callErr != nil {
					t.Fatalf("GetByID() error = %v", callErr)
				}
				if content.ID != contentID {
					t.Errorf("GetByID() id = %v, want %v", content.ID, contentID)
				}
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestContentRepository_FindByOriginalURL(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	contentID := uuid.New()
	url := "https://instagram.com/p/abc"

	mock.ExpectQuery("SELECT (.+) FROM content").
		WithArgs(url).
		WillReturnRows(contentRows(contentID, domain.ContentStatusCompleted))

	content, callErr := store.Contents.FindByOriginalURL(ctx, url)
	if callErr != nil {
		t.Fatalf("FindByOriginalURL() error = %v", callErr)
	}
	if content.ID != contentID {
		t.Errorf("FindByOriginalURL() id = %v, want %v", content.ID, contentID)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestContentRepository_UpdateStatus(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	contentID := uuid.New()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "updates the status",
			setupMock: func() {
				mock.ExpectExec("UPDATE content").
					WithArgs(contentID, domain.ContentStatusFailed).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "zero rows maps to sentinel",
			setupMock: func() {
				mock.ExpectExec("UPDATE content").
					WithArgs(contentID, domain.ContentStatusFailed).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrContentNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			callErr := store.Contents.UpdateStatus(ctx, contentID, domain.ContentStatusFailed)
			if !errors.Is(callErr, tc.wantErr) {
				t.Errorf("UpdateStatus() error = %v, want %v", callErr, tc.wantErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}
