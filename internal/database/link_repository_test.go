package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
)

func TestLinkRepository_FindRefByPlatformID(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	placeID := uuid.New()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "reference found",
			setupMock: func() {
				rows := sqlmock.NewRows([]string{
					"id", "place_id", "platform", "platform_place_id", "created_at",
				}).AddRow(uuid.New(), placeID, "NAVER", "1234567", time.Now())
				mock.ExpectQuery("SELECT (.+) FROM place_platform_reference").
					WithArgs(domain.PlacePlatformNaver, "1234567").
					WillReturnRows(rows)
			},
		},
		{
			name: "missing reference maps to sentinel",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM place_platform_reference").
					WithArgs(domain.PlacePlatformNaver, "1234567").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			ref, callErr := store.Links.FindRefByPlatformID(ctx, domain.PlacePlatformNaver, "1234567")
			if tc.wantErr != nil {
				if !errors.Is(callErr, tc.wantErr) {
					t.Errorf("FindRefByPlatformID() error = %v, want %v", callErr, tc.wantErr)
				}
			} else {
				if callErr != nil {
					t.Fatalf("FindRefByPlatformID() error = %v", callErr)
				}
				if ref.PlaceID != placeID {
					t.Errorf("FindRefByPlatformID() place id = %v, want %v", ref.PlaceID, placeID)
				}
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestLinkRepository_DeleteLinksByContent(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	contentID := uuid.New()

	mock.ExpectExec("DELETE FROM content_place").
		WithArgs(contentID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if callErr := store.Links.DeleteLinksByContent(ctx, contentID); callErr != nil {
		t.Fatalf("DeleteLinksByContent() error = %v", callErr)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestLinkRepository_InsertLink(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()

	link := &domain.ContentPlaceLink{
		ID:        uuid.New(),
		ContentID: uuid.New(),
		PlaceID:   uuid.New(),
		Position:  2,
	}

	mock.ExpectExec("INSERT INTO content_place").
		WithArgs(link.ID, link.ContentID, link.PlaceID, link.Position).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if callErr := store.Links.InsertLink(ctx, link); callErr != nil {
		t.Fatalf("InsertLink() error = %v", callErr)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestLinkRepository_RefExistsForPlace(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	placeID := uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(placeID, domain.PlacePlatformNaver).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, callErr := store.Links.RefExistsForPlace(ctx, placeID, domain.PlacePlatformNaver)
	if callErr != nil {
		t.Fatalf("RefExistsForPlace() error = %v", callErr)
	}
	if !exists {
		t.Error("RefExistsForPlace() = false, want true")
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}
