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

func placeRows(id uuid.UUID, name string, lat, lon float64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "country", "latitude", "longitude", "address",
		"road_address", "subway_info", "directions_text", "business_type",
		"description", "rating", "visitor_review_count", "blog_review_count",
		"business_status", "business_hours", "open_hours_detail",
		"holiday_info", "phone", "homepage_url", "map_url",
		"reservation_available", "amenities", "tv_appearances", "menu_info",
		"image_url", "photo_urls", "created_at", "updated_at", "deleted_at",
	}).AddRow(
		id, name, "KR", lat, lon, nil,
		nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, now, now, nil,
	)
}

func TestPlaceRepository_FindByNameAndCoords(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()
	placeID := uuid.New()

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "exact match found",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM place").
					WithArgs("성수동 카페", 37.5446, 127.0559).
					WillReturnRows(placeRows(placeID, "성수동 카페", 37.5446, 127.0559))
			},
		},
		{
			name: "no match maps to sentinel",
			setupMock: func() {
				mock.ExpectQuery("SELECT (.+) FROM place").
					WithArgs("성수동 카페", 37.5446, 127.0559).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			place, callErr := store.Places.FindByNameAndCoords(ctx, "성수동 카페", 37.5446, 127.0559)
			if tc.wantErr != nil {
				if !errors.Is(callErr, tc.wantErr) {
					t.Errorf("FindByNameAndCoords() error = %v, want %v", callErr, tc.wantErr)
				}
			} else {
				if callErr != nil {
					t.Fatalf("FindByNameAndCoords() error = %v", callErr)
				}
				if place.ID != placeID {
					t.Errorf("FindByNameAndCoords() id = %v, want %v", place.ID, placeID)
				}
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}

func TestPlaceRepository_Insert(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()

	place := domain.NewPlace("성수동 카페", domain.PlacePatch{})

	mock.ExpectExec("INSERT INTO place").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if callErr := store.Places.Insert(ctx, &place); callErr != nil {
		t.Fatalf("Insert() error = %v", callErr)
	}

	if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
		t.Errorf("unfulfilled expectations: %v", expectErr)
	}
}

func TestPlaceRepository_Update(t *testing.T) {
	store, mock := newTestStore(t)
	ctx := context.Background()

	place := domain.NewPlace("성수동 카페", domain.PlacePatch{})

	testCases := []struct {
		name      string
		setupMock func()
		wantErr   error
	}{
		{
			name: "updates the row",
			setupMock: func() {
				mock.ExpectExec("UPDATE place").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "zero rows maps to sentinel",
			setupMock: func() {
				mock.ExpectExec("UPDATE place").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()

			callErr := store.Places.Update(ctx, &place)
			if !errors.Is(callErr, tc.wantErr) {
				t.Errorf("Update() error = %v, want %v", callErr, tc.wantErr)
			}

			if expectErr := mock.ExpectationsWereMet(); expectErr != nil {
				t.Errorf("unfulfilled expectations: %v", expectErr)
			}
		})
	}
}
