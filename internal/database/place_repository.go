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

// placeSelectList is the column list for SELECT on place.
const placeSelectList = `id, name, country, latitude, longitude, address, road_address,
			subway_info, directions_text, business_type, description, rating,
			visitor_review_count, blog_review_count, business_status,
			business_hours, open_hours_detail, holiday_info, phone,
			homepage_url, map_url, reservation_available, amenities,
			tv_appearances, menu_info, image_url, photo_urls,
			created_at, updated_at, deleted_at`

// PlaceRepository manages place catalog rows.
type PlaceRepository struct {
	q sqlx.ExtContext
}

// GetByID returns the place with the given id.
func (r *PlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	query := `SELECT ` + placeSelectList + `
		FROM place
		WHERE id = $1 AND deleted_at IS NULL`

	var p domain.Place
	if err := sqlx.GetContext(ctx, r.q, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get place by id: %w", err)
	}
	return &p, nil
}

// FindByNameAndCoords looks a place up by the exact dedup fallback key.
// No fuzzy radius: distinct nearby venues must not merge.
func (r *PlaceRepository) FindByNameAndCoords(ctx context.Context, name string, lat, lon float64) (*domain.Place, error) {
	query := `SELECT ` + placeSelectList + `
		FROM place
		WHERE name = $1 AND latitude = $2 AND longitude = $3 AND deleted_at IS NULL`

	var p domain.Place
	if err := sqlx.GetContext(ctx, r.q, &p, query, name, lat, lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find place by name and coords: %w", err)
	}
	return &p, nil
}

// Insert persists a new place row.
func (r *PlaceRepository) Insert(ctx context.Context, p *domain.Place) error {
	query := `
		INSERT INTO place (
			id, name, country, latitude, longitude, address, road_address,
			subway_info, directions_text, business_type, description, rating,
			visitor_review_count, blog_review_count, business_status,
			business_hours, open_hours_detail, holiday_info, phone,
			homepage_url, map_url, reservation_available, amenities,
			tv_appearances, menu_info, image_url, photo_urls,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27,
			NOW(), NOW()
		)`

	_, err := r.q.ExecContext(ctx, query,
		p.ID, p.Name, p.Country, p.Latitude, p.Longitude, p.Address,
		p.RoadAddress, p.SubwayInfo, p.DirectionsText, p.BusinessType,
		p.Description, p.Rating, p.VisitorReviewCount, p.BlogReviewCount,
		p.BusinessStatus, p.BusinessHours, p.OpenHoursDetail, p.HolidayInfo,
		p.Phone, p.HomepageURL, p.MapURL, p.ReservationAvailable,
		p.Amenities, p.TVAppearances, p.MenuInfo, p.ImageURL, p.PhotoURLs,
	)
	if err != nil {
		return fmt.Errorf("insert place: %w", err)
	}
	return nil
}

// Update persists the patchable columns of a place row. Name and
// coordinates are identity fields and stay as stored.
func (r *PlaceRepository) Update(ctx context.Context, p *domain.Place) error {
	query := `
		UPDATE place
		SET address = $2,
		    road_address = $3,
		    subway_info = $4,
		    directions_text = $5,
		    business_type = $6,
		    description = $7,
		    rating = $8,
		    visitor_review_count = $9,
		    blog_review_count = $10,
		    business_status = $11,
		    business_hours = $12,
		    open_hours_detail = $13,
		    holiday_info = $14,
		    phone = $15,
		    homepage_url = $16,
		    map_url = $17,
		    reservation_available = $18,
		    amenities = $19,
		    tv_appearances = $20,
		    menu_info = $21,
		    image_url = $22,
		    photo_urls = $23,
		    updated_at = NOW()
		WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query,
		p.ID, p.Address, p.RoadAddress, p.SubwayInfo, p.DirectionsText,
		p.BusinessType, p.Description, p.Rating, p.VisitorReviewCount,
		p.BlogReviewCount, p.BusinessStatus, p.BusinessHours,
		p.OpenHoursDetail, p.HolidayInfo, p.Phone, p.HomepageURL, p.MapURL,
		p.ReservationAvailable, p.Amenities, p.TVAppearances, p.MenuInfo,
		p.ImageURL, p.PhotoURLs,
	)
	if err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	return expectOneRow(result, domain.ErrNotFound)
}
