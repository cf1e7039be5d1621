package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// Flat catalog methods over the per-aggregate repositories. The
// reconciliation engine consumes the store through these so a transaction
// bound store drops in unchanged.

func (s *Store) ContentForUpdate(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	return s.Contents.GetByIDForUpdate(ctx, id)
}

func (s *Store) ContentByURL(ctx context.Context, url string) (*domain.Content, error) {
	return s.Contents.FindByOriginalURL(ctx, url)
}

func (s *Store) UpdateContent(ctx context.Context, c *domain.Content) error {
	return s.Contents.Update(ctx, c)
}

func (s *Store) UpdateContentStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error {
	return s.Contents.UpdateStatus(ctx, id, status)
}

func (s *Store) PlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	return s.Places.GetByID(ctx, id)
}

func (s *Store) PlaceByNameAndCoords(ctx context.Context, name string, lat, lon float64) (*domain.Place, error) {
	return s.Places.FindByNameAndCoords(ctx, name, lat, lon)
}

func (s *Store) InsertPlace(ctx context.Context, p *domain.Place) error {
	return s.Places.Insert(ctx, p)
}

func (s *Store) UpdatePlace(ctx context.Context, p *domain.Place) error {
	return s.Places.Update(ctx, p)
}

func (s *Store) RefByPlatformID(ctx context.Context, platform domain.PlacePlatform, platformPlaceID string) (*domain.PlatformReference, error) {
	return s.Links.FindRefByPlatformID(ctx, platform, platformPlaceID)
}

func (s *Store) RefExistsForPlace(ctx context.Context, placeID uuid.UUID, platform domain.PlacePlatform) (bool, error) {
	return s.Links.RefExistsForPlace(ctx, placeID, platform)
}

func (s *Store) InsertRef(ctx context.Context, ref *domain.PlatformReference) error {
	return s.Links.InsertRef(ctx, ref)
}

func (s *Store) DeleteLinksByContent(ctx context.Context, contentID uuid.UUID) error {
	return s.Links.DeleteLinksByContent(ctx, contentID)
}

func (s *Store) LinkExists(ctx context.Context, contentID, placeID uuid.UUID) (bool, error) {
	return s.Links.LinkExists(ctx, contentID, placeID)
}

func (s *Store) InsertLink(ctx context.Context, link *domain.ContentPlaceLink) error {
	return s.Links.InsertLink(ctx, link)
}

func (s *Store) EnsureKeyword(ctx context.Context, name string) (uuid.UUID, error) {
	return s.Keywords.Ensure(ctx, name)
}

func (s *Store) LinkKeywordToPlace(ctx context.Context, placeID, keywordID uuid.UUID) error {
	return s.Keywords.LinkToPlace(ctx, placeID, keywordID)
}
