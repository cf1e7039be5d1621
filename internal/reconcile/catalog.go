// Package reconcile applies analysis callbacks to the place catalog.
package reconcile

import (
	"context"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// Catalog is the slice of persistence the engine touches inside one
// reconciliation transaction.
type Catalog interface {
	ContentForUpdate(ctx context.Context, id uuid.UUID) (*domain.Content, error)
	ContentByURL(ctx context.Context, url string) (*domain.Content, error)
	UpdateContent(ctx context.Context, c *domain.Content) error
	UpdateContentStatus(ctx context.Context, id uuid.UUID, status domain.ContentStatus) error

	PlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error)
	PlaceByNameAndCoords(ctx context.Context, name string, lat, lon float64) (*domain.Place, error)
	InsertPlace(ctx context.Context, p *domain.Place) error
	UpdatePlace(ctx context.Context, p *domain.Place) error

	RefByPlatformID(ctx context.Context, platform domain.PlacePlatform, platformPlaceID string) (*domain.PlatformReference, error)
	RefExistsForPlace(ctx context.Context, placeID uuid.UUID, platform domain.PlacePlatform) (bool, error)
	InsertRef(ctx context.Context, ref *domain.PlatformReference) error

	DeleteLinksByContent(ctx context.Context, contentID uuid.UUID) error
	LinkExists(ctx context.Context, contentID, placeID uuid.UUID) (bool, error)
	InsertLink(ctx context.Context, link *domain.ContentPlaceLink) error

	EnsureKeyword(ctx context.Context, name string) (uuid.UUID, error)
	LinkKeywordToPlace(ctx context.Context, placeID, keywordID uuid.UUID) error
}

// Store opens reconciliation transactions.
type Store interface {
	InTx(ctx context.Context, fn func(tx Catalog) error) error
}
