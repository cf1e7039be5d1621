package api

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/database"
	"github.com/mapsee-lab/placesync/internal/domain"
)

// PlaceService aggregates a place with its references and keywords for
// the read API.
type PlaceService struct {
	store *database.Store
}

func NewPlaceService(store *database.Store) *PlaceService {
	return &PlaceService{store: store}
}

func (s *PlaceService) GetDetails(ctx context.Context, id uuid.UUID) (*domain.PlaceDetails, error) {
	place, err := s.store.Places.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.store.Links.ListRefsByPlace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load platform references: %w", err)
	}

	keywords, err := s.store.Keywords.ListByPlace(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}

	return &domain.PlaceDetails{
		Place:              *place,
		PlatformReferences: refs,
		Keywords:           keywords,
	}, nil
}
