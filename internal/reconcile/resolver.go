package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
)

// Resolver maps one incoming place record onto the catalog.
//
// Dedup order:
//  1. platform-local id via the platform reference table
//  2. exact name + latitude + longitude match
//  3. create a new place
//
// The fallback key is exact on purpose. Two venues a few meters apart are
// different places and must never merge.
type Resolver struct {
	logger logger.Logger
}

func NewResolver(log logger.Logger) *Resolver {
	return &Resolver{logger: log}
}

// Resolve finds or creates the catalog place for detail, merges the
// incoming fields into it, and persists the result. It reports whether a
// new place was created.
func (r *Resolver) Resolve(ctx context.Context, tx Catalog, detail *domain.PlaceDetail) (*domain.Place, bool, error) {
	patch := detail.Patch()

	// 1. Platform-local id is the strongest identity.
	if detail.PlatformLocalID != nil {
		ref, err := tx.RefByPlatformID(ctx, domain.CallbackPlatform, *detail.PlatformLocalID)
		if err == nil {
			place, getErr := tx.PlaceByID(ctx, ref.PlaceID)
			if getErr != nil {
				return nil, false, fmt.Errorf("load referenced place: %w", getErr)
			}
			merged := patch.Apply(*place)
			if updateErr := tx.UpdatePlace(ctx, &merged); updateErr != nil {
				return nil, false, fmt.Errorf("merge place: %w", updateErr)
			}
			r.logger.Debug("Resolved place by platform id",
				logger.String("place_id", merged.ID.String()),
				logger.String("platform_place_id", *detail.PlatformLocalID),
			)
			return &merged, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("lookup platform reference: %w", err)
		}
	}

	// 2. Exact name + coordinates fallback.
	if detail.Latitude != nil && detail.Longitude != nil {
		place, err := tx.PlaceByNameAndCoords(ctx, detail.Name, *detail.Latitude, *detail.Longitude)
		if err == nil {
			merged := patch.Apply(*place)
			if updateErr := tx.UpdatePlace(ctx, &merged); updateErr != nil {
				return nil, false, fmt.Errorf("merge place: %w", updateErr)
			}
			if refErr := r.ensureRef(ctx, tx, merged.ID, detail.PlatformLocalID); refErr != nil {
				return nil, false, refErr
			}
			r.logger.Debug("Resolved place by name and coordinates",
				logger.String("place_id", merged.ID.String()),
				logger.String("name", detail.Name),
			)
			return &merged, false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, false, fmt.Errorf("lookup place by name and coords: %w", err)
		}
	}

	// 3. New place.
	place := domain.NewPlace(detail.Name, patch)
	if insertErr := tx.InsertPlace(ctx, &place); insertErr != nil {
		return nil, false, fmt.Errorf("create place: %w", insertErr)
	}
	if refErr := r.ensureRef(ctx, tx, place.ID, detail.PlatformLocalID); refErr != nil {
		return nil, false, refErr
	}

	r.logger.Debug("Created new place",
		logger.String("place_id", place.ID.String()),
		logger.String("name", place.Name),
	)
	return &place, true, nil
}

// ensureRef backfills the platform reference for a place that does not
// carry one yet.
func (r *Resolver) ensureRef(ctx context.Context, tx Catalog, placeID uuid.UUID, platformLocalID *string) error {
	if platformLocalID == nil {
		return nil
	}

	exists, err := tx.RefExistsForPlace(ctx, placeID, domain.CallbackPlatform)
	if err != nil {
		return fmt.Errorf("check platform reference: %w", err)
	}
	if exists {
		return nil
	}

	ref := domain.PlatformReference{
		ID:              uuid.New(),
		PlaceID:         placeID,
		Platform:        domain.CallbackPlatform,
		PlatformPlaceID: *platformLocalID,
	}
	if insertErr := tx.InsertRef(ctx, &ref); insertErr != nil {
		return fmt.Errorf("backfill platform reference: %w", insertErr)
	}
	return nil
}
