package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
	"github.com/mapsee-lab/placesync/internal/metrics"
	"github.com/mapsee-lab/placesync/internal/notify"
)

// Notifier fans completion notices out after a successful commit.
type Notifier interface {
	Dispatch(ctx context.Context, content *domain.Content, placeCount int) (notify.Result, error)
}

// Config carries the engine's behavioral switches.
type Config struct {
	// AllowFailedReprocess permits a SUCCESS callback to move a FAILED
	// content back to COMPLETED.
	AllowFailedReprocess bool
}

// Engine reconciles analysis callbacks against the place catalog. All
// catalog writes for one callback happen in a single transaction;
// notification fan-out runs after the commit so a failed push never rolls
// back catalog state.
type Engine struct {
	store    Store
	resolver *Resolver
	notifier Notifier
	locks    *keyedMutex
	metrics  *metrics.Metrics
	logger   logger.Logger
	cfg      Config
}

func NewEngine(store Store, notifier Notifier, m *metrics.Metrics, log logger.Logger, cfg Config) *Engine {
	return &Engine{
		store:    store,
		resolver: NewResolver(log),
		notifier: notifier,
		locks:    newKeyedMutex(),
		metrics:  m,
		logger:   log,
		cfg:      cfg,
	}
}

// Process applies one callback. Callbacks for the same content id are
// serialized; different content ids run in parallel.
func (e *Engine) Process(ctx context.Context, req *domain.CallbackRequest) (*domain.CallbackResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		e.record(metrics.OutcomeRejected, start)
		return nil, err
	}

	e.logger.Info("Processing analysis callback",
		logger.String("content_id", req.ContentID.String()),
		logger.String("result_status", string(req.ResultStatus)),
	)

	unlock := e.locks.Lock(req.ContentID)
	defer unlock()

	var content *domain.Content
	var placeCount int

	txErr := e.store.InTx(ctx, func(tx Catalog) error {
		c, err := tx.ContentForUpdate(ctx, req.ContentID)
		if err != nil {
			return err
		}

		switch req.ResultStatus {
		case domain.ResultStatusFailed:
			return e.processFailed(ctx, tx, c, req)
		default:
			content, placeCount, err = e.processSuccess(ctx, tx, c, req)
			return err
		}
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, domain.ErrInvalidTransition), errors.Is(txErr, domain.ErrInvalidCallback):
			e.record(metrics.OutcomeRejected, start)
		case errors.Is(txErr, domain.ErrContentNotFound):
			e.record(metrics.OutcomeRejected, start)
		default:
			e.record(metrics.OutcomeError, start)
		}
		return nil, txErr
	}

	if req.ResultStatus == domain.ResultStatusFailed {
		e.record(metrics.OutcomeFailed, start)
	} else {
		// Fan-out runs outside the transaction. Delivery failures are
		// contained by the dispatcher and never fail the callback.
		if _, dispatchErr := e.notifier.Dispatch(ctx, content, placeCount); dispatchErr != nil {
			e.logger.Error("Notification fan-out failed",
				logger.String("content_id", req.ContentID.String()),
				logger.Error(dispatchErr),
			)
		}
		e.record(metrics.OutcomeCompleted, start)
	}

	e.logger.Info("Analysis callback processed",
		logger.String("content_id", req.ContentID.String()),
		logger.String("result_status", string(req.ResultStatus)),
		logger.Duration("duration", time.Since(start)),
	)

	return &domain.CallbackResponse{Received: true, ContentID: req.ContentID}, nil
}

func (e *Engine) processFailed(ctx context.Context, tx Catalog, c *domain.Content, req *domain.CallbackRequest) error {
	if err := domain.ValidateTransition(c.Status, domain.ContentStatusFailed, e.cfg.AllowFailedReprocess); err != nil {
		return err
	}

	errorMessage := ""
	if req.ErrorMessage != nil {
		errorMessage = *req.ErrorMessage
	}
	e.logger.Error("Analysis failed",
		logger.String("content_id", c.ID.String()),
		logger.String("error_message", errorMessage),
	)

	return tx.UpdateContentStatus(ctx, c.ID, domain.ContentStatusFailed)
}

func (e *Engine) processSuccess(ctx context.Context, tx Catalog, c *domain.Content, req *domain.CallbackRequest) (*domain.Content, int, error) {
	if err := domain.ValidateTransition(c.Status, domain.ContentStatusCompleted, e.cfg.AllowFailedReprocess); err != nil {
		return nil, 0, err
	}

	e.logStatistics(c.ID, req.Statistics)

	// Reprocessing replaces the link set wholesale so removed places
	// disappear and the new mention order wins.
	reprocessing := c.Status != domain.ContentStatusPending
	if reprocessing {
		e.logger.Info("Reprocessing content, replacing existing place links",
			logger.String("content_id", c.ID.String()),
		)
		if err := tx.DeleteLinksByContent(ctx, c.ID); err != nil {
			return nil, 0, fmt.Errorf("clear place links: %w", err)
		}
		if e.metrics != nil {
			e.metrics.LinksReplaced.Inc()
		}
	}

	merged := *c
	if req.SnsInfo != nil {
		var err error
		merged, err = e.mergeMetadata(ctx, tx, c, req.SnsInfo)
		if err != nil {
			return nil, 0, err
		}
	} else {
		e.logger.Warn("Callback carries no snsInfo, skipping metadata update",
			logger.String("content_id", c.ID.String()),
		)
	}

	merged.Status = domain.ContentStatusCompleted
	if err := tx.UpdateContent(ctx, &merged); err != nil {
		return nil, 0, fmt.Errorf("update content: %w", err)
	}

	placeCount := e.reconcilePlaces(ctx, tx, &merged, req.PlaceDetails)
	return &merged, placeCount, nil
}

// mergeMetadata applies the snsInfo patch. The original URL moves only
// when no other content row claims it, preserving global URL uniqueness.
func (e *Engine) mergeMetadata(ctx context.Context, tx Catalog, c *domain.Content, info *domain.SnsInfo) (domain.Content, error) {
	patch := info.ContentPatch()
	merged := patch.Apply(*c)

	if patch.Platform == nil && info.Platform != "" {
		e.logger.Error("Unknown platform value, keeping existing platform",
			logger.String("content_id", c.ID.String()),
			logger.String("platform", info.Platform),
		)
	}

	if patch.OriginalURL != nil && *patch.OriginalURL != c.OriginalURL {
		claimed, err := tx.ContentByURL(ctx, *patch.OriginalURL)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			merged.OriginalURL = *patch.OriginalURL
		case err != nil:
			return domain.Content{}, fmt.Errorf("check url uniqueness: %w", err)
		case claimed.ID == c.ID:
			merged.OriginalURL = *patch.OriginalURL
		default:
			e.logger.Warn("Cannot update original URL, already claimed by another content",
				logger.String("content_id", c.ID.String()),
				logger.String("claimed_by", claimed.ID.String()),
				logger.String("url", *patch.OriginalURL),
			)
		}
	}

	return merged, nil
}

// reconcilePlaces runs the per-place pipeline. A failure on one entry is
// logged and skipped; the remaining entries still process.
func (e *Engine) reconcilePlaces(ctx context.Context, tx Catalog, content *domain.Content, details []domain.PlaceDetail) int {
	if len(details) == 0 {
		e.logger.Warn("No places found in callback",
			logger.String("content_id", content.ID.String()),
		)
		return 0
	}

	placeCount := 0
	position := 0
	for i := range details {
		detail := &details[i]

		place, created, err := e.resolver.Resolve(ctx, tx, detail)
		if err != nil {
			e.logger.Error("Failed to process place, skipping",
				logger.String("content_id", content.ID.String()),
				logger.String("place_name", detail.Name),
				logger.Error(err),
			)
			if e.metrics != nil {
				e.metrics.PlacesSkipped.Inc()
			}
			continue
		}
		placeCount++
		if e.metrics != nil {
			if created {
				e.metrics.PlacesCreated.Inc()
			} else {
				e.metrics.PlacesMerged.Inc()
			}
		}

		if linkErr := e.linkPlace(ctx, tx, content.ID, place.ID, position); linkErr != nil {
			e.logger.Error("Failed to link place, skipping",
				logger.String("content_id", content.ID.String()),
				logger.String("place_id", place.ID.String()),
				logger.Error(linkErr),
			)
			position++
			continue
		}
		position++

		if kwErr := e.linkKeywords(ctx, tx, place.ID, detail.Keywords); kwErr != nil {
			e.logger.Error("Failed to link keywords",
				logger.String("place_id", place.ID.String()),
				logger.Error(kwErr),
			)
		}
	}

	e.logger.Info("Place reconciliation finished",
		logger.String("content_id", content.ID.String()),
		logger.Int("saved", placeCount),
		logger.Int("received", len(details)),
	)
	return placeCount
}

func (e *Engine) linkPlace(ctx context.Context, tx Catalog, contentID, placeID uuid.UUID, position int) error {
	exists, err := tx.LinkExists(ctx, contentID, placeID)
	if err != nil {
		return fmt.Errorf("check place link: %w", err)
	}
	if exists {
		// Duplicate mention in one payload keeps its first position.
		return nil
	}

	link := domain.ContentPlaceLink{
		ID:        uuid.New(),
		ContentID: contentID,
		PlaceID:   placeID,
		Position:  position,
	}
	if insertErr := tx.InsertLink(ctx, &link); insertErr != nil {
		return fmt.Errorf("insert place link: %w", insertErr)
	}
	return nil
}

func (e *Engine) linkKeywords(ctx context.Context, tx Catalog, placeID uuid.UUID, keywords []string) error {
	for _, name := range keywords {
		if name == "" {
			continue
		}
		keywordID, err := tx.EnsureKeyword(ctx, name)
		if err != nil {
			return err
		}
		if linkErr := tx.LinkKeywordToPlace(ctx, placeID, keywordID); linkErr != nil {
			return linkErr
		}
		if e.metrics != nil {
			e.metrics.KeywordsLinked.Inc()
		}
	}
	return nil
}

// logStatistics surfaces the extraction accounting block in the logs. It
// is never persisted.
func (e *Engine) logStatistics(contentID uuid.UUID, stats *domain.Statistics) {
	if stats == nil {
		return
	}

	totalExtracted := 0
	if stats.TotalExtracted != nil {
		totalExtracted = *stats.TotalExtracted
	}
	totalFound := 0
	if stats.TotalFound != nil {
		totalFound = *stats.TotalFound
	}

	e.logger.Info("Extraction statistics",
		logger.String("content_id", contentID.String()),
		logger.Int("total_extracted", totalExtracted),
		logger.Int("total_found", totalFound),
		logger.Strings("failed_searches", stats.FailedSearches),
	)
	if len(stats.ExtractedPlaceNames) > 0 {
		e.logger.Debug("Extracted place names",
			logger.String("content_id", contentID.String()),
			logger.Strings("names", stats.ExtractedPlaceNames),
		)
	}
}

func (e *Engine) record(outcome string, start time.Time) {
	if e.metrics != nil {
		e.metrics.RecordCallback(outcome, time.Since(start))
	}
}
