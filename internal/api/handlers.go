package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
)

// CallbackProcessor applies one analysis callback.
type CallbackProcessor interface {
	Process(ctx context.Context, req *domain.CallbackRequest) (*domain.CallbackResponse, error)
}

// PlaceReader serves the place read API.
type PlaceReader interface {
	GetDetails(ctx context.Context, id uuid.UUID) (*domain.PlaceDetails, error)
}

// InterestLister serves the interest reference list.
type InterestLister interface {
	List(ctx context.Context) ([]domain.Interest, error)
}

// Handlers provides HTTP handlers for the API
type Handlers struct {
	engine    CallbackProcessor
	places    PlaceReader
	interests InterestLister
	logger    logger.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(engine CallbackProcessor, places PlaceReader, interests InterestLister, log logger.Logger) *Handlers {
	return &Handlers{
		engine:    engine,
		places:    places,
		interests: interests,
		logger:    log,
	}
}

// HandleCallback handles POST /api/ai/callback
func (h *Handlers) HandleCallback(c *gin.Context) {
	var req domain.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Malformed callback payload",
			logger.String("path", c.Request.URL.Path),
			logger.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed callback payload"})
		return
	}

	resp, err := h.engine.Process(c.Request.Context(), &req)
	if err != nil {
		h.respondCallbackError(c, &req, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) respondCallbackError(c *gin.Context, req *domain.CallbackRequest, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCallback):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrContentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Callback processing failed",
			logger.String("content_id", req.ContentID.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process callback"})
	}
}

// GetPlace handles GET /api/places/:id
func (h *Handlers) GetPlace(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid place id"})
		return
	}

	details, err := h.places.GetDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		h.logger.Error("Failed to load place",
			logger.String("place_id", id.String()),
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve place"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// GetInterests handles GET /api/interests
func (h *Handlers) GetInterests(c *gin.Context) {
	interests, err := h.interests.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list interests",
			logger.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve interests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interests": interests,
		"count":     len(interests),
	})
}
