package domain

import (
	"time"

	"github.com/google/uuid"
)

// Interest is static reference data: a selectable interest shown during
// member onboarding, grouped by category.
type Interest struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Category  string    `db:"category"   json:"category"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PlaceDetails aggregates a place with its related rows for the read API.
type PlaceDetails struct {
	Place              Place               `json:"place"`
	PlatformReferences []PlatformReference `json:"platform_references"`
	Keywords           []Keyword           `json:"keywords"`
}
