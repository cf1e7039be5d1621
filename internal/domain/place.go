package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultCountryCode is applied to newly created places. The upstream
// analysis pipeline only covers domestic venues today.
const DefaultCountryCode = "KR"

// Place represents a physical location in the catalog. A place is created
// once and then repeatedly merged as new analysis results reference the
// same real-world venue.
type Place struct {
	ID                   uuid.UUID      `db:"id"                    json:"id"`
	Name                 string         `db:"name"                  json:"name"`
	Country              string         `db:"country"               json:"country"`
	Latitude             float64        `db:"latitude"              json:"latitude"`
	Longitude            float64        `db:"longitude"             json:"longitude"`
	Address              *string        `db:"address"               json:"address,omitempty"`
	RoadAddress          *string        `db:"road_address"          json:"road_address,omitempty"`
	SubwayInfo           *string        `db:"subway_info"           json:"subway_info,omitempty"`
	DirectionsText       *string        `db:"directions_text"       json:"directions_text,omitempty"`
	BusinessType         *string        `db:"business_type"         json:"business_type,omitempty"`
	Description          *string        `db:"description"           json:"description,omitempty"`
	Rating               *float64       `db:"rating"                json:"rating,omitempty"`
	VisitorReviewCount   *int           `db:"visitor_review_count"  json:"visitor_review_count,omitempty"`
	BlogReviewCount      *int           `db:"blog_review_count"     json:"blog_review_count,omitempty"`
	BusinessStatus       *string        `db:"business_status"       json:"business_status,omitempty"`
	BusinessHours        *string        `db:"business_hours"        json:"business_hours,omitempty"`
	OpenHoursDetail      pq.StringArray `db:"open_hours_detail"     json:"open_hours_detail,omitempty"`
	HolidayInfo          *string        `db:"holiday_info"          json:"holiday_info,omitempty"`
	Phone                *string        `db:"phone"                 json:"phone,omitempty"`
	HomepageURL          *string        `db:"homepage_url"          json:"homepage_url,omitempty"`
	MapURL               *string        `db:"map_url"               json:"map_url,omitempty"`
	ReservationAvailable *bool          `db:"reservation_available" json:"reservation_available,omitempty"`
	Amenities            pq.StringArray `db:"amenities"             json:"amenities,omitempty"`
	TVAppearances        pq.StringArray `db:"tv_appearances"        json:"tv_appearances,omitempty"`
	MenuInfo             pq.StringArray `db:"menu_info"             json:"menu_info,omitempty"`
	ImageURL             *string        `db:"image_url"             json:"image_url,omitempty"`
	PhotoURLs            pq.StringArray `db:"photo_urls"            json:"photo_urls,omitempty"`
	CreatedAt            time.Time      `db:"created_at"            json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"            json:"updated_at"`
	DeletedAt            *time.Time     `db:"deleted_at"            json:"-"`
}

// PlacePatch is a partial place update extracted from one callback place
// record. Nil means "no change"; a present field overwrites the stored
// value. Creation and update share this one merge path.
type PlacePatch struct {
	Name                 *string
	Category             *string
	Description          *string
	Latitude             *float64
	Longitude            *float64
	Address              *string
	RoadAddress          *string
	SubwayInfo           *string
	DirectionsText       *string
	Rating               *float64
	VisitorReviewCount   *int
	BlogReviewCount      *int
	BusinessStatus       *string
	BusinessHours        *string
	OpenHoursDetail      []string
	HolidayInfo          *string
	PhoneNumber          *string
	HomepageURL          *string
	MapURL               *string
	ReservationAvailable *bool
	Amenities            []string
	TVAppearances        []string
	MenuInfo             []string
	ImageURL             *string
	ImageURLs            []string
}

// Apply merges the patch into a copy of the place and returns it. A field
// absent from the patch never clears a previously populated value.
//
// Name, latitude and longitude are identity fields: they participate in the
// fallback dedup key, so an already-resolved place keeps them (the patch
// values only seed newly created places via NewPlace).
func (p PlacePatch) Apply(pl Place) Place {
	if p.Category != nil {
		pl.BusinessType = p.Category
	}
	if p.Description != nil {
		pl.Description = p.Description
	}
	if p.Address != nil {
		pl.Address = p.Address
	}
	if p.RoadAddress != nil {
		pl.RoadAddress = p.RoadAddress
	}
	if p.SubwayInfo != nil {
		pl.SubwayInfo = p.SubwayInfo
	}
	if p.DirectionsText != nil {
		pl.DirectionsText = p.DirectionsText
	}
	if p.Rating != nil {
		pl.Rating = p.Rating
	}
	if p.VisitorReviewCount != nil {
		pl.VisitorReviewCount = p.VisitorReviewCount
	}
	if p.BlogReviewCount != nil {
		pl.BlogReviewCount = p.BlogReviewCount
	}
	if p.BusinessStatus != nil {
		pl.BusinessStatus = p.BusinessStatus
	}
	if p.BusinessHours != nil {
		pl.BusinessHours = p.BusinessHours
	}
	if p.OpenHoursDetail != nil {
		pl.OpenHoursDetail = pq.StringArray(p.OpenHoursDetail)
	}
	if p.HolidayInfo != nil {
		pl.HolidayInfo = p.HolidayInfo
	}
	if p.PhoneNumber != nil {
		pl.Phone = p.PhoneNumber
	}
	if p.HomepageURL != nil {
		pl.HomepageURL = p.HomepageURL
	}
	if p.MapURL != nil {
		pl.MapURL = p.MapURL
	}
	if p.ReservationAvailable != nil {
		pl.ReservationAvailable = p.ReservationAvailable
	}
	if p.Amenities != nil {
		pl.Amenities = pq.StringArray(p.Amenities)
	}
	if p.TVAppearances != nil {
		pl.TVAppearances = pq.StringArray(p.TVAppearances)
	}
	if p.MenuInfo != nil {
		pl.MenuInfo = pq.StringArray(p.MenuInfo)
	}
	if p.ImageURL != nil {
		pl.ImageURL = p.ImageURL
	}
	if p.ImageURLs != nil {
		pl.PhotoURLs = pq.StringArray(p.ImageURLs)
	}
	return pl
}

// NewPlace builds a place from a patch with creation defaults: country KR
// and zero coordinates when the payload has none. The shared Apply merge
// then fills every present field.
func NewPlace(name string, patch PlacePatch) Place {
	pl := Place{
		ID:      uuid.New(),
		Name:    name,
		Country: DefaultCountryCode,
	}
	if patch.Latitude != nil {
		pl.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		pl.Longitude = *patch.Longitude
	}
	return patch.Apply(pl)
}

// PlatformReference maps a (platform, platform-local id) pair to a place.
// The pair is unique system-wide.
type PlatformReference struct {
	ID              uuid.UUID     `db:"id"                json:"id"`
	PlaceID         uuid.UUID     `db:"place_id"          json:"place_id"`
	Platform        PlacePlatform `db:"platform"          json:"platform"`
	PlatformPlaceID string        `db:"platform_place_id" json:"platform_place_id"`
	CreatedAt       time.Time     `db:"created_at"        json:"created_at"`
}

// ContentPlaceLink is the ordered association between a content item and a
// place discovered in it. The link set for one content item is replaced
// wholesale on reprocessing.
type ContentPlaceLink struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	ContentID uuid.UUID `db:"content_id" json:"content_id"`
	PlaceID   uuid.UUID `db:"place_id"   json:"place_id"`
	Position  int       `db:"position"   json:"position"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Keyword is a normalized tag linked to places through the place_keyword
// join table.
type Keyword struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
