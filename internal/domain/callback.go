package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResultStatus is the outcome reported by the analysis pipeline.
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "SUCCESS"
	ResultStatusFailed  ResultStatus = "FAILED"
)

// CallbackRequest is the decoded webhook payload delivering analysis
// results for one content item.
type CallbackRequest struct {
	ContentID    uuid.UUID      `binding:"required" json:"contentId"`
	ResultStatus ResultStatus   `binding:"required" json:"resultStatus"`
	SnsInfo      *SnsInfo       `json:"snsInfo,omitempty"`
	PlaceDetails []PlaceDetail  `json:"placeDetails,omitempty"`
	Statistics   *Statistics    `json:"statistics,omitempty"`
	ErrorMessage *string        `json:"errorMessage,omitempty"`
}

// SnsInfo carries the social-platform metadata of the analyzed content.
type SnsInfo struct {
	Platform              string   `json:"platform"`
	ContentType           string   `json:"contentType"`
	URL                   string   `json:"url"`
	Author                *string  `json:"author,omitempty"`
	Caption               *string  `json:"caption,omitempty"`
	LikesCount            *int     `json:"likesCount,omitempty"`
	CommentsCount         *int     `json:"commentsCount,omitempty"`
	PostedAt              *string  `json:"postedAt,omitempty"`
	Hashtags              []string `json:"hashtags,omitempty"`
	ThumbnailURL          *string  `json:"thumbnailUrl,omitempty"`
	ImageURLs             []string `json:"imageUrls,omitempty"`
	AuthorProfileImageURL *string  `json:"authorProfileImageUrl,omitempty"`
}

// PlaceDetail is one extracted place record from the payload.
type PlaceDetail struct {
	PlatformLocalID      *string  `json:"platformLocalId,omitempty"`
	Name                 string   `json:"name"`
	Category             *string  `json:"category,omitempty"`
	Description          *string  `json:"description,omitempty"`
	Latitude             *float64 `json:"latitude,omitempty"`
	Longitude            *float64 `json:"longitude,omitempty"`
	Address              *string  `json:"address,omitempty"`
	RoadAddress          *string  `json:"roadAddress,omitempty"`
	SubwayInfo           *string  `json:"subwayInfo,omitempty"`
	DirectionsText       *string  `json:"directionsText,omitempty"`
	Rating               *float64 `json:"rating,omitempty"`
	VisitorReviewCount   *int     `json:"visitorReviewCount,omitempty"`
	BlogReviewCount      *int     `json:"blogReviewCount,omitempty"`
	BusinessStatus       *string  `json:"businessStatus,omitempty"`
	BusinessHours        *string  `json:"businessHours,omitempty"`
	OpenHoursDetail      []string `json:"openHoursDetail,omitempty"`
	HolidayInfo          *string  `json:"holidayInfo,omitempty"`
	PhoneNumber          *string  `json:"phoneNumber,omitempty"`
	HomepageURL          *string  `json:"homepageUrl,omitempty"`
	MapURL               *string  `json:"mapUrl,omitempty"`
	ReservationAvailable *bool    `json:"reservationAvailable,omitempty"`
	Amenities            []string `json:"amenities,omitempty"`
	Keywords             []string `json:"keywords,omitempty"`
	TVAppearances        []string `json:"tvAppearances,omitempty"`
	MenuInfo             []string `json:"menuInfo,omitempty"`
	ImageURL             *string  `json:"imageUrl,omitempty"`
	ImageURLs            []string `json:"imageUrls,omitempty"`
}

// Statistics is the extraction accounting block. It is logged, never
// persisted.
type Statistics struct {
	ExtractedPlaceNames []string `json:"extractedPlaceNames,omitempty"`
	TotalExtracted      *int     `json:"totalExtracted,omitempty"`
	TotalFound          *int     `json:"totalFound,omitempty"`
	FailedSearches      []string `json:"failedSearches,omitempty"`
}

// CallbackResponse acknowledges a processed callback.
type CallbackResponse struct {
	Received  bool      `json:"received"`
	ContentID uuid.UUID `json:"contentId"`
}

// Validate rejects malformed callbacks before any record is touched.
func (r *CallbackRequest) Validate() error {
	if r.ContentID == uuid.Nil {
		return fmt.Errorf("%w: contentId is required", ErrInvalidCallback)
	}
	switch r.ResultStatus {
	case ResultStatusSuccess, ResultStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: unknown resultStatus %q", ErrInvalidCallback, r.ResultStatus)
	}
}

// Patch converts a place record into the merge patch applied to its
// resolved catalog entry.
func (d *PlaceDetail) Patch() PlacePatch {
	name := d.Name
	return PlacePatch{
		Name:                 &name,
		Category:             d.Category,
		Description:          d.Description,
		Latitude:             d.Latitude,
		Longitude:            d.Longitude,
		Address:              d.Address,
		RoadAddress:          d.RoadAddress,
		SubwayInfo:           d.SubwayInfo,
		DirectionsText:       d.DirectionsText,
		Rating:               d.Rating,
		VisitorReviewCount:   d.VisitorReviewCount,
		BlogReviewCount:      d.BlogReviewCount,
		BusinessStatus:       d.BusinessStatus,
		BusinessHours:        d.BusinessHours,
		OpenHoursDetail:      d.OpenHoursDetail,
		HolidayInfo:          d.HolidayInfo,
		PhoneNumber:          d.PhoneNumber,
		HomepageURL:          d.HomepageURL,
		MapURL:               d.MapURL,
		ReservationAvailable: d.ReservationAvailable,
		Amenities:            d.Amenities,
		TVAppearances:        d.TVAppearances,
		MenuInfo:             d.MenuInfo,
		ImageURL:             d.ImageURL,
		ImageURLs:            d.ImageURLs,
	}
}

// ContentPatch converts the snsInfo block into a content metadata patch.
// A postedAt value that fails ISO-8601 parsing is skipped; an unknown
// platform string is skipped so the stored platform survives.
func (s *SnsInfo) ContentPatch() ContentPatch {
	p := ContentPatch{
		PlatformUploader:      s.Author,
		Caption:               s.Caption,
		LikesCount:            s.LikesCount,
		CommentsCount:         s.CommentsCount,
		Hashtags:              s.Hashtags,
		ThumbnailURL:          s.ThumbnailURL,
		ImageURLs:             s.ImageURLs,
		AuthorProfileImageURL: s.AuthorProfileImageURL,
	}
	if platform, ok := ParseContentPlatform(s.Platform); ok {
		p.Platform = &platform
	}
	if s.ContentType != "" {
		ct := s.ContentType
		p.ContentType = &ct
	}
	if s.URL != "" {
		u := s.URL
		p.OriginalURL = &u
	}
	if s.PostedAt != nil {
		if ts, err := time.Parse(time.RFC3339, *s.PostedAt); err == nil {
			p.PostedAt = &ts
		}
	}
	return p
}
