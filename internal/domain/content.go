package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Content represents a unit of social source material being analyzed.
// The reconciliation engine only mutates its status and metadata; the
// record itself is created by the ingestion pipeline.
type Content struct {
	ID                     uuid.UUID       `db:"id"                        json:"id"`
	Platform               *ContentPlatform `db:"platform"                 json:"platform,omitempty"`
	Status                 ContentStatus   `db:"status"                    json:"status"`
	ContentType            *string         `db:"content_type"              json:"content_type,omitempty"`
	OriginalURL            string          `db:"original_url"              json:"original_url"`
	Title                  *string         `db:"title"                     json:"title,omitempty"`
	Summary                *string         `db:"summary"                   json:"summary,omitempty"`
	Caption                *string         `db:"caption"                   json:"caption,omitempty"`
	PlatformUploader       *string         `db:"platform_uploader"         json:"platform_uploader,omitempty"`
	LikesCount             *int            `db:"likes_count"               json:"likes_count,omitempty"`
	CommentsCount          *int            `db:"comments_count"            json:"comments_count,omitempty"`
	PostedAt               *time.Time      `db:"posted_at"                 json:"posted_at,omitempty"`
	Hashtags               pq.StringArray  `db:"hashtags"                  json:"hashtags,omitempty"`
	ThumbnailURL           *string         `db:"thumbnail_url"             json:"thumbnail_url,omitempty"`
	ImageURLs              pq.StringArray  `db:"image_urls"                json:"image_urls,omitempty"`
	AuthorProfileImageURL  *string         `db:"author_profile_image_url"  json:"author_profile_image_url,omitempty"`
	LastCheckedAt          *time.Time      `db:"last_checked_at"           json:"last_checked_at,omitempty"`
	CreatedAt              time.Time       `db:"created_at"                json:"created_at"`
	UpdatedAt              time.Time       `db:"updated_at"                json:"updated_at"`
	DeletedAt              *time.Time      `db:"deleted_at"                json:"-"`
}

// ContentPatch is a partial metadata update derived from the snsInfo block
// of a callback. Nil fields mean "no change"; present fields overwrite.
type ContentPatch struct {
	Platform              *ContentPlatform
	ContentType           *string
	OriginalURL           *string
	PlatformUploader      *string
	Caption               *string
	LikesCount            *int
	CommentsCount         *int
	PostedAt              *time.Time
	Hashtags              []string
	ThumbnailURL          *string
	ImageURLs             []string
	AuthorProfileImageURL *string
}

// Apply merges the patch into a copy of the content and returns it.
// Absent fields keep their stored values; present fields overwrite, so a
// sparse payload never clears populated metadata.
//
// OriginalURL is intentionally not applied here: the URL carries a global
// uniqueness constraint and is updated by the engine only after checking it
// is not claimed by another content row.
func (p ContentPatch) Apply(c Content) Content {
	if p.Platform != nil {
		c.Platform = p.Platform
	}
	if p.ContentType != nil {
		c.ContentType = p.ContentType
	}
	if p.PlatformUploader != nil {
		c.PlatformUploader = p.PlatformUploader
	}
	if p.Caption != nil {
		c.Caption = p.Caption
	}
	if p.LikesCount != nil {
		c.LikesCount = p.LikesCount
	}
	if p.CommentsCount != nil {
		c.CommentsCount = p.CommentsCount
	}
	if p.PostedAt != nil {
		c.PostedAt = p.PostedAt
	}
	if p.Hashtags != nil {
		c.Hashtags = pq.StringArray(p.Hashtags)
	}
	if p.ThumbnailURL != nil {
		c.ThumbnailURL = p.ThumbnailURL
	}
	if p.ImageURLs != nil {
		c.ImageURLs = pq.StringArray(p.ImageURLs)
	}
	if p.AuthorProfileImageURL != nil {
		c.AuthorProfileImageURL = p.AuthorProfileImageURL
	}
	return c
}

// ContentRecipient tracks whether a member has been told that analysis of a
// content item finished. The notified flag only moves false -> true.
type ContentRecipient struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	ContentID uuid.UUID `db:"content_id" json:"content_id"`
	MemberID  uuid.UUID `db:"member_id"  json:"member_id"`
	Notified  bool      `db:"notified"   json:"notified"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
