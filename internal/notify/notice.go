// Package notify delivers completion notices to the members waiting on a
// content analysis.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mapsee-lab/placesync/internal/domain"
)

// Notice is one push message addressed to a single member.
type Notice struct {
	MemberID uuid.UUID         `json:"member_id"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	ImageURL string            `json:"image_url,omitempty"`
}

// Sender delivers one notice. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, notice Notice) error
}

// ComposeCompletionNotice builds the shared completion message for one
// content item. The per-member address is filled in by the dispatcher.
func ComposeCompletionNotice(content *domain.Content, placeCount int) Notice {
	data := map[string]string{
		"type":       "CONTENT_COMPLETE",
		"contentId":  content.ID.String(),
		"placeCount": fmt.Sprintf("%d", placeCount),
	}
	if content.Title != nil {
		data["title"] = *content.Title
	}
	if content.ThumbnailURL != nil {
		data["thumbnailUrl"] = *content.ThumbnailURL
	}

	var body string
	if placeCount > 0 {
		body = fmt.Sprintf("%d개의 장소가 발견되었습니다.", placeCount)
		if content.Title != nil {
			body = *content.Title + " - " + body
		}
	} else if content.Title != nil {
		body = *content.Title + " 분석이 완료되었습니다."
	} else {
		body = "콘텐츠 분석이 완료되었습니다."
	}

	notice := Notice{
		Title: "콘텐츠 분석 완료",
		Body:  body,
		Data:  data,
	}
	if content.ThumbnailURL != nil {
		notice.ImageURL = *content.ThumbnailURL
	}
	return notice
}
