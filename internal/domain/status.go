package domain

import "fmt"

// ContentStatus represents the lifecycle state of a content item.
type ContentStatus string

const (
	ContentStatusPending   ContentStatus = "PENDING"
	ContentStatusCompleted ContentStatus = "COMPLETED"
	ContentStatusFailed    ContentStatus = "FAILED"
)

// ContentPlatform is the source social platform of a content item.
type ContentPlatform string

const (
	ContentPlatformInstagram     ContentPlatform = "INSTAGRAM"
	ContentPlatformYoutube       ContentPlatform = "YOUTUBE"
	ContentPlatformYoutubeShorts ContentPlatform = "YOUTUBE_SHORTS"
	ContentPlatformTiktok        ContentPlatform = "TIKTOK"
	ContentPlatformFacebook      ContentPlatform = "FACEBOOK"
	ContentPlatformTwitter       ContentPlatform = "TWITTER"
)

// ParseContentPlatform maps a callback platform string to a known platform.
// Unknown values return false so callers can keep the stored platform.
func ParseContentPlatform(s string) (ContentPlatform, bool) {
	switch ContentPlatform(s) {
	case ContentPlatformInstagram, ContentPlatformYoutube, ContentPlatformYoutubeShorts,
		ContentPlatformTiktok, ContentPlatformFacebook, ContentPlatformTwitter:
		return ContentPlatform(s), true
	default:
		return "", false
	}
}

// PlacePlatform identifies the external catalog a platform-local place id
// belongs to.
type PlacePlatform string

const (
	PlacePlatformNaver  PlacePlatform = "NAVER"
	PlacePlatformGoogle PlacePlatform = "GOOGLE"
	PlacePlatformKakao  PlacePlatform = "KAKAO"
)

// CallbackPlatform is the fixed platform that issues place ids in analysis
// callbacks.
const CallbackPlatform = PlacePlatformNaver

// ValidateTransition checks a content status transition against the
// lifecycle state machine:
//
//	PENDING   -> COMPLETED | FAILED
//	COMPLETED -> COMPLETED (reprocessing)
//	FAILED    -> COMPLETED only when allowFailedReprocess is set
//
// Transitions back to PENDING and COMPLETED -> FAILED are never permitted.
func ValidateTransition(from, to ContentStatus, allowFailedReprocess bool) error {
	switch {
	case to == ContentStatusPending:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	case from == ContentStatusPending:
		return nil
	case from == ContentStatusCompleted && to == ContentStatusCompleted:
		return nil
	case from == ContentStatusCompleted && to == ContentStatusFailed:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	case from == ContentStatusFailed && to == ContentStatusCompleted:
		if allowFailedReprocess {
			return nil
		}
		return fmt.Errorf("%w: %s -> %s (reprocessing after failure is disabled)", ErrInvalidTransition, from, to)
	case from == ContentStatusFailed && to == ContentStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
}
