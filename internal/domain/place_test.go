package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsee-lab/placesync/internal/domain"
)

func strPtr(s string) *string       { return &s }
func intPtr(i int) *int             { return &i }
func floatPtr(f float64) *float64   { return &f }
func boolPtr(b bool) *bool          { return &b }

func TestPlacePatch_Apply_AbsentFieldsKeepValues(t *testing.T) {
	existing := domain.Place{
		Name:           "늘푸른목장 잠실본점",
		Country:        "KR",
		Latitude:       37.5112,
		Longitude:      127.0867,
		Address:        strPtr("서울 송파구 백제고분로9길 34 1F"),
		Phone:          strPtr("02-3431-4520"),
		BusinessType:   strPtr("소고기구이"),
		Rating:         floatPtr(4.42),
		Amenities:      []string{"주차", "발렛파킹"},
		HolidayInfo:    strPtr("연중무휴"),
	}

	// Sparse patch: only the rating changes.
	patch := domain.PlacePatch{Rating: floatPtr(4.5)}
	merged := patch.Apply(existing)

	require.NotNil(t, merged.Rating)
	assert.InDelta(t, 4.5, *merged.Rating, 0.0001)

	// Everything absent from the patch survives untouched.
	assert.Equal(t, existing.Address, merged.Address)
	assert.Equal(t, existing.Phone, merged.Phone)
	assert.Equal(t, existing.BusinessType, merged.BusinessType)
	assert.Equal(t, existing.Amenities, merged.Amenities)
	assert.Equal(t, existing.HolidayInfo, merged.HolidayInfo)
	assert.Equal(t, existing.Latitude, merged.Latitude)
}

func TestPlacePatch_Apply_PresentFieldsOverwrite(t *testing.T) {
	existing := domain.Place{
		Name:        "A",
		Phone:       strPtr("02-000-0000"),
		Description: strPtr("old description"),
		MenuInfo:    []string{"국밥"},
	}

	patch := domain.PlacePatch{
		PhoneNumber: strPtr("02-111-1111"),
		Description: strPtr("new description"),
		MenuInfo:    []string{"경주갈비살", "한우된장밥"},
	}
	merged := patch.Apply(existing)

	assert.Equal(t, "02-111-1111", *merged.Phone)
	assert.Equal(t, "new description", *merged.Description)
	assert.Equal(t, []string{"경주갈비살", "한우된장밥"}, []string(merged.MenuInfo))
}

func TestPlacePatch_Apply_DoesNotTouchIdentityFields(t *testing.T) {
	existing := domain.Place{Name: "A", Latitude: 37.1, Longitude: 127.1}

	patch := domain.PlacePatch{
		Name:      strPtr("B"),
		Latitude:  floatPtr(38.0),
		Longitude: floatPtr(128.0),
		Address:   strPtr("somewhere"),
	}
	merged := patch.Apply(existing)

	assert.Equal(t, "A", merged.Name)
	assert.InDelta(t, 37.1, merged.Latitude, 0.0001)
	assert.InDelta(t, 127.1, merged.Longitude, 0.0001)
	assert.Equal(t, "somewhere", *merged.Address)
}

func TestNewPlace_Defaults(t *testing.T) {
	t.Run("missing coordinates default to zero", func(t *testing.T) {
		pl := domain.NewPlace("카페 온도", domain.PlacePatch{
			Category: strPtr("카페"),
		})

		assert.Equal(t, "카페 온도", pl.Name)
		assert.Equal(t, domain.DefaultCountryCode, pl.Country)
		assert.Zero(t, pl.Latitude)
		assert.Zero(t, pl.Longitude)
		assert.Equal(t, "카페", *pl.BusinessType)
		assert.NotEqual(t, pl.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("coordinates from patch are applied", func(t *testing.T) {
		pl := domain.NewPlace("A", domain.PlacePatch{
			Latitude:             floatPtr(37.5112),
			Longitude:            floatPtr(127.0867),
			VisitorReviewCount:   intPtr(1510),
			ReservationAvailable: boolPtr(true),
		})

		assert.InDelta(t, 37.5112, pl.Latitude, 0.0001)
		assert.InDelta(t, 127.0867, pl.Longitude, 0.0001)
		assert.Equal(t, 1510, *pl.VisitorReviewCount)
		assert.True(t, *pl.ReservationAvailable)
	})
}

func TestContentPatch_Apply(t *testing.T) {
	caption := "여기 정말 맛있어! #맛집"
	existing := domain.Content{
		Status:       domain.ContentStatusPending,
		OriginalURL:  "https://www.instagram.com/reel/ABC123/",
		Caption:      &caption,
		LikesCount:   intPtr(100),
		ThumbnailURL: strPtr("https://cdn.example.com/t1.jpg"),
	}

	patch := domain.ContentPatch{
		LikesCount:    intPtr(1234),
		CommentsCount: intPtr(56),
		Hashtags:      []string{"맛집", "서울"},
	}
	merged := patch.Apply(existing)

	assert.Equal(t, 1234, *merged.LikesCount)
	assert.Equal(t, 56, *merged.CommentsCount)
	assert.Equal(t, []string{"맛집", "서울"}, []string(merged.Hashtags))
	// Absent fields survive.
	assert.Equal(t, caption, *merged.Caption)
	assert.Equal(t, "https://cdn.example.com/t1.jpg", *merged.ThumbnailURL)
	// OriginalURL is engine-managed, never patched here.
	assert.Equal(t, existing.OriginalURL, merged.OriginalURL)
}
