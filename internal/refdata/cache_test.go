package refdata_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsee-lab/placesync/internal/domain"
	"github.com/mapsee-lab/placesync/internal/logger"
	"github.com/mapsee-lab/placesync/internal/refdata"
)

type stubSource struct {
	interests []domain.Interest
	err       error
	calls     int
}

func (s *stubSource) ListAll(_ context.Context) ([]domain.Interest, error) {
	s.calls++
	return s.interests, s.err
}

func newTestCache(t *testing.T, source *stubSource) (*refdata.InterestCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return refdata.NewInterestCache(client, source, time.Hour, logger.NewNopLogger()), mr
}

func TestInterestCache_List_MissThenHit(t *testing.T) {
	source := &stubSource{
		interests: []domain.Interest{
			{ID: uuid.New(), Category: "FOOD", Name: "카페"},
			{ID: uuid.New(), Category: "FOOD", Name: "맛집"},
		},
	}
	cache, _ := newTestCache(t, source)
	ctx := context.Background()

	first, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, source.calls)

	// Second read comes from Redis, not the source.
	second, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.calls)
}

func TestInterestCache_List_SourceError(t *testing.T) {
	source := &stubSource{err: errors.New("db down")}
	cache, _ := newTestCache(t, source)

	_, err := cache.List(context.Background())
	require.Error(t, err)
}

func TestInterestCache_List_CorruptCacheFallsThrough(t *testing.T) {
	source := &stubSource{
		interests: []domain.Interest{{ID: uuid.New(), Category: "TRAVEL", Name: "국내여행"}},
	}
	cache, mr := newTestCache(t, source)
	require.NoError(t, mr.Set("refdata:interests", "not-json"))

	interests, err := cache.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, interests, 1)
	assert.Equal(t, 1, source.calls)
}

func TestInterestCache_Invalidate(t *testing.T) {
	source := &stubSource{
		interests: []domain.Interest{{ID: uuid.New(), Category: "FOOD", Name: "카페"}},
	}
	cache, mr := newTestCache(t, source)
	ctx := context.Background()

	_, err := cache.List(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("refdata:interests"))

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists("refdata:interests"))

	// Round-trip sanity: the cached payload is the JSON interest list.
	_, listErr := cache.List(ctx)
	require.NoError(t, listErr)
	var cached []domain.Interest
	raw, getErr := mr.Get("refdata:interests")
	require.NoError(t, getErr)
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Len(t, cached, 1)
}
