package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapsee-lab/placesync/internal/logger"
	"github.com/mapsee-lab/placesync/internal/notify"
)

func TestGatewayClient_Send(t *testing.T) {
	var gotKey string
	var gotNotice notify.Notice

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotNotice))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message_id":"msg-1"}`))
	}))
	defer server.Close()

	client, err := notify.NewGatewayClient(server.URL, "secret-key", logger.NewNopLogger())
	require.NoError(t, err)

	notice := notify.Notice{
		MemberID: uuid.New(),
		Title:    "콘텐츠 분석 완료",
		Body:     "2개의 장소가 발견되었습니다.",
		Data:     map[string]string{"type": "CONTENT_COMPLETE"},
	}
	require.NoError(t, client.Send(context.Background(), notice))

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, notice.MemberID, gotNotice.MemberID)
	assert.Equal(t, notice.Body, gotNotice.Body)
}

func TestGatewayClient_SendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"errors":[{"status":"502","title":"upstream down","detail":"fcm unreachable"}]}`))
	}))
	defer server.Close()

	client, err := notify.NewGatewayClient(server.URL, "secret-key", logger.NewNopLogger())
	require.NoError(t, err)

	sendErr := client.Send(context.Background(), notify.Notice{MemberID: uuid.New()})
	require.Error(t, sendErr)
	assert.Contains(t, sendErr.Error(), "upstream down")
}

func TestNewGatewayClient_Validation(t *testing.T) {
	_, err := notify.NewGatewayClient("", "key", logger.NewNopLogger())
	require.Error(t, err)

	_, err = notify.NewGatewayClient("http://gateway", "", logger.NewNopLogger())
	require.Error(t, err)
}
