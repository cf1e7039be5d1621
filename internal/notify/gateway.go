package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mapsee-lab/placesync/internal/logger"
)

const gatewayRequestTimeout = 30 * time.Second

// GatewayClient sends notices through the push gateway's REST API.
type GatewayClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

type gatewayError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type gatewayResponse struct {
	MessageID string         `json:"message_id"`
	Errors    []gatewayError `json:"errors,omitempty"`
}

func NewGatewayClient(baseURL, apiKey string, log logger.Logger) (*GatewayClient, error) {
	if baseURL == "" {
		return nil, errors.New("push gateway URL is required")
	}
	if apiKey == "" {
		return nil, errors.New("push gateway api key is required")
	}

	return &GatewayClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: gatewayRequestTimeout},
		logger:  log,
	}, nil
}

// Send posts one notice to the gateway.
func (c *GatewayClient) Send(ctx context.Context, notice Notice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/push", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)

	requestStartTime := time.Now()
	resp, err := c.client.Do(httpReq)
	requestDuration := time.Since(requestStartTime)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		bodyBytes, _ := io.ReadAll(resp.Body)

		var gwResp gatewayResponse
		if decodeErr := json.Unmarshal(bodyBytes, &gwResp); decodeErr == nil && len(gwResp.Errors) > 0 {
			detail := gwResp.Errors[0]
			c.logger.Error("Push gateway rejected notice",
				logger.String("member_id", notice.MemberID.String()),
				logger.Int("status_code", resp.StatusCode),
				logger.String("error_title", detail.Title),
				logger.String("error_detail", detail.Detail),
				logger.Duration("request_duration", requestDuration),
			)
			return fmt.Errorf("push gateway error (%d): %s - %s", resp.StatusCode, detail.Title, detail.Detail)
		}
		return fmt.Errorf("push gateway error: %d %s", resp.StatusCode, resp.Status)
	}

	var gwResp gatewayResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&gwResp); decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	c.logger.Debug("Notice delivered",
		logger.String("member_id", notice.MemberID.String()),
		logger.String("message_id", gwResp.MessageID),
		logger.Duration("request_duration", requestDuration),
	)
	return nil
}
