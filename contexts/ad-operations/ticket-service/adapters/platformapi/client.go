package platformapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"trafficdesk/contexts/ad-operations/ticket-service/ports"
)

const (
	defaultTimeout    = 30 * time.Second
	responseBodyLimit = 1 << 20
)

// Client posts translator payloads to the ad platforms over HTTPS. It
// reports HTTP-level failures through GatewayResponse and reserves the
// error return for requests that never produced a response.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) Post(ctx context.Context, req ports.GatewayRequest) (ports.GatewayResponse, error) {
	body, err := json.Marshal(req.Payload)
	if err != nil {
		return ports.GatewayResponse{}, fmt.Errorf("encode platform payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.GatewayResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("platform request failed",
			"event", "platform_request_failed",
			"module", "ad-operations/ticket-service",
			"layer", "adapter",
			"endpoint", req.Endpoint,
			"error", err.Error(),
		)
		return ports.GatewayResponse{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return ports.GatewayResponse{}, err
	}
	return ports.GatewayResponse{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		Body:       respBody,
	}, nil
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := at.Sub(now); wait > 0 {
			return wait
		}
	}
	return 0
}
