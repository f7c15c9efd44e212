package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"uptimebar/internal/domain"
	"uptimebar/internal/logger"
)

// Fetcher retrieves one status payload.
type Fetcher interface {
	Fetch(ctx context.Context) (*domain.StatusResponse, error)
}

type Client struct {
	client     *http.Client
	baseURL    string
	token      string
	instanceID string
	log        logger.Logger
}

func NewClient(cfg *Config, log logger.Logger) *Client {
	return &Client{
		client:     &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second},
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		token:      cfg.APIToken,
		instanceID: uuid.NewString(),
		log:        log,
	}
}

// Fetch polls the read endpoint once. Transport errors, timeouts, non-2xx
// statuses and undecodable bodies all surface the same way: one failed
// cycle for the caller to reschedule past.
func (c *Client) Fetch(ctx context.Context) (*domain.StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/uptime", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Widget-Instance", c.instanceID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uptime: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var payload domain.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &payload, nil
}
