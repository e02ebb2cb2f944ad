package client

import (
	"context"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// ApplyConfigResponse acknowledges an applied configuration.
type ApplyConfigResponse struct {
	Status string         `json:"status"`
	Config pricing.Config `json:"config"`
}

// GetConfig returns the pricing configuration in force.
func (c *Client) GetConfig(ctx context.Context) (*pricing.Config, error) {
	var cfg pricing.Config
	if err := c.get(ctx, "/api/v1/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyConfig replaces the pricing configuration. The server recomputes in
// the background; use Recompute to wait for fresh results.
func (c *Client) ApplyConfig(ctx context.Context, cfg *pricing.Config) (*ApplyConfigResponse, error) {
	var resp ApplyConfigResponse
	if err := c.put(ctx, "/api/v1/config", cfg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
