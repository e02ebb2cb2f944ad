package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// PassInfo identifies the pricing pass a response was read from.
type PassInfo struct {
	PassID      string    `json:"pass_id"`
	Generation  uint64    `json:"generation"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// PortfolioResponse carries aggregate statistics for a pass.
type PortfolioResponse struct {
	PassInfo
	Stats domain.PortfolioStats `json:"stats"`
}

// ValuationsResponse wraps a paginated valuations response.
type ValuationsResponse struct {
	PassInfo
	Results []domain.ValuationResult `json:"results"`
	Total   int                      `json:"total"`
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
}

// OpportunitiesResponse carries the opportunity board for a pass.
type OpportunitiesResponse struct {
	PassInfo
	Board domain.OpportunityBoard `json:"board"`
}

// ListValuationsParams defines query parameters for valuation queries.
type ListValuationsParams struct {
	Tag      string
	Position string
	Model    string
	Limit    int
	Offset   int
}

// Recompute runs a pricing pass and waits for it to commit.
func (c *Client) Recompute(ctx context.Context) (*PortfolioResponse, error) {
	var resp PortfolioResponse
	if err := c.post(ctx, "/api/v1/valuations/recompute", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListValuations returns committed results matching the given parameters.
func (c *Client) ListValuations(
	ctx context.Context,
	params *ListValuationsParams,
) (*ValuationsResponse, error) {
	q := url.Values{}
	if params.Tag != "" {
		q.Set("tag", params.Tag)
	}
	if params.Position != "" {
		q.Set("position", params.Position)
	}
	if params.Model != "" {
		q.Set("model", params.Model)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/valuations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ValuationsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetValuation returns the committed result for one vehicle.
func (c *Client) GetValuation(ctx context.Context, vehicleID string) (*domain.ValuationResult, error) {
	var r domain.ValuationResult
	if err := c.get(ctx, "/api/v1/valuations/"+url.PathEscape(vehicleID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Portfolio returns the aggregate statistics of the last pass.
func (c *Client) Portfolio(ctx context.Context) (*PortfolioResponse, error) {
	var resp PortfolioResponse
	if err := c.get(ctx, "/api/v1/portfolio", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Opportunities returns the opportunity board of the last pass.
func (c *Client) Opportunities(ctx context.Context) (*OpportunitiesResponse, error) {
	var resp OpportunitiesResponse
	if err := c.get(ctx, "/api/v1/opportunities", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
