package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jviciana84/prod-sub002/internal/engine"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

const defaultValuationLimit = 100

// Valuator runs pricing passes and serves the last committed one.
type Valuator interface {
	Recompute(ctx context.Context) (*engine.Snapshot, error)
	Snapshot() (*engine.Snapshot, error)
}

// ValuationsHandler serves committed valuation results.
type ValuationsHandler struct {
	valuator Valuator
}

// NewValuationsHandler creates a new ValuationsHandler.
func NewValuationsHandler(v Valuator) *ValuationsHandler {
	return &ValuationsHandler{valuator: v}
}

// --- Input/Output types ---

// PassSummary identifies the pass a response was read from.
type PassSummary struct {
	PassID      string    `json:"pass_id"      doc:"Pricing pass UUID"`
	Generation  uint64    `json:"generation"   doc:"Monotonic pass number within this process"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

func summarize(s *engine.Snapshot) PassSummary {
	return PassSummary{
		PassID:      s.PassID.String(),
		Generation:  s.Generation,
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
	}
}

// RecomputeOutput is the response for a synchronous pass.
type RecomputeOutput struct {
	Body struct {
		PassSummary
		Stats domain.PortfolioStats `json:"stats"`
	}
}

// ListValuationsInput filters committed results.
type ListValuationsInput struct {
	Tag      string `query:"tag"      doc:"Filter by profit tag"                     enum:"rentable,no_rentable,no_interesante,sin_datos,"`
	Position string `query:"position" doc:"Filter by market position"                enum:"competitivo,justo,alto,"`
	Model    string `query:"model"    doc:"Case-insensitive model substring"`
	Limit    int    `query:"limit"    doc:"Number of results (default 100)"          minimum:"1"                                       maximum:"10000"`
	Offset   int    `query:"offset"   doc:"Pagination offset"                        minimum:"0"`
}

// ListValuationsOutput is the response for listing results.
type ListValuationsOutput struct {
	Body struct {
		PassSummary
		Results []domain.ValuationResult `json:"results"`
		Total   int                      `json:"total"`
		Limit   int                      `json:"limit"`
		Offset  int                      `json:"offset"`
	}
}

// GetValuationInput is the input for one vehicle's result.
type GetValuationInput struct {
	ID string `path:"id" doc:"Vehicle ID"`
}

// GetValuationOutput is the response for one vehicle's result.
type GetValuationOutput struct {
	Body domain.ValuationResult
}

// PortfolioOutput is the response for portfolio statistics.
type PortfolioOutput struct {
	Body struct {
		PassSummary
		Stats domain.PortfolioStats `json:"stats"`
	}
}

// OpportunitiesOutput is the response for the opportunity board.
type OpportunitiesOutput struct {
	Body struct {
		PassSummary
		Board domain.OpportunityBoard `json:"board"`
	}
}

// --- Handlers ---

// Recompute runs a full pass and waits for it to commit.
func (h *ValuationsHandler) Recompute(ctx context.Context, _ *struct{}) (*RecomputeOutput, error) {
	snap, err := h.valuator.Recompute(ctx)
	if err != nil {
		if errors.Is(err, engine.ErrPassSuperseded) {
			return nil, huma.Error409Conflict("pricing pass superseded by a newer one")
		}
		return nil, huma.Error500InternalServerError("recompute failed: " + err.Error())
	}

	resp := &RecomputeOutput{}
	resp.Body.PassSummary = summarize(snap)
	resp.Body.Stats = snap.Stats
	return resp, nil
}

// ListValuations returns committed results filtered by tag, position and model.
func (h *ValuationsHandler) ListValuations(
	_ context.Context,
	input *ListValuationsInput,
) (*ListValuationsOutput, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	model := strings.ToLower(strings.TrimSpace(input.Model))
	matched := make([]domain.ValuationResult, 0, len(snap.Results))
	for i := range snap.Results {
		r := &snap.Results[i]
		if input.Tag != "" && string(r.Tag) != input.Tag {
			continue
		}
		if input.Position != "" && string(r.Position) != input.Position {
			continue
		}
		if model != "" && !strings.Contains(strings.ToLower(r.Model), model) {
			continue
		}
		matched = append(matched, *r)
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultValuationLimit
	}
	start := min(input.Offset, len(matched))
	end := min(start+limit, len(matched))

	resp := &ListValuationsOutput{}
	resp.Body.PassSummary = summarize(snap)
	resp.Body.Results = matched[start:end]
	resp.Body.Total = len(matched)
	resp.Body.Limit = limit
	resp.Body.Offset = input.Offset
	return resp, nil
}

// GetValuation returns the committed result for one vehicle.
func (h *ValuationsHandler) GetValuation(
	_ context.Context,
	input *GetValuationInput,
) (*GetValuationOutput, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	r, ok := snap.Result(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("valuation not found")
	}
	return &GetValuationOutput{Body: *r}, nil
}

// Portfolio returns the aggregate statistics of the last pass.
func (h *ValuationsHandler) Portfolio(_ context.Context, _ *struct{}) (*PortfolioOutput, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	resp := &PortfolioOutput{}
	resp.Body.PassSummary = summarize(snap)
	resp.Body.Stats = snap.Stats
	return resp, nil
}

// Opportunities returns the buying opportunities of the last pass grouped by
// model.
func (h *ValuationsHandler) Opportunities(_ context.Context, _ *struct{}) (*OpportunitiesOutput, error) {
	snap, err := h.snapshot()
	if err != nil {
		return nil, err
	}

	resp := &OpportunitiesOutput{}
	resp.Body.PassSummary = summarize(snap)
	resp.Body.Board = snap.Board
	return resp, nil
}

func (h *ValuationsHandler) snapshot() (*engine.Snapshot, error) {
	snap, err := h.valuator.Snapshot()
	if err != nil {
		if errors.Is(err, engine.ErrNoSnapshot) {
			return nil, huma.Error503ServiceUnavailable("no pricing pass has completed yet")
		}
		return nil, huma.Error500InternalServerError("reading snapshot: " + err.Error())
	}
	return snap, nil
}

// RegisterValuationRoutes registers valuation endpoints with the Huma API.
func RegisterValuationRoutes(api huma.API, h *ValuationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "recompute-valuations",
		Method:      http.MethodPost,
		Path:        "/api/v1/valuations/recompute",
		Summary:     "Recompute valuations",
		Description: "Prices every vehicle against fresh comparables and commits the results. " +
			"Supersedes any pass already running.",
		Tags:   []string{"valuations"},
		Errors: []int{http.StatusConflict, http.StatusInternalServerError},
	}, h.Recompute)

	huma.Register(api, huma.Operation{
		OperationID: "list-valuations",
		Method:      http.MethodGet,
		Path:        "/api/v1/valuations",
		Summary:     "List valuations",
		Description: "Returns the results of the last committed pass, optionally filtered by tag, position and model.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.ListValuations)

	huma.Register(api, huma.Operation{
		OperationID: "get-valuation",
		Method:      http.MethodGet,
		Path:        "/api/v1/valuations/{id}",
		Summary:     "Get a valuation",
		Description: "Returns the last committed result for one vehicle.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusNotFound, http.StatusServiceUnavailable},
	}, h.GetValuation)

	huma.Register(api, huma.Operation{
		OperationID: "get-portfolio",
		Method:      http.MethodGet,
		Path:        "/api/v1/portfolio",
		Summary:     "Get portfolio statistics",
		Description: "Returns counts by profit tag and mean prices over the last committed pass.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Portfolio)

	huma.Register(api, huma.Operation{
		OperationID: "list-opportunities",
		Method:      http.MethodGet,
		Path:        "/api/v1/opportunities",
		Summary:     "List buying opportunities",
		Description: "Returns vehicles worth acquiring, grouped by model and split by whether the model is in stock.",
		Tags:        []string{"valuations"},
		Errors:      []int{http.StatusServiceUnavailable},
	}, h.Opportunities)
}
