package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jviciana84/prod-sub002/internal/configstore"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// ConfigManager reads and replaces the pricing configuration in force.
type ConfigManager interface {
	Config() pricing.Config
	ApplyConfig(ctx context.Context, cfg pricing.Config) error
}

// ConfigHandler handles the pricing configuration endpoints.
type ConfigHandler struct {
	configs ConfigManager
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cm ConfigManager) *ConfigHandler {
	return &ConfigHandler{configs: cm}
}

// GetConfigOutput is the response for the current configuration.
type GetConfigOutput struct {
	Body pricing.Config
}

// ApplyConfigInput carries a complete replacement configuration.
type ApplyConfigInput struct {
	Body pricing.Config
}

// ApplyConfigOutput acknowledges an applied configuration.
type ApplyConfigOutput struct {
	Body struct {
		Status string         `json:"status" example:"recompute started" doc:"Apply status"`
		Config pricing.Config `json:"config"                             doc:"Configuration now in force"`
	}
}

// GetConfig returns the configuration in force.
func (h *ConfigHandler) GetConfig(_ context.Context, _ *struct{}) (*GetConfigOutput, error) {
	return &GetConfigOutput{Body: h.configs.Config()}, nil
}

// ApplyConfig validates, persists and swaps in a new configuration. A
// recompute starts in the background; the response does not wait for it.
func (h *ConfigHandler) ApplyConfig(
	ctx context.Context,
	input *ApplyConfigInput,
) (*ApplyConfigOutput, error) {
	if err := h.configs.ApplyConfig(ctx, input.Body); err != nil {
		if errors.Is(err, configstore.ErrInvalid) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return nil, huma.Error500InternalServerError("applying config: " + err.Error())
	}

	resp := &ApplyConfigOutput{}
	resp.Body.Status = "recompute started"
	resp.Body.Config = h.configs.Config()
	return resp, nil
}

// RegisterConfigRoutes registers configuration endpoints with the Huma API.
func RegisterConfigRoutes(api huma.API, h *ConfigHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        "/api/v1/config",
		Summary:     "Get pricing configuration",
		Description: "Returns the cost, margin and tolerance settings currently used for pricing.",
		Tags:        []string{"config"},
	}, h.GetConfig)

	huma.Register(api, huma.Operation{
		OperationID:   "apply-config",
		Method:        http.MethodPut,
		Path:          "/api/v1/config",
		Summary:       "Apply pricing configuration",
		Description:   "Validates and persists a complete configuration, then recomputes all valuations in the background.",
		Tags:          []string{"config"},
		DefaultStatus: http.StatusAccepted,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusInternalServerError},
	}, h.ApplyConfig)
}
