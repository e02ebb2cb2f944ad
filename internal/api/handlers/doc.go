package handlers

import "time"

// StatusResponse is the liveness probe body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadinessResponse is the readiness probe body. Checks maps each dependency
// to "ok" or its failure. LastPass describes the committed snapshot; it is
// absent until the first pass commits and does not affect readiness.
type ReadinessResponse struct {
	Status   string                `json:"status"              example:"ready"`
	Checks   map[string]string     `json:"checks"`
	LastPass *ReadinessPassSummary `json:"last_pass,omitempty"`
}

// ReadinessPassSummary identifies a committed pricing pass.
type ReadinessPassSummary struct {
	PassID      string    `json:"pass_id"`
	Generation  uint64    `json:"generation"`
	CompletedAt time.Time `json:"completed_at"`
	Vehicles    int       `json:"vehicles"`
}
