package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/services/engine"
	"github.com/PooyaTarashi/railway-reservation/services/policy"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// RunCommandsRequest is a timestamped command batch
type RunCommandsRequest struct {
	Commands []models.Command `json:"commands" validate:"required,min=1"`
}

// RunCommandsResponse carries the outcome stream in processing order
type RunCommandsResponse struct {
	Outcomes []models.Outcome `json:"outcomes"`
}

// CommandHandler handles command batch execution and the directive log
type CommandHandler struct {
	engine *engine.Service
	policy *policy.Service
	logger *zap.Logger
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(engineSvc *engine.Service, policySvc *policy.Service, logger *zap.Logger) *CommandHandler {
	return &CommandHandler{
		engine: engineSvc,
		policy: policySvc,
		logger: logger,
	}
}

// Run processes a command batch synchronously and returns the outcomes.
// POST /api/v1/commands
func (h *CommandHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunCommandsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	outcomes, err := h.engine.Run(r.Context(), req.Commands)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, RunCommandsResponse{Outcomes: outcomes})
}

// ListPolicies returns the applied directive log in registration order.
// GET /api/v1/policies
func (h *CommandHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, h.policy.Directives())
}
