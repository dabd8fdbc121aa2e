package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/services"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// HandleServiceError maps domain errors to HTTP responses in one place so
// handlers stay thin.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	switch {
	case services.IsNotFoundError(err):
		if werr := utils.WriteNotFound(w, err.Error()); werr != nil {
			logger.Error("failed to write not found response", zap.Error(werr))
		}

	case services.IsValidationError(err):
		if werr := utils.WriteBadRequest(w, err.Error(), details); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsUnauthorizedError(err):
		if werr := utils.WriteUnauthorized(w, err.Error()); werr != nil {
			logger.Error("failed to write unauthorized response", zap.Error(werr))
		}

	case services.IsConflictError(err):
		if werr := utils.WriteConflict(w, err.Error(), details); werr != nil {
			logger.Error("failed to write conflict response", zap.Error(werr))
		}

	case services.IsUnavailableError(err):
		if werr := utils.WriteServiceUnavailable(w, err.Error()); werr != nil {
			logger.Error("failed to write unavailable response", zap.Error(werr))
		}

	default:
		logger.Error("unhandled service error", zap.Error(err))
		if werr := utils.WriteInternalError(w, ""); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}
	}
}
