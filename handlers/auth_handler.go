package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/auth"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// LoginRequest represents an operator login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued operator token
type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles operator authentication
type AuthHandler struct {
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(tokens *auth.TokenService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, logger: logger}
}

// Login validates the operator credentials and issues a token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	token, err := h.tokens.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("login rejected",
				zap.String("username", req.Username))
			_ = utils.WriteUnauthorized(w, "invalid credentials")
			return
		}
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("operator logged in",
		zap.String("username", req.Username))
	_ = utils.WriteOK(w, LoginResponse{Token: token})
}
