package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"inkpost/internal/logger"
	"inkpost/internal/services"
	"inkpost/internal/utils/helpers"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

// Login godoc
// @Summary Operator login
// @Description Exchanges the operator credentials for an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} helpers.Response "Invalid JSON"
// @Failure 401 {object} helpers.Response "Invalid credentials"
// @Failure 503 {object} helpers.Response "Login not configured"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("Failed to decode login JSON", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	res, err := h.authService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	case errors.Is(err, services.ErrLoginDisabled):
		helpers.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		writeError(w, r, err)
		return
	}

	helpers.JSON(w, http.StatusOK, res)
}
