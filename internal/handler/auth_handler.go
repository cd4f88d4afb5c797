package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	"contactbook/internal/errors"
	"contactbook/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Subject   string    `json:"sub"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login godoc
// @Summary Login user
// @Description Failures are answered with a plain-text reason.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {string} string "Username and password are required."
// @Failure 401 {string} string "Wrong username or password."
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, errors.ErrInvalidRequest.Error())
	}

	result, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrInvalidRequest):
			return c.String(http.StatusBadRequest, errors.ErrInvalidRequest.Error())
		case errors.Is(err, errors.ErrInvalidCredentials):
			return c.String(http.StatusUnauthorized, errors.ErrInvalidCredentials.Error())
		}
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Me godoc
// @Summary Current caller
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := auth.ClaimsFromContext(c.Request().Context())
	if !ok {
		return respondError(c, errors.ErrUnauthenticated)
	}

	resp := MeResponse{
		Subject:  claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    claims.Roles,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	if resp.Roles == nil {
		resp.Roles = []string{}
	}
	return c.JSON(http.StatusOK, resp)
}
