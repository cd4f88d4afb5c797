// Package middleware holds the echo middleware that guards mutating routes.
package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
)

// ClaimsContextKey is the echo context key holding the caller's *auth.Claims.
const ClaimsContextKey = "claims"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// JWT rejects requests without a valid bearer token with 401 and exposes the
// claims on both the echo context and the request context.
func JWT(validator TokenValidator) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return validator.ValidateToken(token)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get(ClaimsContextKey).(*auth.Claims); ok {
				req := c.Request()
				c.SetRequest(req.WithContext(auth.ContextWithClaims(req.Context(), claims)))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var parseErr *echojwt.TokenParsingError
			switch {
			case errors.Is(err, apperrors.ErrExpiredToken):
				err = apperrors.ErrExpiredToken
			case errors.As(err, &parseErr):
				err = apperrors.ErrInvalidToken
			default:
				err = apperrors.ErrUnauthenticated
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
		},
	})
}

// RequireRole rejects authenticated callers lacking role with 403. It must run after JWT.
// An empty role lets every authenticated caller through.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role == "" {
				return next(c)
			}
			claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
			if !ok {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if !claims.HasRole(role) {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}
