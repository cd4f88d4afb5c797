package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"contactbook/docs"
	"contactbook/internal/auth"
	"contactbook/internal/config"
	"contactbook/internal/handler"
	"contactbook/internal/logging"
	"contactbook/internal/metrics"
	authmw "contactbook/internal/middleware"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Contact  *handler.ContactHandler
	Seed     *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *slog.Logger,
	jwtService *auth.JWTService,
	m *metrics.Metrics,
	h Handlers,
) {
	// Recover must stay inside metrics and the request logger.
	e.Use(middleware.RequestID())
	e.Use(m.Middleware())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.Recover())
	// AllowHeaders stays unset: preflights echo Access-Control-Request-Headers, Authorization included.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := authmw.JWT(jwtService)
	requireMutationRole := authmw.RequireRole(cfg.MutationRole)

	// Public routes
	e.POST("/auth/login", h.Auth.Login)
	e.GET("/auth/me", h.Auth.Me, requireAuth)

	e.GET("/category", h.Category.List)
	e.GET("/category/tree", h.Category.Tree)
	e.GET("/category/:id", h.Category.Get)

	e.GET("/contactinfo", h.Contact.List)
	e.GET("/contactinfo/:id", h.Contact.Get)

	// Mutations require a valid bearer token and, when configured, a role.
	mutate := []echo.MiddlewareFunc{requireAuth, requireMutationRole}

	e.POST("/category", h.Category.Create, mutate...)
	e.PUT("/category", h.Category.Update, mutate...)
	e.DELETE("/category/:id", h.Category.Delete, mutate...)

	e.POST("/contactinfo", h.Contact.Create, mutate...)
	e.PUT("/contactinfo", h.Contact.Update, mutate...)
	e.DELETE("/contactinfo/:id", h.Contact.Delete, mutate...)

	if h.Seed != nil {
		e.POST("/seed", h.Seed.Seed, requireAuth, authmw.RequireRole(cfg.Admin.Role))
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
