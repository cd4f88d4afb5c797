package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/service"
)

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	bootstrapService service.BootstrapService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(bootstrapService service.BootstrapService) *SeedHandler {
	return &SeedHandler{bootstrapService: bootstrapService}
}

// SeedResponse reports how many missing rows were inserted.
type SeedResponse struct {
	Message    string `json:"message"`
	Categories int    `json:"categories"`
	Contacts   int    `json:"contacts"`
}

// Seed godoc
// @Summary Restore default categories and sample contacts
// @Description Inserts only rows that are missing; existing rows are left untouched.
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.bootstrapService.SeedCategories(ctx)
	if err != nil {
		return respondError(c, err)
	}
	contacts, err := h.bootstrapService.SeedContacts(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message:    "seed completed",
		Categories: categories,
		Contacts:   contacts,
	})
}
