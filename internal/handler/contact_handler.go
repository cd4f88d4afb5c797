package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"contactbook/internal/model"
	"contactbook/internal/service"
)

const expandCategory = "category"

// ContactHandler handles contact endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest is the writable shape of a contact. ID is required on update only.
type ContactRequest struct {
	ID          int64       `json:"id"`
	Name        *string     `json:"name" validate:"omitempty,max=255"`
	SureName    *string     `json:"sureName" validate:"omitempty,max=255"`
	Email       string      `json:"email" validate:"required,max=255"`
	PhoneNumber *string     `json:"phoneNumber" validate:"omitempty,max=64"`
	BirthDate   *model.Date `json:"birthDate" swaggertype:"string" example:"2000-01-01"`
	CategoryID  int64       `json:"categoryId" validate:"required,gt=0"`
}

func (r ContactRequest) toModel() *model.Contact {
	return &model.Contact{
		ID:          r.ID,
		Name:        r.Name,
		SureName:    r.SureName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		BirthDate:   r.BirthDate,
		CategoryID:  r.CategoryID,
	}
}

// List godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Param categoryId query int false "Only contacts of this category"
// @Param expand query string false "Set to 'category' to embed each contact's category"
// @Success 200 {array} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contactinfo [get]
func (h *ContactHandler) List(c echo.Context) error {
	filter := model.ContactFilter{ExpandCategory: c.QueryParam("expand") == expandCategory}
	if raw := c.QueryParam("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || categoryID <= 0 {
			return badRequest("invalid categoryId", "INVALID_ID")
		}
		filter.CategoryID = &categoryID
	}

	contacts, err := h.contactService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// Get godoc
// @Summary Get contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Param expand query string false "Set to 'category' to embed the contact's category"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contactinfo/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.Get(c.Request().Context(), id, c.QueryParam("expand") == expandCategory)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Create godoc
// @Summary Create contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Contact"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contactinfo [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contactService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Update godoc
// @Summary Replace contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ContactRequest true "Contact"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contactinfo [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ID <= 0 {
		return badRequest("id is required", "VALIDATION_ERROR")
	}

	contact, err := h.contactService.Update(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete contact
// @Tags contacts
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contactinfo/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
