package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactbook/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents a new category. Any id in the body is ignored.
type CreateCategoryRequest struct {
	Name             string `json:"name" validate:"required,max=255"`
	ParentCategoryID *int64 `json:"parentCategoryId" validate:"omitempty,gt=0"`
}

// UpdateCategoryRequest replaces an existing category.
type UpdateCategoryRequest struct {
	ID               int64  `json:"id" validate:"required,gt=0"`
	Name             string `json:"name" validate:"required,max=255"`
	ParentCategoryID *int64 `json:"parentCategoryId" validate:"omitempty,gt=0"`
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Tree godoc
// @Summary Category tree
// @Description Categories nested under their parents; roots first.
// @Tags categories
// @Produce json
// @Success 200 {array} model.CategoryNode
// @Failure 500 {object} errors.ErrorResponse
// @Router /category/tree [get]
func (h *CategoryHandler) Tree(c echo.Context) error {
	tree, err := h.categoryService.Tree(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tree)
}

// Get godoc
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /category/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Create(c.Request().Context(), service.CategoryInput{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Replace category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateCategoryRequest true "Category"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /category [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.categoryService.Update(c.Request().Context(), req.ID, service.CategoryInput{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete category
// @Description Depending on configuration, either removes descendants and their contacts too or refuses with 409 while dependents exist.
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
