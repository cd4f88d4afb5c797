package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"contactbook/internal/cache"
	"contactbook/internal/config"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// MaxCategoryDepth bounds the number of ancestors a category may have.
const MaxCategoryDepth = 32

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name             string
	ParentCategoryID *int64
}

// CategoryService handles category operations.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Tree(ctx context.Context) ([]*model.CategoryNode, error)
	Get(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, input CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id int64, input CategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo         repository.CategoryRepository
	cache        *cache.Client
	deletePolicy string
}

// NewCategoryService creates a new category service. deletePolicy is
// config.DeletePolicyCascade or config.DeletePolicyRestrict.
func NewCategoryService(repo repository.CategoryRepository, cache *cache.Client, deletePolicy string) CategoryService {
	return &categoryService{
		repo:         repo,
		cache:        cache,
		deletePolicy: deletePolicy,
	}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Tree returns the categories nested under their parents.
func (s *categoryService) Tree(ctx context.Context) ([]*model.CategoryNode, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.BuildCategoryTree(categories), nil
}

// Get retrieves a category by ID with caching.
func (s *categoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	var cached model.Category
	if s.cache.GetJSON(ctx, cache.CategoryKey(id), &cached) {
		return &cached, nil
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}

	s.cache.SetJSON(ctx, cache.CategoryKey(id), category, cache.DefaultTTL)
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	name, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, 0, input.ParentCategoryID); err != nil {
		return nil, err
	}

	category := &model.Category{Name: name, ParentCategoryID: input.ParentCategoryID}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, translateCategoryWriteError("create category", err)
	}
	return category, nil
}

// Update replaces name and parent of an existing category.
func (s *categoryService) Update(ctx context.Context, id int64, input CategoryInput) (*model.Category, error) {
	name, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	if err := s.checkParent(ctx, id, input.ParentCategoryID); err != nil {
		return nil, err
	}

	category.Name = name
	category.ParentCategoryID = input.ParentCategoryID
	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.cache.Delete(ctx, cache.CategoryKey(id))
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, translateCategoryWriteError(fmt.Sprintf("update category %d", id), err)
	}

	_ = s.cache.Delete(ctx, cache.CategoryKey(id))
	return category, nil
}

// Delete removes a category according to the configured policy. Under cascade every
// descendant category and every contact filed under any of them is removed too.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if s.deletePolicy == config.DeletePolicyRestrict {
		return s.deleteRestricted(ctx, id)
	}

	categoryIDs, contactIDs, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	keys := append(cache.CategoryKeys(categoryIDs), cache.ContactKeys(contactIDs)...)
	_ = s.cache.Delete(ctx, keys...)
	return nil
}

func (s *categoryService) deleteRestricted(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category %d: %w", id, err)
	}

	children, err := s.repo.CountChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("count child categories of %d: %w", id, err)
	}
	contacts, err := s.repo.CountContacts(ctx, id)
	if err != nil {
		return fmt.Errorf("count contacts of %d: %w", id, err)
	}
	if children > 0 || contacts > 0 {
		return fmt.Errorf("%w: %d child categories, %d contacts", apperrors.ErrCategoryInUse, children, contacts)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return apperrors.ErrCategoryInUse
		}
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	_ = s.cache.Delete(ctx, cache.CategoryKey(id))
	return nil
}

// checkParent verifies that parentID exists and that walking up from it neither
// reaches selfID nor exceeds MaxCategoryDepth. selfID is 0 for new categories.
func (s *categoryService) checkParent(ctx context.Context, selfID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}

	current := *parentID
	for depth := 0; ; depth++ {
		if selfID != 0 && current == selfID {
			return fmt.Errorf("%w: category %d", apperrors.ErrCategoryCycle, selfID)
		}
		if depth >= MaxCategoryDepth {
			return fmt.Errorf("%w: more than %d ancestors", apperrors.ErrCategoryTooDeep, MaxCategoryDepth)
		}

		ancestor, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if depth == 0 {
					return fmt.Errorf("%w: %d", apperrors.ErrParentCategoryNotFound, current)
				}
				// A dangling link higher up ends the chain.
				return nil
			}
			return fmt.Errorf("find category %d: %w", current, err)
		}
		if ancestor.ParentCategoryID == nil {
			return nil
		}
		current = *ancestor.ParentCategoryID
	}
}

func validateCategoryInput(input CategoryInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	return name, nil
}

func translateCategoryWriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrParentCategoryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
