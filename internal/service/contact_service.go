package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"contactbook/internal/cache"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// ContactService handles contact operations.
type ContactService interface {
	List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error)
	Get(ctx context.Context, id int64, expandCategory bool) (*model.Contact, error)
	Create(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) (*model.Contact, error)
	Delete(ctx context.Context, id int64) error
}

type contactService struct {
	repo         repository.ContactRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewContactService creates a new contact service.
func NewContactService(repo repository.ContactRepository, categoryRepo repository.CategoryRepository, cache *cache.Client) ContactService {
	return &contactService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *contactService) List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error) {
	contacts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Get retrieves a contact by ID. Plain reads are cached; expanded reads always hit the store.
func (s *contactService) Get(ctx context.Context, id int64, expandCategory bool) (*model.Contact, error) {
	if !expandCategory {
		var cached model.Contact
		if s.cache.GetJSON(ctx, cache.ContactKey(id), &cached) {
			return &cached, nil
		}
	}

	contact, err := s.repo.FindByID(ctx, id, expandCategory)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact %d: %w", id, err)
	}

	if !expandCategory {
		s.cache.SetJSON(ctx, cache.ContactKey(id), contact, cache.DefaultTTL)
	}
	return contact, nil
}

// Create stores a new contact. Any id or embedded category on the input is ignored.
func (s *contactService) Create(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	contact.ID = 0
	if err := s.prepare(ctx, contact); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, translateContactWriteError("create contact", err)
	}
	return contact, nil
}

// Update replaces every field of an existing contact.
func (s *contactService) Update(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	if contact.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", apperrors.ErrValidation)
	}
	if _, err := s.repo.FindByID(ctx, contact.ID, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact %d: %w", contact.ID, err)
	}
	if err := s.prepare(ctx, contact); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, contact); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.cache.Delete(ctx, cache.ContactKey(contact.ID))
			return nil, apperrors.ErrContactNotFound
		}
		return nil, translateContactWriteError(fmt.Sprintf("update contact %d", contact.ID), err)
	}

	_ = s.cache.Delete(ctx, cache.ContactKey(contact.ID))
	return contact, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	_ = s.cache.Delete(ctx, cache.ContactKey(id))
	return nil
}

// prepare validates required fields, normalizes optional ones and checks that the
// referenced category exists.
func (s *contactService) prepare(ctx context.Context, contact *model.Contact) error {
	contact.Email = strings.TrimSpace(contact.Email)
	if contact.Email == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if contact.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId is required", apperrors.ErrValidation)
	}
	if contact.BirthDate != nil && contact.BirthDate.IsZero() {
		contact.BirthDate = nil
	}
	contact.Category = nil

	if _, err := s.categoryRepo.FindByID(ctx, contact.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", apperrors.ErrForeignKeyViolation, contact.CategoryID)
		}
		return fmt.Errorf("find category %d: %w", contact.CategoryID, err)
	}
	return nil
}

func translateContactWriteError(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrForeignKeyViolation
	}
	return fmt.Errorf("%s: %w", op, err)
}
