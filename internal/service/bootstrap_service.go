package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"contactbook/internal/auth"
	"contactbook/internal/cache"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// AdminAccount describes the administrative identity reconciled at startup.
type AdminAccount struct {
	Username string
	Email    string
	Password string
	Role     string
}

// BootstrapService reconciles the identity store and seeds reference data.
// Every step checks for existing rows first and is safe to run on every start.
type BootstrapService interface {
	EnsureAdmin(ctx context.Context, admin AdminAccount) error
	SeedCategories(ctx context.Context) (int, error)
	SeedContacts(ctx context.Context) (int, error)
}

type bootstrapService struct {
	userRepo     repository.UserRepository
	categoryRepo repository.CategoryRepository
	contactRepo  repository.ContactRepository
	cache        *cache.Client
	log          *slog.Logger
}

// NewBootstrapService creates a new bootstrap service.
func NewBootstrapService(
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	contactRepo repository.ContactRepository,
	cache *cache.Client,
	log *slog.Logger,
) BootstrapService {
	return &bootstrapService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		contactRepo:  contactRepo,
		cache:        cache,
		log:          log,
	}
}

// EnsureAdmin makes sure the admin role and account exist and that the account holds the role.
func (s *bootstrapService) EnsureAdmin(ctx context.Context, admin AdminAccount) error {
	role, err := s.ensureRole(ctx, admin.Role)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		s.log.Debug("admin account present", slog.String("username", admin.Username))
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := auth.ValidatePasswordStrength(admin.Password); err != nil {
			return fmt.Errorf("admin password: %w", err)
		}
		hash, err := auth.HashPassword(admin.Password)
		if err != nil {
			return err
		}
		user = &model.User{Username: admin.Username, Email: admin.Email, PasswordHash: hash}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("create admin %s: %w", admin.Username, err)
		}
		s.log.Info("admin account created", slog.String("username", admin.Username))
	default:
		return fmt.Errorf("find admin %s: %w", admin.Username, err)
	}

	if err := s.userRepo.AddRole(ctx, user, role); err != nil {
		return fmt.Errorf("grant role %s to %s: %w", role.Name, admin.Username, err)
	}
	return nil
}

func (s *bootstrapService) ensureRole(ctx context.Context, name string) (*model.Role, error) {
	role, err := s.userRepo.FindRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}

	role = &model.Role{Name: name}
	if err := s.userRepo.CreateRole(ctx, role); err != nil {
		// Another instance created it first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.userRepo.FindRoleByName(ctx, name)
		}
		return nil, fmt.Errorf("create role %s: %w", name, err)
	}
	s.log.Info("role created", slog.String("role", name))
	return role, nil
}

// SeedCategories inserts the default categories that are missing and returns how many were created.
func (s *bootstrapService) SeedCategories(ctx context.Context) (int, error) {
	created := 0
	for _, category := range DefaultCategories() {
		_, err := s.categoryRepo.FindByID(ctx, category.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("seed category %d: %w", category.ID, err)
		}
		if err := s.categoryRepo.Create(ctx, &category); err != nil {
			return created, fmt.Errorf("create category %d: %w", category.ID, err)
		}
		_ = s.cache.Delete(ctx, cache.CategoryKey(category.ID))
		created++
	}

	if err := s.categoryRepo.SyncSequence(ctx); err != nil {
		return created, err
	}
	s.log.Info("categories seeded", slog.Int("created", created))
	return created, nil
}

// SeedContacts inserts the sample contacts that are missing and returns how many were created.
func (s *bootstrapService) SeedContacts(ctx context.Context) (int, error) {
	created := 0
	for _, contact := range DefaultContacts() {
		_, err := s.contactRepo.FindByID(ctx, contact.ID, false)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("seed contact %d: %w", contact.ID, err)
		}
		if err := s.contactRepo.Create(ctx, &contact); err != nil {
			return created, fmt.Errorf("create contact %d: %w", contact.ID, err)
		}
		_ = s.cache.Delete(ctx, cache.ContactKey(contact.ID))
		created++
	}

	if err := s.contactRepo.SyncSequence(ctx); err != nil {
		return created, err
	}
	s.log.Info("contacts seeded", slog.Int("created", created))
	return created, nil
}

// DefaultCategories returns the fixed category rows, parents before children.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "Business"},
		{ID: 2, Name: "Private"},
		{ID: 3, Name: "Other"},
		{ID: 4, Name: "School", ParentCategoryID: int64Ptr(3)},
		{ID: 5, Name: "Boss", ParentCategoryID: int64Ptr(1)},
		{ID: 6, Name: "Employee", ParentCategoryID: int64Ptr(1)},
	}
}

// DefaultContacts returns the sample contacts.
func DefaultContacts() []model.Contact {
	return []model.Contact{
		{
			ID: 1, Name: strPtr("Amadeusz"), SureName: strPtr("Eusz"), Email: "amadeusz.eusz@company.com",
			PhoneNumber: strPtr("+48717292111"), BirthDate: datePtr(2000, time.January, 1), CategoryID: 1,
		},
		{
			ID: 2, Name: strPtr("Benedykt"), SureName: strPtr("Edykt"), Email: "Bene@gmail.com",
			PhoneNumber: strPtr("+48717292222"), BirthDate: datePtr(2005, time.February, 2), CategoryID: 4,
		},
		{
			ID: 3, Name: strPtr("Cyceron"), SureName: strPtr("Ron"), Email: "Cyceron@pg.com",
			PhoneNumber: strPtr("+48717292333"), BirthDate: datePtr(1995, time.March, 3), CategoryID: 2,
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}
