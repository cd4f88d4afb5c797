package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contactbook/internal/model"
)

// ContactRepository defines contact persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, contact *model.Contact) error
	FindByID(ctx context.Context, id int64, expandCategory bool) (*model.Contact, error)
	List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error)
	Delete(ctx context.Context, id int64) error
	SyncSequence(ctx context.Context) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create inserts a contact. An embedded Category is never written.
func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(contact).Error
}

// Update overwrites every column of an existing contact. It returns
// gorm.ErrRecordNotFound when the row no longer exists and never inserts.
func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	db := r.db.WithContext(ctx)
	result := db.Model(contact).Select("*").Omit(clause.Associations).Updates(contact)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ensureExists(db, &model.Contact{}, contact.ID)
	}
	return nil
}

// FindByID finds a contact by ID, optionally loading its category.
func (r *contactRepository) FindByID(ctx context.Context, id int64, expandCategory bool) (*model.Contact, error) {
	var contact model.Contact
	q := r.db.WithContext(ctx)
	if expandCategory {
		q = q.Preload("Category")
	}
	if err := q.Where("id = ?", id).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// List returns contacts ordered by id, narrowed by filter.
func (r *contactRepository) List(ctx context.Context, filter model.ContactFilter) ([]model.Contact, error) {
	contacts := []model.Contact{}
	q := r.db.WithContext(ctx).Order("id")
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ExpandCategory {
		q = q.Preload("Category")
	}
	if err := q.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Delete removes a contact; gorm.ErrRecordNotFound when nothing matched.
func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contactRepository) SyncSequence(ctx context.Context) error {
	return syncSequence(ctx, r.db, "contacts")
}
