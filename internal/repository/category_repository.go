package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"contactbook/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	CountChildren(ctx context.Context, id int64) (int64, error)
	CountContacts(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	// DeleteCascade removes the category, its descendants and their contacts in one
	// transaction and returns the removed ids.
	DeleteCascade(ctx context.Context, id int64) (categoryIDs, contactIDs []int64, err error)
	SyncSequence(ctx context.Context) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create inserts a category. A non-zero ID is stored as given.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

// Update overwrites every column of an existing category. It returns
// gorm.ErrRecordNotFound when the row no longer exists and never inserts.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	db := r.db.WithContext(ctx)
	result := db.Model(category).Select("*").Omit(clause.Associations).Updates(category)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ensureExists(db, &model.Category{}, category.ID)
	}
	return nil
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns every category ordered by id.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountChildren(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("parent_category_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) CountContacts(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Contact{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// Delete removes a single category; gorm.ErrRecordNotFound when nothing matched.
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepository) DeleteCascade(ctx context.Context, id int64) ([]int64, []int64, error) {
	var categoryIDs, contactIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root model.Category
		if err := tx.Where("id = ?", id).First(&root).Error; err != nil {
			return err
		}

		seen := map[int64]bool{id: true}
		categoryIDs = []int64{id}
		frontier := []int64{id}
		for len(frontier) > 0 {
			var children []int64
			if err := tx.Model(&model.Category{}).Where("parent_category_id IN ?", frontier).Pluck("id", &children).Error; err != nil {
				return err
			}
			frontier = frontier[:0]
			for _, child := range children {
				if !seen[child] {
					seen[child] = true
					categoryIDs = append(categoryIDs, child)
					frontier = append(frontier, child)
				}
			}
		}

		if err := tx.Model(&model.Contact{}).Where("category_id IN ?", categoryIDs).Pluck("id", &contactIDs).Error; err != nil {
			return err
		}
		if len(contactIDs) > 0 {
			if err := tx.Where("id IN ?", contactIDs).Delete(&model.Contact{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", categoryIDs).Delete(&model.Category{}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return categoryIDs, contactIDs, nil
}

func (r *categoryRepository) SyncSequence(ctx context.Context) error {
	return syncSequence(ctx, r.db, "categories")
}
