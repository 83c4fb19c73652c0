package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal/category"
	categoryDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/category"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) ListVisible(userID string) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name ASC").
		Order("(user_id IS NULL) DESC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.
		Where("id = ?", id).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetOwnedByName(userID, name string) (*categoryDatamodel.Category, error) {
	var cat categoryDatamodel.Category
	err := r.db.
		Where("user_id = ? AND name = ?", userID, name).
		First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *categoryDatamodel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *categoryDatamodel.Category) error {
	return r.db.Save(cat).Error
}
