package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal/budget"
	budgetDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/budget"
)

type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.RepositoryAPI {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) ListOwned(userID string) ([]*budget.ListItem, error) {
	var items []*budget.ListItem
	err := r.db.Model(&budgetDatamodel.Budget{}).
		Select("budgets.id, budgets.user_id, budgets.category_id, budgets.limit_amount AS \"limit\", budgets.month, budgets.year, budgets.created_at, budgets.updated_at, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = budgets.category_id").
		Where("budgets.user_id = ?", userID).
		Order("budgets.year DESC").
		Order("budgets.month DESC").
		Scan(&items).Error
	return items, err
}

func (r *BudgetRepository) GetOwnedByID(userID, id string) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) GetByTuple(userID, categoryID string, month, year int) (*budgetDatamodel.Budget, error) {
	var b budgetDatamodel.Budget
	err := r.db.
		Where("user_id = ? AND category_id = ? AND month = ? AND year = ?", userID, categoryID, month, year).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BudgetRepository) Create(b *budgetDatamodel.Budget) error {
	return r.db.Create(b).Error
}

func (r *BudgetRepository) Update(b *budgetDatamodel.Budget) error {
	return r.db.Save(b).Error
}

func (r *BudgetRepository) Delete(userID, id string) error {
	return r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&budgetDatamodel.Budget{}).Error
}
