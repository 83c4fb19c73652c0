package postgres

import (
	"errors"

	"gorm.io/gorm"

	transactionDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/transaction"
	"github.com/fintrack/finance-tracker/internal/transaction"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.RepositoryAPI {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *transactionDatamodel.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetOwnedByID(userID, id string) (*transactionDatamodel.Transaction, error) {
	var t transactionDatamodel.Transaction
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// List pages through the user's transactions joined with their category name.
// The secondary order keys keep pages stable when many rows share a date.
func (r *TransactionRepository) List(userID string, filter transaction.ListFilter, limit, offset int) ([]*transaction.ListItem, int64, error) {
	base := r.db.Model(&transactionDatamodel.Transaction{}).
		Where("transactions.user_id = ?", userID)

	if filter.Start != nil && filter.End != nil {
		base = base.Where("transactions.date BETWEEN ? AND ?", *filter.Start, *filter.End)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*transaction.ListItem
	err := base.Session(&gorm.Session{}).
		Select("transactions.id, transactions.user_id, transactions.category_id, transactions.type, transactions.amount, transactions.description, transactions.date, transactions.created_at, transactions.updated_at, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Order("transactions.date DESC").
		Order("transactions.description ASC").
		Order("transactions.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *TransactionRepository) Update(t *transactionDatamodel.Transaction) error {
	return r.db.Save(t).Error
}

func (r *TransactionRepository) Delete(userID, id string) error {
	return r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&transactionDatamodel.Transaction{}).Error
}
