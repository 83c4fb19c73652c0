package transaction

import (
	"time"

	transactionDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/transaction"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// PageSize is the fixed page size for transaction listings.
	PageSize = 20
)

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CategoryID  string    `json:"category_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToDataModel(t *Transaction) *transactionDatamodel.Transaction {
	return &transactionDatamodel.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		CategoryID:  t.CategoryID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromDataModel(dm *transactionDatamodel.Transaction) *Transaction {
	return &Transaction{
		ID:          dm.ID,
		UserID:      dm.UserID,
		CategoryID:  dm.CategoryID,
		Type:        dm.Type,
		Amount:      dm.Amount,
		Description: dm.Description,
		Date:        dm.Date,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}
