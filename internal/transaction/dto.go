package transaction

import (
	"time"

	"github.com/fintrack/finance-tracker/internal"
)

// dateLayouts are the accepted wire formats for transaction dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

type CreateTransactionDTO struct {
	CategoryID  string  `json:"category_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}

func (d CreateTransactionDTO) Validate() (time.Time, error) {
	if d.CategoryID == "" {
		return time.Time{}, internal.NewValidationError("category_id is required", internal.ErrCodeValidationFailed)
	}
	if !ValidType(d.Type) {
		return time.Time{}, internal.NewValidationError("type must be 'income' or 'expense'", internal.ErrCodeInvalidType)
	}
	if d.Amount <= 0 {
		return time.Time{}, internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	date, err := parseDate(d.Date)
	if err != nil {
		return time.Time{}, internal.NewValidationError("date must be a valid timestamp", internal.ErrCodeInvalidDate)
	}
	return date, nil
}

// UpdateTransactionDTO carries a partial update; nil fields stay unchanged.
type UpdateTransactionDTO struct {
	CategoryID  *string  `json:"category_id,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Date        *string  `json:"date,omitempty"`
}

func (d UpdateTransactionDTO) Validate() (*time.Time, error) {
	if d.Type != nil && !ValidType(*d.Type) {
		return nil, internal.NewValidationError("type must be 'income' or 'expense'", internal.ErrCodeInvalidType)
	}
	if d.Amount != nil && *d.Amount <= 0 {
		return nil, internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if d.Date != nil {
		date, err := parseDate(*d.Date)
		if err != nil {
			return nil, internal.NewValidationError("date must be a valid timestamp", internal.ErrCodeInvalidDate)
		}
		return &date, nil
	}
	return nil, nil
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TransactionResponse struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Amount      float64     `json:"amount"`
	Description *string     `json:"description,omitempty"`
	Date        time.Time   `json:"date"`
	Category    CategoryRef `json:"category"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
