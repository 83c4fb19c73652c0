package budget

import (
	"time"

	"github.com/fintrack/finance-tracker/internal"
)

type CreateBudgetDTO struct {
	CategoryID string  `json:"category_id"`
	Limit      float64 `json:"limit"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

func (d CreateBudgetDTO) Validate(now time.Time) error {
	if d.CategoryID == "" {
		return internal.NewValidationError("category_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Month < 1 || d.Month > 12 {
		return internal.NewValidationError("month must be between 1 and 12", internal.ErrCodeInvalidMonth)
	}
	if d.Year < MinYear || d.Year > now.Year() {
		return internal.NewValidationError("year must not be in the future", internal.ErrCodeInvalidYear)
	}
	if d.Limit <= 0 {
		return internal.NewValidationError("limit must be greater than 0", internal.ErrCodeInvalidLimit)
	}
	return nil
}

// UpdateBudgetDTO allows changing the limit only; the category and period are
// immutable once created.
type UpdateBudgetDTO struct {
	Limit float64 `json:"limit"`
}

func (d UpdateBudgetDTO) Validate() error {
	if d.Limit <= 0 {
		return internal.NewValidationError("limit must be greater than 0", internal.ErrCodeInvalidLimit)
	}
	return nil
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BudgetResponse struct {
	ID        string      `json:"id"`
	Limit     float64     `json:"limit"`
	Month     int         `json:"month"`
	Year      int         `json:"year"`
	Category  CategoryRef `json:"category"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type BudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
