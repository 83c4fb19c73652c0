package budget

import (
	"time"

	budgetDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/budget"
)

// MinYear is the earliest accepted budget year; the upper bound is the
// current calendar year, so future periods cannot be budgeted.
const MinYear = 2000

type Budget struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID string    `json:"category_id"`
	Limit      float64   `json:"limit"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromDataModel(dm *budgetDatamodel.Budget) *Budget {
	return &Budget{
		ID:         dm.ID,
		UserID:     dm.UserID,
		CategoryID: dm.CategoryID,
		Limit:      dm.Limit,
		Month:      dm.Month,
		Year:       dm.Year,
		CreatedAt:  dm.CreatedAt,
		UpdatedAt:  dm.UpdatedAt,
	}
}
