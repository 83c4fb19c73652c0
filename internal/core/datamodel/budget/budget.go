package budget

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The composite unique index backs the one-budget-per-(user, category, month,
// year) invariant; the application-level pre-check only improves the message.
type Budget struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_budgets_tuple"`
	CategoryID string    `gorm:"column:category_id;type:uuid;not null;uniqueIndex:idx_budgets_tuple"`
	Limit      float64   `gorm:"column:limit_amount;not null"`
	Month      int       `gorm:"column:month;not null;uniqueIndex:idx_budgets_tuple"`
	Year       int       `gorm:"column:year;not null;uniqueIndex:idx_budgets_tuple"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Budget) TableName() string {
	return "budgets"
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
