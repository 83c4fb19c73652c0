package transaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null;index"`
	CategoryID  string    `gorm:"column:category_id;type:uuid;not null"`
	Type        string    `gorm:"column:type;not null"`
	Amount      float64   `gorm:"column:amount;not null"`
	Description *string   `gorm:"column:description"`
	Date        time.Time `gorm:"column:date;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
