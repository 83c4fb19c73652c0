package category

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category rows with a NULL user_id are shared defaults visible to everyone;
// rows with a user_id belong to exactly one user. Name uniqueness holds per
// owner scope only.
type Category struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	UserID    *string   `gorm:"column:user_id;type:uuid;uniqueIndex:idx_categories_owner_name"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_categories_owner_name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
