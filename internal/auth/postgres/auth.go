package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal"
	"github.com/fintrack/finance-tracker/internal/auth"
	categoryDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/category"
	userDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateWithDefaultCategories inserts the user and the seed categories in one
// transaction. A unique-violation on the email index maps to the Conflict
// kind, which closes the check-then-insert race.
func (r *Repository) CreateWithDefaultCategories(u *userDatamodel.User, categoryNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		categories := make([]categoryDatamodel.Category, len(categoryNames))
		for i, name := range categoryNames {
			ownerID := u.ID
			categories[i] = categoryDatamodel.Category{
				UserID: &ownerID,
				Name:   name,
			}
		}

		return tx.Create(&categories).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmailExists
	}
	return err
}
