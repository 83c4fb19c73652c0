package category

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal"
	categoryDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	// ListVisible returns defaults plus the user's own categories, ordered by
	// name ascending with defaults first on ties.
	ListVisible(userID string) ([]*categoryDatamodel.Category, error)
	// GetByID returns (nil, nil) when the id does not exist. Visibility and
	// ownership are decided on the domain Category, not in SQL.
	GetByID(id string) (*categoryDatamodel.Category, error)
	// GetOwnedByName looks up the user's own scope only; defaults with the
	// same name do not count.
	GetOwnedByName(userID, name string) (*categoryDatamodel.Category, error)
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(userID string) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.ListVisible(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	categories := FromDataModelSlice(dataCategories)
	responses := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// Create stores a user-owned category. A name clash with a default is allowed;
// a clash inside the user's own scope is a conflict.
func (s *Service) Create(userID string, dto CreateCategoryDTO) (*CategoryResponse, error) {
	name := NormalizeName(dto.Name)
	if name == "" {
		return nil, internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}

	existing, err := s.repo.GetOwnedByName(userID, name)
	if err != nil {
		s.logger.Error("failed to check category name", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create category", err)
	}
	if existing != nil {
		return nil, internal.ErrCategoryExists
	}

	dm := ToDataModel(&Category{
		Name:    name,
		Scope:   ScopeOwned,
		OwnerID: userID,
	})
	if err := s.repo.Create(dm); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrCategoryExists
		}
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", dm.ID, "user_id", userID)

	resp := FromDataModel(dm).ToResponse()
	return &resp, nil
}

// Update renames a category the user owns. Defaults and other users' rows are
// reported as missing, never as forbidden.
func (s *Service) Update(userID, categoryID string, dto UpdateCategoryDTO) (*CategoryResponse, error) {
	name := NormalizeName(dto.Name)
	if name == "" {
		return nil, internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}

	dm, err := s.repo.GetByID(categoryID)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", categoryID)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	if dm == nil {
		return nil, internal.ErrCategoryNotFound
	}
	c := FromDataModel(dm)
	if !c.OwnedBy(userID) {
		return nil, internal.ErrCategoryNotFound
	}

	if c.Name != name {
		existing, err := s.repo.GetOwnedByName(userID, name)
		if err != nil {
			s.logger.Error("failed to check category name", "error", err, "user_id", userID)
			return nil, internal.NewInternalError("failed to update category", err)
		}
		if existing != nil && existing.ID != c.ID {
			return nil, internal.ErrCategoryExists
		}
	}

	c.Name = name
	updated := ToDataModel(c)
	if err := s.repo.Update(updated); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrCategoryExists
		}
		s.logger.Error("failed to update category", "error", err, "category_id", categoryID)
		return nil, internal.NewInternalError("failed to update category", err)
	}

	s.logger.Info("category renamed", "category_id", c.ID, "user_id", userID)

	resp := FromDataModel(updated).ToResponse()
	return &resp, nil
}

// ResolveVisible is the referential-integrity check the ledger and planner run
// before writing a category reference. Hidden rows and missing rows are
// indistinguishable to the caller.
func (s *Service) ResolveVisible(userID, categoryID string) (*Category, error) {
	dm, err := s.repo.GetByID(categoryID)
	if err != nil {
		s.logger.Error("failed to resolve category", "error", err, "category_id", categoryID)
		return nil, internal.NewInternalError("failed to resolve category", err)
	}
	if dm == nil {
		return nil, internal.ErrCategoryNotFound
	}
	c := FromDataModel(dm)
	if !c.VisibleTo(userID) {
		return nil, internal.ErrCategoryNotFound
	}
	return c, nil
}
