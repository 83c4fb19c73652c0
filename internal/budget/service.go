package budget

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal"
	"github.com/fintrack/finance-tracker/internal/category"
	budgetDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/budget"
)

// ListItem is a budget row joined with its category name.
type ListItem struct {
	ID           string
	UserID       string
	CategoryID   string
	Limit        float64
	Month        int
	Year         int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string
}

type RepositoryAPI interface {
	// ListOwned returns the user's budgets ordered year DESC, month DESC.
	ListOwned(userID string) ([]*ListItem, error)
	// GetOwnedByID returns (nil, nil) when no budget with that id belongs to
	// userID.
	GetOwnedByID(userID, id string) (*budgetDatamodel.Budget, error)
	// GetByTuple returns (nil, nil) when the (user, category, month, year)
	// tuple is free.
	GetByTuple(userID, categoryID string, month, year int) (*budgetDatamodel.Budget, error)
	Create(b *budgetDatamodel.Budget) error
	Update(b *budgetDatamodel.Budget) error
	Delete(userID, id string) error
}

type CategoryResolver interface {
	ResolveVisible(userID, categoryID string) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryResolver
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		now:        time.Now,
		logger:     logger,
	}
}

// NewServiceWithClock is used by tests that need a fixed current year.
func NewServiceWithClock(repo RepositoryAPI, categories CategoryResolver, now func() time.Time, logger *slog.Logger) *Service {
	s := NewService(repo, categories, logger)
	s.now = now
	return s
}

func (s *Service) List(userID string) ([]BudgetResponse, error) {
	items, err := s.repo.ListOwned(userID)
	if err != nil {
		s.logger.Error("failed to list budgets", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list budgets", err)
	}

	responses := make([]BudgetResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, BudgetResponse{
			ID:        item.ID,
			Limit:     item.Limit,
			Month:     item.Month,
			Year:      item.Year,
			Category:  CategoryRef{ID: item.CategoryID, Name: item.CategoryName},
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return responses, nil
}

// Create enforces one budget per (user, category, month, year). The pre-check
// gives a precise message; the unique index closes the race window.
func (s *Service) Create(userID string, dto CreateBudgetDTO) (*BudgetResponse, error) {
	if err := dto.Validate(s.now()); err != nil {
		return nil, err
	}

	cat, err := s.categories.ResolveVisible(userID, dto.CategoryID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByTuple(userID, dto.CategoryID, dto.Month, dto.Year)
	if err != nil {
		s.logger.Error("failed to check budget tuple", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create budget", err)
	}
	if existing != nil {
		return nil, internal.ErrBudgetExists
	}

	dm := &budgetDatamodel.Budget{
		UserID:     userID,
		CategoryID: dto.CategoryID,
		Limit:      dto.Limit,
		Month:      dto.Month,
		Year:       dto.Year,
	}

	if err := s.repo.Create(dm); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internal.ErrBudgetExists
		}
		s.logger.Error("failed to create budget", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create budget", err)
	}

	s.logger.Info("budget created",
		"budget_id", dm.ID,
		"user_id", userID,
		"month", dm.Month,
		"year", dm.Year)

	return toResponse(FromDataModel(dm), cat), nil
}

// Update changes the limit; category, month, and year are immutable.
func (s *Service) Update(userID, budgetID string, dto UpdateBudgetDTO) (*BudgetResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	dm, err := s.repo.GetOwnedByID(userID, budgetID)
	if err != nil {
		s.logger.Error("failed to get budget", "error", err, "budget_id", budgetID)
		return nil, internal.NewInternalError("failed to update budget", err)
	}
	if dm == nil {
		return nil, internal.ErrBudgetNotFound
	}

	dm.Limit = dto.Limit
	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update budget", "error", err, "budget_id", budgetID)
		return nil, internal.NewInternalError("failed to update budget", err)
	}

	cat, err := s.categories.ResolveVisible(userID, dm.CategoryID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("budget updated", "budget_id", dm.ID, "user_id", userID)

	return toResponse(FromDataModel(dm), cat), nil
}

func (s *Service) Delete(userID, budgetID string) (*DeleteResponse, error) {
	dm, err := s.repo.GetOwnedByID(userID, budgetID)
	if err != nil {
		s.logger.Error("failed to get budget", "error", err, "budget_id", budgetID)
		return nil, internal.NewInternalError("failed to delete budget", err)
	}
	if dm == nil {
		return nil, internal.ErrBudgetNotFound
	}

	if err := s.repo.Delete(userID, budgetID); err != nil {
		s.logger.Error("failed to delete budget", "error", err, "budget_id", budgetID)
		return nil, internal.NewInternalError("failed to delete budget", err)
	}

	s.logger.Info("budget deleted", "budget_id", budgetID, "user_id", userID)

	return &DeleteResponse{Message: "Budget deleted successfully"}, nil
}

func toResponse(b *Budget, cat *category.Category) *BudgetResponse {
	return &BudgetResponse{
		ID:        b.ID,
		Limit:     b.Limit,
		Month:     b.Month,
		Year:      b.Year,
		Category:  CategoryRef{ID: cat.ID, Name: cat.Name},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
