package transaction

import (
	"log/slog"
	"time"

	"github.com/fintrack/finance-tracker/internal"
	"github.com/fintrack/finance-tracker/internal/category"
	transactionDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/transaction"
)

// ListItem is a transaction row joined with its category name.
type ListItem struct {
	ID           string
	UserID       string
	CategoryID   string
	Type         string
	Amount       float64
	Description  *string
	Date         time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string
}

// ListFilter narrows a listing to an inclusive date range. Start and End are
// both set or both nil.
type ListFilter struct {
	Start *time.Time
	End   *time.Time
}

type RepositoryAPI interface {
	Create(t *transactionDatamodel.Transaction) error
	// GetOwnedByID returns (nil, nil) when no transaction with that id belongs
	// to userID.
	GetOwnedByID(userID, id string) (*transactionDatamodel.Transaction, error)
	// List returns one page ordered date DESC, description ASC, id ASC, plus
	// the total matching-row count.
	List(userID string, filter ListFilter, limit, offset int) ([]*ListItem, int64, error)
	Update(t *transactionDatamodel.Transaction) error
	Delete(userID, id string) error
}

// CategoryResolver checks that a category reference is visible to the caller.
type CategoryResolver interface {
	ResolveVisible(userID, categoryID string) (*category.Category, error)
}

type Service struct {
	repo       RepositoryAPI
	categories CategoryResolver
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func (s *Service) Create(userID string, dto CreateTransactionDTO) (*TransactionResponse, error) {
	date, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	cat, err := s.categories.ResolveVisible(userID, dto.CategoryID)
	if err != nil {
		return nil, err
	}

	dm := ToDataModel(&Transaction{
		UserID:      userID,
		CategoryID:  dto.CategoryID,
		Type:        dto.Type,
		Amount:      dto.Amount,
		Description: dto.Description,
		Date:        date,
	})

	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create transaction", err)
	}

	s.logger.Info("transaction created",
		"transaction_id", dm.ID,
		"user_id", userID,
		"type", dm.Type,
		"amount", dm.Amount)

	return toResponse(FromDataModel(dm), cat), nil
}

func (s *Service) GetByID(userID, transactionID string) (*TransactionResponse, error) {
	dm, err := s.repo.GetOwnedByID(userID, transactionID)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", transactionID)
		return nil, internal.NewInternalError("failed to get transaction", err)
	}
	if dm == nil {
		return nil, internal.ErrTransactionNotFound
	}

	cat, err := s.categories.ResolveVisible(userID, dm.CategoryID)
	if err != nil {
		return nil, err
	}

	return toResponse(FromDataModel(dm), cat), nil
}

// List returns one fixed-size page, most recent first, with the total count
// for client-side pagination.
func (s *Service) List(userID string, page int, startDate, endDate string) (*ListTransactionsResponse, error) {
	if page < 1 {
		return nil, internal.NewValidationError("page must be at least 1", internal.ErrCodeInvalidPage)
	}

	filter, err := buildDateFilter(startDate, endDate)
	if err != nil {
		return nil, err
	}

	items, total, err := s.repo.List(userID, filter, PageSize, (page-1)*PageSize)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list transactions", err)
	}

	responses := make([]TransactionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, TransactionResponse{
			ID:          item.ID,
			Type:        item.Type,
			Amount:      item.Amount,
			Description: item.Description,
			Date:        item.Date,
			Category:    CategoryRef{ID: item.CategoryID, Name: item.CategoryName},
			CreatedAt:   item.CreatedAt,
			UpdatedAt:   item.UpdatedAt,
		})
	}

	return &ListTransactionsResponse{
		Transactions: responses,
		Total:        total,
		Page:         page,
		PageSize:     PageSize,
	}, nil
}

// Update applies a partial update; absent fields keep their stored values. An
// empty payload is a no-op that returns the current record.
func (s *Service) Update(userID, transactionID string, dto UpdateTransactionDTO) (*TransactionResponse, error) {
	date, err := dto.Validate()
	if err != nil {
		return nil, err
	}

	dm, err := s.repo.GetOwnedByID(userID, transactionID)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", transactionID)
		return nil, internal.NewInternalError("failed to update transaction", err)
	}
	if dm == nil {
		return nil, internal.ErrTransactionNotFound
	}

	if dto.CategoryID != nil {
		dm.CategoryID = *dto.CategoryID
	}
	// The (possibly unchanged) reference is re-checked at write time.
	cat, err := s.categories.ResolveVisible(userID, dm.CategoryID)
	if err != nil {
		return nil, err
	}

	if dto.Type != nil {
		dm.Type = *dto.Type
	}
	if dto.Amount != nil {
		dm.Amount = *dto.Amount
	}
	if dto.Description != nil {
		dm.Description = dto.Description
	}
	if date != nil {
		dm.Date = *date
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", transactionID)
		return nil, internal.NewInternalError("failed to update transaction", err)
	}

	s.logger.Info("transaction updated", "transaction_id", dm.ID, "user_id", userID)

	return toResponse(FromDataModel(dm), cat), nil
}

func (s *Service) Delete(userID, transactionID string) (*DeleteResponse, error) {
	dm, err := s.repo.GetOwnedByID(userID, transactionID)
	if err != nil {
		s.logger.Error("failed to get transaction", "error", err, "transaction_id", transactionID)
		return nil, internal.NewInternalError("failed to delete transaction", err)
	}
	if dm == nil {
		return nil, internal.ErrTransactionNotFound
	}

	if err := s.repo.Delete(userID, transactionID); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", transactionID)
		return nil, internal.NewInternalError("failed to delete transaction", err)
	}

	s.logger.Info("transaction deleted", "transaction_id", transactionID, "user_id", userID)

	return &DeleteResponse{Message: "Transaction deleted successfully"}, nil
}

// buildDateFilter validates that both bounds are present or both absent and
// widens them to [start 00:00:00.000, end 23:59:59.999] in UTC.
func buildDateFilter(startDate, endDate string) (ListFilter, error) {
	if startDate == "" && endDate == "" {
		return ListFilter{}, nil
	}
	if startDate == "" || endDate == "" {
		return ListFilter{}, internal.NewValidationError(
			"start_date and end_date must be supplied together", internal.ErrCodeInvalidDateRange)
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return ListFilter{}, internal.NewValidationError("start_date must be a valid date", internal.ErrCodeInvalidDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return ListFilter{}, internal.NewValidationError("end_date must be a valid date", internal.ErrCodeInvalidDate)
	}

	startOfDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, time.UTC)
	if endOfDay.Before(startOfDay) {
		return ListFilter{}, internal.NewValidationError(
			"end_date must not be before start_date", internal.ErrCodeInvalidDateRange)
	}

	return ListFilter{Start: &startOfDay, End: &endOfDay}, nil
}

func toResponse(t *Transaction, cat *category.Category) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		Category:    CategoryRef{ID: cat.ID, Name: cat.Name},
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
