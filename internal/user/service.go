package user

import (
	"log/slog"

	"github.com/fintrack/finance-tracker/internal"
	userDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	// GetByID returns (nil, nil) when the user does not exist.
	GetByID(id string) (*userDatamodel.User, error)
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

// GetByID fetches the public profile. A valid token whose user row is gone
// reports NotFound.
func (s *Service) GetByID(userID string) (*UserResponse, error) {
	dataUser, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	if dataUser == nil {
		return nil, internal.ErrUserNotFound
	}

	resp := FromDataModel(dataUser).ToResponse()
	return &resp, nil
}
