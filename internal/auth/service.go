package auth

import (
	"log/slog"
	"strings"

	"github.com/fintrack/finance-tracker/internal"
	userDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/user"
)

// DefaultCategories is the fixed list seeded for every new user, created in
// the same database transaction as the user row.
var DefaultCategories = []string{
	"Food",
	"Rent",
	"Utilities",
	"Shopping",
	"Transport",
	"Entertainment",
	"Salary",
}

type RepositoryAPI interface {
	// GetByEmail returns (nil, nil) when no user has that email.
	GetByEmail(email string) (*userDatamodel.User, error)
	// CreateWithDefaultCategories creates the user row and one owned category
	// per name atomically.
	CreateWithDefaultCategories(user *userDatamodel.User, categoryNames []string) error
}

type ServiceAPI interface {
	Register(dto RegisterDTO) (*AuthResponse, error)
	Login(dto LoginDTO) (*AuthResponse, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

type Service struct {
	repo       RepositoryAPI
	tokens     TokenGeneratorAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, tokens TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates the user with a hashed password, seeds the default
// categories, and returns the public profile with a session token.
func (s *Service) Register(dto RegisterDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := dto.Name
	if name == "" {
		name = strings.SplitN(dto.Email, "@", 2)[0]
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailExists
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	newUser := &userDatamodel.User{
		Email:        dto.Email,
		Name:         name,
		PasswordHash: hash,
	}

	if err := s.repo.CreateWithDefaultCategories(newUser, DefaultCategories); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	token, err := s.tokens.GenerateToken(newUser.ID, newUser.Email)
	if err != nil {
		s.logger.Error("failed to sign token", "error", err, "user_id", newUser.ID)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", newUser.ID)

	return &AuthResponse{
		User: UserResponse{
			ID:        newUser.ID,
			Email:     newUser.Email,
			Name:      newUser.Name,
			CreatedAt: newUser.CreatedAt,
		},
		Token: token,
	}, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(dto LoginDTO) (*AuthResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, internal.NewInternalError("failed to log in", err)
	}
	if u == nil {
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email)
	if err != nil {
		s.logger.Error("failed to sign token", "error", err, "user_id", u.ID)
		return nil, internal.NewInternalError("failed to log in", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID)

	return &AuthResponse{
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			CreatedAt: u.CreatedAt,
		},
		Token: token,
	}, nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}
