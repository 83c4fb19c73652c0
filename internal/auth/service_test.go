package auth

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/finance-tracker/internal"
	userDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/user"
	"github.com/fintrack/finance-tracker/pkg/logger"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockAuthRepository struct {
	users          map[string]*userDatamodel.User // email -> user
	seededNames    map[string][]string            // userID -> category names
	returnError    bool
	errorToReturn  error
	createOverride error
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		users:       make(map[string]*userDatamodel.User),
		seededNames: make(map[string][]string),
	}
}

func (m *mockAuthRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockAuthRepository) CreateWithDefaultCategories(u *userDatamodel.User, categoryNames []string) error {
	if m.createOverride != nil {
		return m.createOverride
	}
	if m.returnError {
		return m.errorToReturn
	}
	if u.ID == "" {
		u.ID = "user-" + u.Email
	}
	m.users[u.Email] = u
	m.seededNames[u.ID] = categoryNames
	return nil
}

func (m *mockAuthRepository) addUser(email, password string) *userDatamodel.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userDatamodel.User{
		ID:           "user-" + email,
		Email:        email,
		Name:         "Existing",
		PasswordHash: string(hash),
	}
	m.users[email] = u
	return u
}

type mockTokenGenerator struct {
	failGenerate bool
}

func (m *mockTokenGenerator) GenerateToken(userID, email string) (string, error) {
	if m.failGenerate {
		return "", errors.New("signing failed")
	}
	return "token-for-" + userID, nil
}

func (m *mockTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	return nil, internal.ErrInvalidToken
}

var _ = ginkgo.Describe("Auth Service", func() {
	var (
		repo    *mockAuthRepository
		tokens  *mockTokenGenerator
		service *Service
	)

	ginkgo.BeforeEach(func() {
		repo = newMockAuthRepository()
		tokens = &mockTokenGenerator{}
		service = NewService(repo, tokens, bcrypt.MinCost, logger.LoggerWrapper())
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("creates the user and returns a token", func() {
			resp, err := service.Register(RegisterDTO{
				Email:    "alice@example.com",
				Password: "secret123",
				Name:     "Alice",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(resp.User.ID).NotTo(gomega.BeEmpty())
			gomega.Expect(resp.User.Email).To(gomega.Equal("alice@example.com"))
			gomega.Expect(resp.User.Name).To(gomega.Equal("Alice"))
			gomega.Expect(resp.Token).To(gomega.HavePrefix("token-for-"))
		})

		ginkgo.It("stores a bcrypt hash, not the password", func() {
			_, err := service.Register(RegisterDTO{Email: "alice@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			stored := repo.users["alice@example.com"]
			gomega.Expect(stored.PasswordHash).NotTo(gomega.Equal("secret123"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123"))).To(gomega.Succeed())
		})

		ginkgo.It("never exposes the password hash in the response", func() {
			resp, err := service.Register(RegisterDTO{Email: "alice@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			payload, err := json.Marshal(resp)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(string(payload)).NotTo(gomega.ContainSubstring("password"))
			gomega.Expect(string(payload)).NotTo(gomega.ContainSubstring("hash"))
		})

		ginkgo.It("defaults the name to the email local part", func() {
			resp, err := service.Register(RegisterDTO{Email: "bob@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(resp.User.Name).To(gomega.Equal("bob"))
		})

		ginkgo.It("seeds the default categories for the new user", func() {
			resp, err := service.Register(RegisterDTO{Email: "alice@example.com", Password: "secret123"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(repo.seededNames[resp.User.ID]).To(gomega.Equal(DefaultCategories))
			gomega.Expect(repo.seededNames[resp.User.ID]).To(gomega.HaveLen(7))
		})

		ginkgo.It("rejects a duplicate email with a conflict", func() {
			repo.addUser("alice@example.com", "other")

			_, err := service.Register(RegisterDTO{Email: "alice@example.com", Password: "secret123"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmailExists))
		})

		ginkgo.It("surfaces the conflict when the insert itself collides", func() {
			repo.createOverride = internal.ErrEmailExists

			_, err := service.Register(RegisterDTO{Email: "alice@example.com", Password: "secret123"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmailExists))
		})

		ginkgo.It("rejects a malformed email", func() {
			_, err := service.Register(RegisterDTO{Email: "not-an-email", Password: "secret123"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("rejects an empty password", func() {
			_, err := service.Register(RegisterDTO{Email: "alice@example.com"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.BeforeEach(func() {
			repo.addUser("alice@example.com", "correct_password")
		})

		ginkgo.It("returns the profile and a token for valid credentials", func() {
			resp, err := service.Login(LoginDTO{Email: "alice@example.com", Password: "correct_password"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(resp.User.Email).To(gomega.Equal("alice@example.com"))
			gomega.Expect(resp.Token).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("rejects a wrong password", func() {
			_, err := service.Login(LoginDTO{Email: "alice@example.com", Password: "wrong_password"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an unknown email with the same error as a wrong password", func() {
			_, unknownErr := service.Login(LoginDTO{Email: "nobody@example.com", Password: "correct_password"})
			_, wrongErr := service.Login(LoginDTO{Email: "alice@example.com", Password: "wrong_password"})
			gomega.Expect(unknownErr).To(gomega.MatchError(internal.ErrInvalidCredentials))
			gomega.Expect(wrongErr).To(gomega.MatchError(unknownErr))
		})

		ginkgo.It("fails when the repository errors", func() {
			repo.returnError = true
			repo.errorToReturn = errors.New("database down")

			_, err := service.Login(LoginDTO{Email: "alice@example.com", Password: "correct_password"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
		})
	})

	ginkgo.Describe("Token round trip", func() {
		ginkgo.It("validates what it generates", func() {
			gen := NewJWTTokenGenerator("0123456789abcdef0123456789abcdef", time.Hour)

			token, err := gen.GenerateToken("user-1", "alice@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			claims, err := gen.ValidateToken(token)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("user-1"))
			gomega.Expect(claims.Email).To(gomega.Equal("alice@example.com"))
		})

		ginkgo.It("rejects an expired token", func() {
			gen := NewJWTTokenGenerator("0123456789abcdef0123456789abcdef", -time.Hour)

			token, err := gen.GenerateToken("user-1", "alice@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = gen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("rejects a token signed with another secret", func() {
			gen := NewJWTTokenGenerator("0123456789abcdef0123456789abcdef", time.Hour)
			other := NewJWTTokenGenerator("abcdef0123456789abcdef0123456789", time.Hour)

			token, err := other.GenerateToken("user-1", "alice@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = gen.ValidateToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})
})
