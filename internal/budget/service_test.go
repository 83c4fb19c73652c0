package budget_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/fintrack/finance-tracker/internal"
	"github.com/fintrack/finance-tracker/internal/budget"
	"github.com/fintrack/finance-tracker/internal/category"
	budgetDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/budget"
)

func TestBudgetService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Service Suite")
}

// MockRepository implements budget.RepositoryAPI for testing
type MockRepository struct {
	budgets     map[string]*budgetDatamodel.Budget
	nextID      int
	shouldFail  bool
	failError   error
	createError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		budgets: make(map[string]*budgetDatamodel.Budget),
	}
}

func (m *MockRepository) ListOwned(userID string) ([]*budget.ListItem, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var items []*budget.ListItem
	for _, b := range m.budgets {
		if b.UserID != userID {
			continue
		}
		items = append(items, &budget.ListItem{
			ID:           b.ID,
			UserID:       b.UserID,
			CategoryID:   b.CategoryID,
			Limit:        b.Limit,
			Month:        b.Month,
			Year:         b.Year,
			CategoryName: "Food",
		})
	}
	return items, nil
}

func (m *MockRepository) GetOwnedByID(userID, id string) (*budgetDatamodel.Budget, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	b, ok := m.budgets[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	return b, nil
}

func (m *MockRepository) GetByTuple(userID, categoryID string, month, year int) (*budgetDatamodel.Budget, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, b := range m.budgets {
		if b.UserID == userID && b.CategoryID == categoryID && b.Month == month && b.Year == year {
			return b, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(b *budgetDatamodel.Budget) error {
	if m.createError != nil {
		return m.createError
	}
	if m.shouldFail {
		return m.failError
	}
	if b.ID == "" {
		m.nextID++
		b.ID = fmt.Sprintf("budget-%d", m.nextID)
	}
	m.budgets[b.ID] = b
	return nil
}

func (m *MockRepository) Update(b *budgetDatamodel.Budget) error {
	if m.shouldFail {
		return m.failError
	}
	m.budgets[b.ID] = b
	return nil
}

func (m *MockRepository) Delete(userID, id string) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.budgets, id)
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

type stubResolver struct {
	visible map[string]*category.Category
}

func (s *stubResolver) ResolveVisible(userID, categoryID string) (*category.Category, error) {
	cat, ok := s.visible[userID+"/"+categoryID]
	if !ok {
		return nil, internal.ErrCategoryNotFound
	}
	return cat, nil
}

var _ = Describe("Budget Service", func() {
	var (
		mockRepo *MockRepository
		resolver *stubResolver
		service  *budget.Service
		logger   *slog.Logger
	)

	// Fixed clock so year bounds do not drift with the wall clock.
	now := func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	foodCategory := &category.Category{ID: "cat-food", Name: "Food", Scope: category.ScopeDefault}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		resolver = &stubResolver{visible: map[string]*category.Category{
			"user-1/cat-food": foodCategory,
		}}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewServiceWithClock(mockRepo, resolver, now, logger)
	})

	Describe("Create", func() {
		It("creates a budget for a visible category", func() {
			resp, err := service.Create("user-1", budget.CreateBudgetDTO{
				CategoryID: "cat-food",
				Limit:      500,
				Month:      8,
				Year:       2026,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.ID).NotTo(BeEmpty())
			Expect(resp.Limit).To(Equal(500.0))
			Expect(resp.Category.Name).To(Equal("Food"))
		})

		It("rejects a second budget for the same category and period", func() {
			dto := budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026}

			_, err := service.Create("user-1", dto)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create("user-1", dto)
			Expect(err).To(MatchError(internal.ErrBudgetExists))
		})

		It("allows the same period for a different month", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 9, Year: 2026})
			Expect(err).NotTo(HaveOccurred())
		})

		It("maps a unique-index collision to the same conflict", func() {
			mockRepo.createError = gorm.ErrDuplicatedKey

			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).To(MatchError(internal.ErrBudgetExists))
		})

		It("rejects month 0 and month 13", func() {
			for _, month := range []int{0, 13} {
				_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: month, Year: 2026})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidMonth))
			}
		})

		It("accepts the current year but not the next", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2027})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidYear))
		})

		It("rejects years before 2000", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 1999})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidYear))
		})

		It("rejects a non-positive limit", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 0, Month: 8, Year: 2026})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidLimit))
		})

		It("rejects a category the user cannot see", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-hidden", Limit: 500, Month: 8, Year: 2026})
			Expect(err).To(MatchError(internal.ErrCategoryNotFound))
		})
	})

	Describe("List", func() {
		It("returns the user's budgets with category names", func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())

			budgets, err := service.List("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(budgets).To(HaveLen(1))
			Expect(budgets[0].Category.Name).To(Equal("Food"))
		})

		It("returns an empty list for a user with no budgets", func() {
			budgets, err := service.List("user-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(budgets).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())
		})

		It("changes the limit", func() {
			resp, err := service.Update("user-1", "budget-1", budget.UpdateBudgetDTO{Limit: 750})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Limit).To(Equal(750.0))
			Expect(resp.Month).To(Equal(8))
			Expect(resp.Year).To(Equal(2026))
		})

		It("rejects a non-positive limit", func() {
			_, err := service.Update("user-1", "budget-1", budget.UpdateBudgetDTO{Limit: -10})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidLimit))
		})

		It("hides another user's budget", func() {
			_, err := service.Update("user-2", "budget-1", budget.UpdateBudgetDTO{Limit: 750})
			Expect(err).To(MatchError(internal.ErrBudgetNotFound))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 500, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes the budget and confirms", func() {
			resp, err := service.Delete("user-1", "budget-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Message).To(Equal("Budget deleted successfully"))

			budgets, err := service.List("user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(budgets).To(BeEmpty())
		})

		It("hides another user's budget", func() {
			_, err := service.Delete("user-2", "budget-1")
			Expect(err).To(MatchError(internal.ErrBudgetNotFound))
		})

		It("frees the tuple for a new budget", func() {
			_, err := service.Delete("user-1", "budget-1")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create("user-1", budget.CreateBudgetDTO{CategoryID: "cat-food", Limit: 600, Month: 8, Year: 2026})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	It("wraps repository errors", func() {
		mockRepo.SetShouldFail(true, errors.New("database error"))
		_, err := service.List("user-1")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
