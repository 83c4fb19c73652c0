package category_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/fintrack/finance-tracker/internal/auth"
	"github.com/fintrack/finance-tracker/internal/category"
	categoryPostgres "github.com/fintrack/finance-tracker/internal/category/postgres"
	categoryDatamodel "github.com/fintrack/finance-tracker/internal/core/datamodel/category"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		service *category.Service
		handler *category.Handler
	)

	currentUser := &auth.CurrentUser{ID: "user-1", Email: "alice@example.com"}

	authed := func(req *http.Request) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), currentUser))
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo := categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, testLogger())
		handler = category.NewHandler(service)

		Expect(db.Create(&categoryDatamodel.Category{Name: "Food"}).Error).To(Succeed())
		owner := "user-1"
		Expect(db.Create(&categoryDatamodel.Category{UserID: &owner, Name: "Gym"}).Error).To(Succeed())
	})

	Describe("GET /categories", func() {
		It("returns the visible categories as JSON", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/categories", nil))
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response category.CategoriesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Categories).To(HaveLen(2))

			names := make([]string, len(response.Categories))
			for i, cat := range response.Categories {
				names[i] = cat.Name
			}
			Expect(names).To(ConsistOf("Food", "Gym"))
		})

		It("rejects a request without an authenticated user", func() {
			req := httptest.NewRequest(http.MethodGet, "/categories", nil)
			w := httptest.NewRecorder()

			handler.GetCategories(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("POST /categories", func() {
		It("creates a category and returns 201", func() {
			body := strings.NewReader(`{"name":"travel"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var response category.CategoryResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Name).To(Equal("Travel"))
			Expect(response.IsDefault).To(BeFalse())
		})

		It("returns 409 for a duplicate name", func() {
			body := strings.NewReader(`{"name":"gym"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 for a malformed body", func() {
			body := strings.NewReader(`{"name":`)
			req := authed(httptest.NewRequest(http.MethodPost, "/categories", body))
			w := httptest.NewRecorder()

			handler.CreateCategory(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PUT /categories/{id}", func() {
		update := func(id, payload string) *httptest.ResponseRecorder {
			req := authed(httptest.NewRequest(http.MethodPut, "/categories/"+id, strings.NewReader(payload)))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.UpdateCategory(w, req)
			return w
		}

		It("renames an owned category", func() {
			var gym categoryDatamodel.Category
			Expect(db.Where("name = ?", "Gym").First(&gym).Error).To(Succeed())

			w := update(gym.ID, `{"name":"Fitness"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var response category.CategoryResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Name).To(Equal("Fitness"))
		})

		It("returns 404 when renaming a default", func() {
			var food categoryDatamodel.Category
			Expect(db.Where("name = ? AND user_id IS NULL", "Food").First(&food).Error).To(Succeed())

			w := update(food.ID, `{"name":"Groceries"}`)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
