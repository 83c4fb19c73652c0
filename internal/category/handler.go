package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/fintrack/finance-tracker/internal/auth"
	"github.com/fintrack/finance-tracker/internal/transport"
	"github.com/fintrack/finance-tracker/pkg/logger"
)

type ServiceAPI interface {
	List(userID string) ([]CategoryResponse, error)
	Create(userID string, dto CreateCategoryDTO) (*CategoryResponse, error)
	Update(userID, categoryID string, dto UpdateCategoryDTO) (*CategoryResponse, error)
	ResolveVisible(userID, categoryID string) (*Category, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.Service.List(current.ID)
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(current.ID, dto)
	if err != nil {
		h.Logger.Warn("CreateCategory: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryID := chi.URLParam(r, "id")

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(current.ID, categoryID, dto)
	if err != nil {
		h.Logger.Warn("UpdateCategory: service error", "error", err, "category_id", categoryID, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
