package budget

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
	List(userID string) ([]BudgetResponse, error)
	Create(userID string, dto CreateBudgetDTO) (*BudgetResponse, error)
	Update(userID, budgetID string, dto UpdateBudgetDTO) (*BudgetResponse, error)
	Delete(userID, budgetID string) (*DeleteResponse, error)
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

func (h *Handler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgets, err := h.Service.List(current.ID)
	if err != nil {
		h.Logger.Error("GetBudgets: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, BudgetsResponse{Budgets: budgets})
}

func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(current.ID, dto)
	if err != nil {
		h.Logger.Warn("CreateBudget: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgetID := chi.URLParam(r, "id")

	var dto UpdateBudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(current.ID, budgetID, dto)
	if err != nil {
		h.Logger.Warn("UpdateBudget: service error", "error", err, "budget_id", budgetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	budgetID := chi.URLParam(r, "id")

	resp, err := h.Service.Delete(current.ID, budgetID)
	if err != nil {
		h.Logger.Warn("DeleteBudget: service error", "error", err, "budget_id", budgetID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
