package transaction

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/fintrack/finance-tracker/internal/auth"
	"github.com/fintrack/finance-tracker/internal/transport"
	"github.com/fintrack/finance-tracker/pkg/logger"
)

type ServiceAPI interface {
	Create(userID string, dto CreateTransactionDTO) (*TransactionResponse, error)
	GetByID(userID, transactionID string) (*TransactionResponse, error)
	List(userID string, page int, startDate, endDate string) (*ListTransactionsResponse, error)
	Update(userID, transactionID string, dto UpdateTransactionDTO) (*TransactionResponse, error)
	Delete(userID, transactionID string) (*DeleteResponse, error)
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

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Create(current.ID, dto)
	if err != nil {
		h.Logger.Warn("CreateTransaction: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")

	resp, err := h.Service.GetByID(current.ID, transactionID)
	if err != nil {
		h.Logger.Warn("GetTransaction: service error", "error", err, "transaction_id", transactionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "page must be a number")
			return
		}
		page = parsed
	}

	resp, err := h.Service.List(current.ID, page,
		r.URL.Query().Get("start_date"),
		r.URL.Query().Get("end_date"))
	if err != nil {
		h.Logger.Warn("ListTransactions: service error", "error", err, "user_id", current.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Update(current.ID, transactionID, dto)
	if err != nil {
		h.Logger.Warn("UpdateTransaction: service error", "error", err, "transaction_id", transactionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.UserFromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID := chi.URLParam(r, "id")

	resp, err := h.Service.Delete(current.ID, transactionID)
	if err != nil {
		h.Logger.Warn("DeleteTransaction: service error", "error", err, "transaction_id", transactionID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
