package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"receipt-tracker/apperr"
	"receipt-tracker/scan-svc/internal/domain"
	"receipt-tracker/scan-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Ledger service.LedgerInterface
	Logger *zap.Logger
}

func NewHandler(ledger service.LedgerInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Ledger: ledger, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/client/scans", h.redeem).Methods("POST")
	r.HandleFunc("/api/client/scans/{clientId}", h.history).Methods("GET")
	r.HandleFunc("/api/client/scans/{clientId}/recent", h.recent).Methods("GET")
	r.HandleFunc("/api/client/scans/{clientId}/orders/{orderId}", h.checkRedeemed).Methods("GET")
	r.HandleFunc("/api/client/scan/{scanId}", h.getScan).Methods("GET")
	r.HandleFunc("/api/client/dashboard/{clientId}", h.dashboard).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "scan-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	var req domain.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: invalid JSON format: %v", apperr.ErrInvalidRequest, err))
		return
	}

	scan, err := h.Ledger.Redeem(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusCreated, domain.RedeemResponse{
		Message: "Scan saved successfully",
		ScanID:  scan.ID,
	})
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	scans, err := h.Ledger.History(r.Context(), mux.Vars(r)["clientId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, scans)
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, fmt.Errorf("%w: limit must be an integer", apperr.ErrInvalidRequest))
			return
		}
		limit = parsed
	}

	scans, err := h.Ledger.Recent(r.Context(), mux.Vars(r)["clientId"], limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, scans)
}

func (h *Handler) checkRedeemed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	redeemed, err := h.Ledger.CheckRedeemed(r.Context(), vars["clientId"], vars["orderId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, domain.RedeemedResponse{Redeemed: redeemed})
}

func (h *Handler) getScan(w http.ResponseWriter, r *http.Request) {
	scan, err := h.Ledger.Get(r.Context(), mux.Vars(r)["scanId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, scan)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Ledger.Dashboard(r.Context(), mux.Vars(r)["clientId"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.HTTPStatus(err) >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	apperr.WriteError(w, err)
}
