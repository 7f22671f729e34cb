package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"receipt-tracker/analytics-svc/internal/service"
	"receipt-tracker/apperr"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Stats  service.StatsInterface
	Logger *zap.Logger
}

func NewHandler(svc service.StatsInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Stats: svc, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		apperr.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.HandleFunc("/api/restaurant/{restaurantID}/stats", h.getStats).Methods("GET")
	r.HandleFunc("/api/restaurant/{restaurantID}/top-dishes", h.getTopDishes).Methods("GET")
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantID"]
	stats, err := h.Stats.Stats(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Debug("stats served", zap.String("restaurant_id", restaurantID), zap.String("source", stats.Source))
	apperr.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) getTopDishes(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, fmt.Errorf("%w: limit must be an integer", apperr.ErrInvalidRequest))
			return
		}
		limit = parsed
	}

	dishes, err := h.Stats.TopDishes(r.Context(), mux.Vars(r)["restaurantID"], limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, dishes)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.HTTPStatus(err) >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	apperr.WriteError(w, err)
}
