package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"receipt-tracker/apperr"
	"receipt-tracker/order-svc/internal/domain"
	"receipt-tracker/order-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog  service.CatalogInterface
	Orders   service.OrderServiceInterface
	Receipts service.ReceiptEncoderInterface
	Logger   *zap.Logger
}

func NewHandler(catalog service.CatalogInterface, orders service.OrderServiceInterface, receipts service.ReceiptEncoderInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Catalog:  catalog,
		Orders:   orders,
		Receipts: receipts,
		Logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurant/menu/{restaurantID}", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurant/create-order", h.createOrder).Methods("POST")
	r.HandleFunc("/api/restaurant/order/{orderID}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/restaurant/order/{orderID}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/restaurant/order/{orderID}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/restaurant/{restaurantID}/orders", h.getRestaurantOrders).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["restaurantID"]
	dishes, err := h.Catalog.Menu(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Logger.Debug("menu served", zap.String("restaurant_id", restaurantID), zap.Int("dishes", len(dishes)))
	apperr.WriteJSON(w, http.StatusOK, dishes)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: invalid JSON format: %v", apperr.ErrInvalidRequest, err))
		return
	}

	order, err := h.Orders.Create(r.Context(), req.RestaurantID, req.Dishes)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := domain.CreateOrderResponse{
		Message: "Order created and QR code generated",
		Order:   order,
	}
	receipt, err := h.Receipts.ForOrder(r.Context(), order)
	if err != nil {
		// The order is already committed; the QR code can be fetched again later.
		h.Logger.Warn("failed to encode receipt", zap.String("order_id", order.ID), zap.Error(err))
		resp.Message = "Order created; QR code unavailable"
	} else {
		resp.Payload = receipt.Payload
		resp.QRCode = receipt.DataURL
	}

	apperr.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["orderID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) getRestaurantOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListBySeller(r.Context(), mux.Vars(r)["restaurantID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, fmt.Errorf("%w: invalid JSON format: %v", apperr.ErrInvalidRequest, err))
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["orderID"], req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	apperr.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated",
		"order":   order,
	})
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["orderID"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	receipt, err := h.Receipts.ForOrder(r.Context(), order)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(receipt.PNG)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.HTTPStatus(err) >= http.StatusInternalServerError {
		h.Logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	}
	apperr.WriteError(w, err)
}
