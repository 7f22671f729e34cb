package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"receipt-tracker/apperr"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	OrderSvcURL     string
	ScanSvcURL      string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.Logger
}

func NewGateway(config Config, client HTTPClient, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	apperr.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	g.logger.Debug("proxy", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.String("target", targetURL))

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Error("failed to create upstream request", zap.String("url", url), zap.Error(err))
		apperr.WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("upstream unreachable", zap.String("target", targetURL), zap.Error(err))
		apperr.WriteJSON(w, http.StatusBadGateway, map[string]string{"message": "upstream service unavailable"})
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warn("failed to copy upstream response", zap.Error(err))
	}
}

// Target picks the upstream for an API path, or "" when nothing serves it.
func (g *Gateway) Target(path string) string {
	switch {
	case isSellerAnalytics(path):
		return g.config.AnalyticsSvcURL
	case strings.HasPrefix(path, "/api/restaurant/"):
		return g.config.OrderSvcURL
	case strings.HasPrefix(path, "/api/client/"):
		return g.config.ScanSvcURL
	default:
		return ""
	}
}

// isSellerAnalytics matches /api/restaurant/{id}/stats and /api/restaurant/{id}/top-dishes.
func isSellerAnalytics(path string) bool {
	rest, ok := strings.CutPrefix(path, "/api/restaurant/")
	if !ok {
		return false
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[0] == "menu" || parts[0] == "order" {
		return false
	}
	return parts[1] == "stats" || parts[1] == "top-dishes"
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target := g.Target(r.URL.Path)
	if target == "" {
		g.logger.Info("unmatched API route", zap.String("path", r.URL.Path))
		apperr.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "API route not found"})
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperr.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	})
	return r
}
