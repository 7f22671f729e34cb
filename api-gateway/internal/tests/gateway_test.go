package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"receipt-tracker/api-gateway/internal/gateway"
	"receipt-tracker/api-gateway/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testConfig = gateway.Config{
	OrderSvcURL:     "http://order-svc",
	ScanSvcURL:      "http://scan-svc",
	AnalyticsSvcURL: "http://analytics-svc",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_Target(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, nil)

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/restaurant/R1/stats", want: "http://analytics-svc"},
		{path: "/api/restaurant/R1/top-dishes", want: "http://analytics-svc"},
		{path: "/api/restaurant/create-order", want: "http://order-svc"},
		{path: "/api/restaurant/R1/orders", want: "http://order-svc"},
		{path: "/api/restaurant/menu/R1", want: "http://order-svc"},
		{path: "/api/restaurant/order/ORD-1/qrcode", want: "http://order-svc"},
		{path: "/api/restaurant/order/stats", want: "http://order-svc"},
		{path: "/api/client/scans", want: "http://scan-svc"},
		{path: "/api/client/dashboard/C1", want: "http://scan-svc"},
		{path: "/api/unknown", want: ""},
		{path: "/api/restaurants", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.path, func(t *testing.T) {
			assert.Equal(t, testCase.want, gw.Target(testCase.path))
		})
	}
}

func TestGateway_RouteHandler_ProxiesWithQuery(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://scan-svc/api/client/scans/C1/recent?limit=3" &&
			req.Header.Get("Authorization") == "Bearer token"
	})).Return(okResponse(`[{"scanId":"SCAN-1"}]`), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/client/scans/C1/recent?limit=3", nil)
	req.Header.Set("Authorization", "Bearer token")
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SCAN-1")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestGateway_RouteHandler_PassesUpstreamStatus(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	conflict := okResponse(`{"message":"conflict: order already redeemed"}`)
	conflict.StatusCode = http.StatusConflict
	mockClient.On("Do", mock.Anything).Return(conflict, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/client/scans", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "already redeemed")
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"API route not found"}`, rr.Body.String())
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, nil)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurant/R1/orders", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_SetupRoutes_NonAPIPath(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, nil)

	rr := httptest.NewRecorder()
	gw.SetupRoutes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/index.html", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
