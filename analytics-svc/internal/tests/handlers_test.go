package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	httpapi "receipt-tracker/analytics-svc/internal/api/http"
	"receipt-tracker/analytics-svc/internal/domain"
	"receipt-tracker/analytics-svc/internal/mocks"
	"receipt-tracker/apperr"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter(mockStats *mocks.StatsInterface) *mux.Router {
	handler := httpapi.NewHandler(mockStats, nil)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestHandler_getStats(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(m *mocks.StatsInterface)
		expectedCode int
		expectedBody string
	}{
		{
			name: "success",
			prepareMocks: func(m *mocks.StatsInterface) {
				m.On("Stats", mock.Anything, "R1").Return(domain.SellerStats{
					RestaurantID:   "R1",
					MonthlyOrders:  1,
					MonthlyRevenue: decimal.NewFromInt(13),
					TotalOrders:    1,
					TotalRevenue:   decimal.NewFromInt(13),
					Month:          "2026-03",
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"restaurantID":"R1","monthlyOrders":1,"monthlyRevenue":13,"totalOrders":1,"totalRevenue":13,"month":"2026-03","redeemedOrders":0}`,
		},
		{
			name: "database_down",
			prepareMocks: func(m *mocks.StatsInterface) {
				m.On("Stats", mock.Anything, "R1").Return(domain.SellerStats{}, apperr.ErrUnavailable).Once()
			},
			expectedCode: http.StatusServiceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStats := mocks.NewStatsInterface(t)
			testCase.prepareMocks(mockStats)

			recorder := httptest.NewRecorder()
			setupTestRouter(mockStats).ServeHTTP(recorder, httptest.NewRequest("GET", "/api/restaurant/R1/stats", nil))

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedBody != "" {
				assert.JSONEq(t, testCase.expectedBody, recorder.Body.String())
			}
		})
	}
}

func TestHandler_getTopDishes(t *testing.T) {
	mockStats := mocks.NewStatsInterface(t)
	mockStats.On("TopDishes", mock.Anything, "R1", 3).Return([]domain.DishRanking{
		{DishID: "A", Name: "Margherita", Quantity: 7, Revenue: decimal.NewFromInt(35)},
	}, nil).Once()

	recorder := httptest.NewRecorder()
	setupTestRouter(mockStats).ServeHTTP(recorder, httptest.NewRequest("GET", "/api/restaurant/R1/top-dishes?limit=3", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"quantity":7`)
}

func TestHandler_getTopDishesBadLimit(t *testing.T) {
	mockStats := mocks.NewStatsInterface(t)

	recorder := httptest.NewRecorder()
	setupTestRouter(mockStats).ServeHTTP(recorder, httptest.NewRequest("GET", "/api/restaurant/R1/top-dishes?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
