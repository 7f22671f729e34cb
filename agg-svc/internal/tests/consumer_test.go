package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"receipt-tracker/agg-svc/internal/domain"
	"receipt-tracker/agg-svc/internal/mocks"
	"receipt-tracker/agg-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestConsumer(store *mocks.StoreInterface) *service.Consumer {
	consumer := service.NewConsumer(nil, store, nil)
	consumer.Now = func() time.Time { return fixedNow }
	return consumer
}

func TestConsumer_Process(t *testing.T) {
	ctx := context.Background()
	counters := domain.SellerCounters{
		TotalOrders:    4,
		TotalRevenue:   decimal.RequireFromString("52.00"),
		MonthlyOrders:  1,
		MonthlyRevenue: decimal.RequireFromString("13.00"),
		Month:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		inputMessage   domain.KafkaMessage
		setupMockStore func(*mocks.StoreInterface)
		expectError    bool
	}{
		{
			name:         "order_created_mirrors_counters",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderCreated, OrderID: "ORD-1", RestaurantID: "R1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("LoadCounters", ctx, "R1", fixedNow).Return(counters, nil).Once()
				store.On("MirrorCounters", ctx, "R1", counters).Return(nil).Once()
			},
		},
		{
			name:         "load_error",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderCreated, RestaurantID: "R1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("LoadCounters", ctx, "R1", fixedNow).
					Return(domain.SellerCounters{}, errors.New("db connection failed")).Once()
			},
			expectError: true,
		},
		{
			name:         "mirror_error",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderCreated, RestaurantID: "R1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("LoadCounters", ctx, "R1", fixedNow).Return(counters, nil).Once()
				store.On("MirrorCounters", ctx, "R1", counters).Return(errors.New("redis error")).Once()
			},
			expectError: true,
		},
		{
			name:         "order_redeemed_increments_mirror",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderRedeemed, RestaurantID: "R1", ClientID: "C1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("IncrementRedeemed", ctx, "R1").Return(nil).Once()
				store.On("IncrementMirroredRedeemed", ctx, "R1").Return(true, nil).Once()
			},
		},
		{
			name:         "order_redeemed_without_mirror_refreshes",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderRedeemed, RestaurantID: "R1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("IncrementRedeemed", ctx, "R1").Return(nil).Once()
				store.On("IncrementMirroredRedeemed", ctx, "R1").Return(false, nil).Once()
				store.On("LoadCounters", ctx, "R1", fixedNow).Return(counters, nil).Once()
				store.On("MirrorCounters", ctx, "R1", counters).Return(nil).Once()
			},
		},
		{
			name:         "order_redeemed_database_error",
			inputMessage: domain.KafkaMessage{Type: domain.EventOrderRedeemed, RestaurantID: "R1"},
			setupMockStore: func(store *mocks.StoreInterface) {
				store.On("IncrementRedeemed", ctx, "R1").Return(errors.New("db connection failed")).Once()
			},
			expectError: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockStore := mocks.NewStoreInterface(t)
			testCase.setupMockStore(mockStore)

			err := newTestConsumer(mockStore).Process(ctx, testCase.inputMessage)
			if testCase.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConsumer_InvalidMessageType(t *testing.T) {
	mockStore := mocks.NewStoreInterface(t)

	err := newTestConsumer(mockStore).Process(context.Background(), domain.KafkaMessage{
		Type:         "new_review",
		RestaurantID: "R1",
	})
	assert.NoError(t, err)
	mockStore.AssertNotCalled(t, "LoadCounters", mock.Anything, mock.Anything, mock.Anything)
	mockStore.AssertNotCalled(t, "IncrementRedeemed", mock.Anything, mock.Anything)
}

type scriptedReader struct {
	messages []kafka.Message
	cancel   context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	next := r.messages[0]
	r.messages = r.messages[1:]
	return next, nil
}

func TestConsumer_StartSkipsBadMessagesAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockStore := mocks.NewStoreInterface(t)
	mockStore.On("IncrementRedeemed", mock.Anything, "R1").Return(nil).Once()
	mockStore.On("IncrementMirroredRedeemed", mock.Anything, "R1").Return(true, nil).Once()

	reader := &scriptedReader{
		cancel: cancel,
		messages: []kafka.Message{
			{Value: []byte(`not json`)},
			{Value: []byte(`{"type":"order_redeemed","order_id":"O1","restaurant_id":"R1","client_id":"C1","total":13}`)},
		},
	}

	consumer := service.NewConsumer(reader, mockStore, nil)
	done := make(chan struct{})
	go func() {
		consumer.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancellation")
	}
}
