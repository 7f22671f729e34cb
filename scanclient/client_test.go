package scanclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"receipt-tracker/scanclient"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receiptPayload = `{"orderID":"ORD-1","restaurantID":"R1","restaurantName":"Pizzeria",` +
	`"dishes":[{"dishID":"A","name":"Margherita","quantity":2,"price":5}],"total":10,"date":"2026-03-14T12:00:00Z"}`

func TestParseReceipt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		items   int
		wantErr bool
	}{
		{name: "dishes", raw: receiptPayload, items: 1},
		{name: "items alias", raw: `{"orderID":"O","restaurantID":"R","items":[{"dishID":"A","quantity":1,"price":1}],"total":1}`, items: 1},
		{name: "not json", raw: "https://example.com", wantErr: true},
		{name: "missing order", raw: `{"restaurantID":"R"}`, wantErr: true},
		{name: "missing restaurant", raw: `{"orderID":"O"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := scanclient.ParseReceipt(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, scanclient.ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Len(t, receipt.Dishes, tt.items)
			assert.Empty(t, receipt.Items)
		})
	}
}

func TestClient_Redeem(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/client/scans", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Scan saved successfully","scanId":"SCAN-1"}`))
	}))
	defer srv.Close()

	client := scanclient.New(srv.URL+"/", srv.Client(), scanclient.NewGuard(0))
	scanID, err := client.Redeem(context.Background(), "C1", receiptPayload)

	require.NoError(t, err)
	assert.Equal(t, "SCAN-1", scanID)
	assert.Equal(t, "C1", got["clientId"])
	assert.Equal(t, "ORD-1", got["orderId"])
	assert.Equal(t, "R1", got["restaurantId"])
	assert.Equal(t, "Pizzeria", got["restaurantName"])
	assert.Equal(t, "10", got["total"])
	assert.Equal(t, "2026-03-14T12:00:00Z", got["date"])
	assert.Len(t, got["items"], 1)
	assert.Equal(t, scanclient.Idle, client.Guard.State())
}

func TestClient_Redeem_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"conflict: order already redeemed"}`))
	}))
	defer srv.Close()

	client := scanclient.New(srv.URL, srv.Client(), scanclient.NewGuard(0))
	_, err := client.Redeem(context.Background(), "C1", receiptPayload)

	assert.ErrorIs(t, err, scanclient.ErrAlreadyRedeemed)
}

func TestClient_Redeem_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"message":"service unavailable"}`))
	}))
	defer srv.Close()

	client := scanclient.New(srv.URL, srv.Client(), scanclient.NewGuard(0))
	_, err := client.Redeem(context.Background(), "C1", receiptPayload)

	var statusErr *scanclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "service unavailable", statusErr.Message)
}

func TestClient_Redeem_InvalidPayloadSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := scanclient.New(srv.URL, srv.Client(), scanclient.NewGuard(time.Hour))
	_, err := client.Redeem(context.Background(), "C1", "garbage")

	assert.ErrorIs(t, err, scanclient.ErrInvalidPayload)
	assert.False(t, called)
	assert.Equal(t, scanclient.CooledDown, client.Guard.State())
}

func TestClient_Redeem_DropsRepeatsWhileBusy(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		close(started)
		<-release
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"scanId":"SCAN-1"}`))
	}))
	defer srv.Close()

	client := scanclient.New(srv.URL, srv.Client(), scanclient.NewGuard(time.Hour))

	done := make(chan error, 1)
	go func() {
		_, err := client.Redeem(context.Background(), "C1", receiptPayload)
		done <- err
	}()
	<-started

	_, err := client.Redeem(context.Background(), "C1", receiptPayload)
	assert.ErrorIs(t, err, scanclient.ErrScanInProgress)

	close(release)
	require.NoError(t, <-done)

	_, err = client.Redeem(context.Background(), "C1", receiptPayload)
	assert.ErrorIs(t, err, scanclient.ErrScanInProgress)
	assert.Equal(t, 1, requests)
}

func TestClient_Reads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/client/scans/C1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"scanId":"SCAN-1","orderId":"ORD-1","total":13}]`))
	})
	mux.HandleFunc("/api/client/scans/C1/recent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/client/scans/C1/orders/ORD-1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"redeemed":true}`))
	})
	mux.HandleFunc("/api/client/dashboard/C1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stats":{"totalScans":2,"totalSpent":20.5,"monthlySpent":7},"recentScans":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := scanclient.New(srv.URL, srv.Client(), nil)
	ctx := context.Background()

	history, err := client.History(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, decimal.NewFromInt(13).Equal(history[0].Total))

	recent, err := client.Recent(ctx, "C1", 3)
	require.NoError(t, err)
	assert.Empty(t, recent)

	redeemed, err := client.CheckRedeemed(ctx, "C1", "ORD-1")
	require.NoError(t, err)
	assert.True(t, redeemed)

	dashboard, err := client.Dashboard(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 2, dashboard.Stats.TotalScans)
	assert.True(t, decimal.RequireFromString("20.5").Equal(dashboard.Stats.TotalSpent))
}
