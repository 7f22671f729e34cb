// Package scanclient talks to the scan API on behalf of the consumer app.
package scanclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrScanInProgress  = errors.New("a scan is already being processed")
	ErrAlreadyRedeemed = errors.New("order already redeemed")
	ErrInvalidPayload  = errors.New("not a receipt QR code")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError carries a non-success response from the scan API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scan api returned %d: %s", e.Code, e.Message)
}

type Item struct {
	DishID   string          `json:"dishID"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Receipt is the payload read from a seller's QR code.
type Receipt struct {
	OrderID        string          `json:"orderID"`
	RestaurantID   string          `json:"restaurantID"`
	RestaurantName string          `json:"restaurantName"`
	Dishes         []Item          `json:"dishes"`
	Items          []Item          `json:"items,omitempty"`
	Total          decimal.Decimal `json:"total"`
	Date           time.Time       `json:"date"`
}

type Scan struct {
	ID             string          `json:"scanId"`
	ClientID       string          `json:"clientId"`
	OrderID        string          `json:"orderId"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Total          decimal.Decimal `json:"total"`
	Items          []Item          `json:"items"`
	Date           time.Time       `json:"date"`
}

type Dashboard struct {
	Stats struct {
		TotalScans   int             `json:"totalScans"`
		TotalSpent   decimal.Decimal `json:"totalSpent"`
		MonthlySpent decimal.Decimal `json:"monthlySpent"`
	} `json:"stats"`
	RecentScans []Scan `json:"recentScans"`
}

type redeemRequest struct {
	ClientID       string          `json:"clientId"`
	OrderID        string          `json:"orderId"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	Total          decimal.Decimal `json:"total"`
	Items          []Item          `json:"items"`
	Date           *time.Time      `json:"date,omitempty"`
}

type Client struct {
	BaseURL string
	HTTP    HTTPClient
	Guard   *Guard
}

func New(baseURL string, httpClient HTTPClient, guard *Guard) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if guard == nil {
		guard = NewGuard(2 * time.Second)
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient, Guard: guard}
}

// ParseReceipt decodes QR text into a receipt. Line items may arrive under
// "dishes" or "items".
func ParseReceipt(raw string) (*Receipt, error) {
	var receipt Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if receipt.OrderID == "" || receipt.RestaurantID == "" {
		return nil, fmt.Errorf("%w: missing orderID or restaurantID", ErrInvalidPayload)
	}
	if len(receipt.Dishes) == 0 {
		receipt.Dishes = receipt.Items
	}
	receipt.Items = nil
	return &receipt, nil
}

// Redeem records a scanned receipt for the consumer. Calls made while
// another scan is in flight or cooling down fail with ErrScanInProgress.
func (c *Client) Redeem(ctx context.Context, clientID, raw string) (string, error) {
	if !c.Guard.Begin() {
		return "", ErrScanInProgress
	}
	defer c.Guard.Finish()

	receipt, err := ParseReceipt(raw)
	if err != nil {
		return "", err
	}

	body := redeemRequest{
		ClientID:       clientID,
		OrderID:        receipt.OrderID,
		RestaurantID:   receipt.RestaurantID,
		RestaurantName: receipt.RestaurantName,
		Total:          receipt.Total,
		Items:          receipt.Dishes,
	}
	if !receipt.Date.IsZero() {
		body.Date = &receipt.Date
	}

	var created struct {
		ScanID string `json:"scanId"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/client/scans", body, &created); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusConflict {
			return "", ErrAlreadyRedeemed
		}
		return "", err
	}
	return created.ScanID, nil
}

func (c *Client) History(ctx context.Context, clientID string) ([]Scan, error) {
	var scans []Scan
	err := c.do(ctx, http.MethodGet, "/api/client/scans/"+url.PathEscape(clientID), nil, &scans)
	return scans, err
}

func (c *Client) Recent(ctx context.Context, clientID string, limit int) ([]Scan, error) {
	path := "/api/client/scans/" + url.PathEscape(clientID) + "/recent"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var scans []Scan
	err := c.do(ctx, http.MethodGet, path, nil, &scans)
	return scans, err
}

func (c *Client) CheckRedeemed(ctx context.Context, clientID, orderID string) (bool, error) {
	var resp struct {
		Redeemed bool `json:"redeemed"`
	}
	err := c.do(ctx, http.MethodGet,
		"/api/client/scans/"+url.PathEscape(clientID)+"/orders/"+url.PathEscape(orderID), nil, &resp)
	return resp.Redeemed, err
}

func (c *Client) Dashboard(ctx context.Context, clientID string) (*Dashboard, error) {
	var dashboard Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/client/dashboard/"+url.PathEscape(clientID), nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&msg)
		return &StatusError{Code: resp.StatusCode, Message: msg.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
