package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"receipt-tracker/account"
	"receipt-tracker/apperr"
	"receipt-tracker/scan-svc/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 5
	MaxRecentLimit     = 50
)

// Ledger is the consumer-side record of redeemed receipts. PostgreSQL holds
// the truth; the Redis marker only short-circuits repeat lookups.
type Ledger struct {
	repository ScanRepository
	cache      RedemptionCache
	publisher  ScanPublisher
	consumers  ConsumerDirectory
	logger     *zap.Logger
	now        func() time.Time
}

func NewLedger(repository ScanRepository, cache RedemptionCache, publisher ScanPublisher, consumers ConsumerDirectory, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		repository: repository,
		cache:      cache,
		publisher:  publisher,
		consumers:  consumers,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the ledger's time source.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// CheckRedeemed never writes, not even to warm the cache.
func (l *Ledger) CheckRedeemed(ctx context.Context, clientID, orderID string) (bool, error) {
	if err := requireIDs(clientID, orderID); err != nil {
		return false, err
	}

	if l.cache != nil {
		exists, err := l.cache.Exists(ctx, l.cache.MarkerKey(clientID, orderID))
		if err != nil {
			l.logger.Warn("redemption cache lookup failed", zap.Error(err))
		} else if exists {
			return true, nil
		}
	}

	return l.repository.HasScan(ctx, clientID, orderID)
}

func (l *Ledger) Redeem(ctx context.Context, req domain.RedeemRequest) (*domain.Scan, error) {
	if err := validateRedeem(&req); err != nil {
		return nil, err
	}

	if l.consumers != nil {
		if _, err := l.consumers.Lookup(ctx, account.ConsumerRef(req.ClientID)); err != nil {
			return nil, err
		}
	}

	var markerKey string
	if l.cache != nil {
		markerKey = l.cache.MarkerKey(req.ClientID, req.OrderID)
		if exists, _ := l.cache.Exists(ctx, markerKey); exists {
			return nil, fmt.Errorf("%w: order already redeemed", apperr.ErrConflict)
		}
	}

	scan := &domain.Scan{
		ID:             "SCAN-" + uuid.NewString(),
		ClientID:       req.ClientID,
		OrderID:        req.OrderID,
		RestaurantID:   req.RestaurantID,
		RestaurantName: req.RestaurantName,
		Total:          req.Total,
		Items:          req.Items,
		Date:           l.now().UTC(),
	}
	if req.Date != nil && !req.Date.IsZero() {
		scan.Date = req.Date.UTC()
	}
	if scan.Items == nil {
		scan.Items = []domain.ScanItem{}
	}

	inserted, err := l.repository.InsertScan(ctx, scan)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("%w: order already redeemed", apperr.ErrConflict)
	}

	l.logger.Info("order redeemed",
		zap.String("scan_id", scan.ID),
		zap.String("client_id", scan.ClientID),
		zap.String("order_id", scan.OrderID))

	if l.cache != nil {
		if err := l.cache.SetMarker(ctx, markerKey); err != nil {
			l.logger.Warn("failed to set redemption marker", zap.String("order_id", scan.OrderID), zap.Error(err))
		}
	}

	if l.publisher != nil {
		event := domain.ScanEvent{
			Type:         domain.EventOrderRedeemed,
			ScanID:       scan.ID,
			ClientID:     scan.ClientID,
			OrderID:      scan.OrderID,
			RestaurantID: scan.RestaurantID,
			Total:        scan.Total,
			Timestamp:    l.now().UTC(),
		}
		if err := l.publisher.PublishScanEvent(ctx, event); err != nil {
			l.logger.Warn("failed to publish scan event", zap.String("scan_id", scan.ID), zap.Error(err))
		}
	}

	return scan, nil
}

func (l *Ledger) History(ctx context.Context, clientID string) ([]domain.Scan, error) {
	return l.list(ctx, clientID, 0)
}

// Recent clamps limit into [1, MaxRecentLimit]; zero or negative means the default.
func (l *Ledger) Recent(ctx context.Context, clientID string, limit int) ([]domain.Scan, error) {
	return l.list(ctx, clientID, clampLimit(limit))
}

func (l *Ledger) Dashboard(ctx context.Context, clientID string) (*domain.Dashboard, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: clientId is required", apperr.ErrInvalidRequest)
	}

	stats, err := l.repository.ScanTotals(ctx, clientID, MonthStart(l.now()))
	if err != nil {
		return nil, err
	}
	recent, err := l.list(ctx, clientID, DefaultRecentLimit)
	if err != nil {
		return nil, err
	}
	return &domain.Dashboard{Stats: stats, RecentScans: recent}, nil
}

func (l *Ledger) Get(ctx context.Context, scanID string) (*domain.Scan, error) {
	if strings.TrimSpace(scanID) == "" {
		return nil, fmt.Errorf("%w: scanId is required", apperr.ErrInvalidRequest)
	}
	return l.repository.GetScan(ctx, scanID)
}

func (l *Ledger) list(ctx context.Context, clientID string, limit int) ([]domain.Scan, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: clientId is required", apperr.ErrInvalidRequest)
	}
	scans, err := l.repository.ListScans(ctx, clientID, limit)
	if err != nil {
		return nil, err
	}
	if scans == nil {
		scans = []domain.Scan{}
	}
	return scans, nil
}

// MonthStart is midnight UTC on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}

func requireIDs(clientID, orderID string) error {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(orderID) == "" {
		return fmt.Errorf("%w: clientId and orderId are required", apperr.ErrInvalidRequest)
	}
	return nil
}

func validateRedeem(req *domain.RedeemRequest) error {
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.OrderID = strings.TrimSpace(req.OrderID)
	req.RestaurantID = strings.TrimSpace(req.RestaurantID)

	if err := requireIDs(req.ClientID, req.OrderID); err != nil {
		return err
	}
	if req.RestaurantID == "" {
		return fmt.Errorf("%w: restaurantId is required", apperr.ErrInvalidRequest)
	}
	if req.Total.IsNegative() {
		return fmt.Errorf("%w: total must not be negative", apperr.ErrInvalidRequest)
	}
	for _, item := range req.Items {
		if item.Quantity < 1 || item.Price.IsNegative() {
			return fmt.Errorf("%w: invalid line item %q", apperr.ErrInvalidRequest, item.DishID)
		}
	}
	return nil
}
