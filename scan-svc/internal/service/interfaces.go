package service

import (
	"context"
	"time"

	"receipt-tracker/account"
	"receipt-tracker/scan-svc/internal/domain"
)

type LedgerInterface interface {
	CheckRedeemed(ctx context.Context, clientID, orderID string) (bool, error)
	Redeem(ctx context.Context, req domain.RedeemRequest) (*domain.Scan, error)
	History(ctx context.Context, clientID string) ([]domain.Scan, error)
	Recent(ctx context.Context, clientID string, limit int) ([]domain.Scan, error)
	Dashboard(ctx context.Context, clientID string) (*domain.Dashboard, error)
	Get(ctx context.Context, scanID string) (*domain.Scan, error)
}

type ScanRepository interface {
	// InsertScan reports false when the consumer already holds a scan for the order.
	InsertScan(ctx context.Context, scan *domain.Scan) (bool, error)
	HasScan(ctx context.Context, clientID, orderID string) (bool, error)
	// ListScans returns newest first; limit <= 0 means no limit.
	ListScans(ctx context.Context, clientID string, limit int) ([]domain.Scan, error)
	GetScan(ctx context.Context, scanID string) (*domain.Scan, error)
	ScanTotals(ctx context.Context, clientID string, monthStart time.Time) (domain.DashboardStats, error)
}

type RedemptionCache interface {
	MarkerKey(clientID, orderID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

type ScanPublisher interface {
	PublishScanEvent(ctx context.Context, event domain.ScanEvent) error
}

type ConsumerDirectory interface {
	Lookup(ctx context.Context, ref account.Ref) (*account.Account, error)
}

var _ LedgerInterface = (*Ledger)(nil)
var _ ConsumerDirectory = (*account.Directory)(nil)
