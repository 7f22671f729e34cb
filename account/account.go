// Package account resolves consumer and seller accounts through a single
// lookup keyed by account kind.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"receipt-tracker/apperr"
)

type Kind int

const (
	Consumer Kind = iota + 1
	Seller
)

func (k Kind) String() string {
	switch k {
	case Consumer:
		return "client"
	case Seller:
		return "restaurant"
	default:
		return "unknown"
	}
}

// ParseKind accepts the user types sent by the mobile app ("client",
// "restaurant") as well as "consumer" and "seller".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "consumer":
		return Consumer, nil
	case "restaurant", "seller":
		return Seller, nil
	}
	return 0, fmt.Errorf("%w: unknown account type %q", apperr.ErrInvalidRequest, s)
}

type Ref struct {
	Kind Kind
	ID   string
}

func ConsumerRef(id string) Ref { return Ref{Kind: Consumer, ID: id} }
func SellerRef(id string) Ref   { return Ref{Kind: Seller, ID: id} }

type Account struct {
	Ref
	Name  string
	Email string
}

var lookupQueries = map[Kind]string{
	Consumer: `SELECT client_id, COALESCE(name, ''), email FROM clients WHERE client_id = $1`,
	Seller:   `SELECT restaurant_id, name, email FROM restaurants WHERE restaurant_id = $1`,
}

type Directory struct {
	DB *sql.DB
}

func NewDirectory(db *sql.DB) *Directory {
	return &Directory{DB: db}
}

func (d *Directory) Lookup(ctx context.Context, ref Ref) (*Account, error) {
	query, ok := lookupQueries[ref.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account kind %d", apperr.ErrInvalidRequest, ref.Kind)
	}
	if strings.TrimSpace(ref.ID) == "" {
		return nil, fmt.Errorf("%w: %s id is required", apperr.ErrInvalidRequest, ref.Kind)
	}

	acc := Account{Ref: Ref{Kind: ref.Kind}}
	err := d.DB.QueryRowContext(ctx, query, ref.ID).Scan(&acc.ID, &acc.Name, &acc.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s", apperr.ErrNotFound, ref.Kind, ref.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %w", apperr.ErrUnavailable, ref.Kind, err)
	}
	return &acc, nil
}
