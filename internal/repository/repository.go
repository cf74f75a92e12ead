package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"fundboard/internal/models"
)

// PayoutMap maps an account login to its payout fraction (0.85 or 0.95).
// Accounts missing from the map default to 0.85 downstream.
type PayoutMap map[int64]decimal.Decimal

// DefaultPayoutFraction applies when an account has no resolvable upsell.
var DefaultPayoutFraction = decimal.NewFromFloat(0.85)

// UpsellPayoutFraction applies when a paid payout upgrade is present.
var UpsellPayoutFraction = decimal.NewFromFloat(0.95)

// Repository is the read-only query surface over the two source
// databases. Every call opens a fresh connection and releases it before
// returning; nothing is cached between calls.
type Repository interface {
	// RosterRows executes the roster join: one row per active login
	// (status PLAYING or REVIEW), with its latest and earliest daily
	// snapshots and administrative metadata joined in.
	RosterRows(ctx context.Context) ([]models.RawRosterRow, error)

	// PayoutShares resolves the payout fraction per login from the
	// upsell configuration. It never fails the caller: on any query or
	// parse error it logs a warning and returns an empty map.
	PayoutShares(ctx context.Context) (PayoutMap, error)

	// DailyEquitySeries returns the equity curve for one login, oldest
	// first.
	DailyEquitySeries(ctx context.Context, login int64) ([]models.DailyEquityPoint, error)

	// Deals returns raw deal records for one login, newest first,
	// bounded by limit.
	Deals(ctx context.Context, login int64, limit int) ([]models.DealRecord, error)

	// TraderDealsByLogin returns all tradeable fills (order id != 0)
	// for one login, ordered by position then time.
	TraderDealsByLogin(ctx context.Context, login int64) ([]models.TraderDeal, error)

	// TraderDealsByEmail is TraderDealsByLogin keyed by the trader's
	// administrative email.
	TraderDealsByEmail(ctx context.Context, email string) ([]models.TraderDeal, error)

	// TestConnections reports per-database connectivity for the startup
	// health check.
	TestConnections(ctx context.Context) map[string]error
}
