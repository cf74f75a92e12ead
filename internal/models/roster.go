package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Phase is the current stage classification of a challenge account.
type Phase string

const (
	PhaseHouseAccount Phase = "House Account"
	PhaseFunded       Phase = "Funded"
	PhaseTwo          Phase = "Phase 2"
	PhaseOneStep      Phase = "1-Step"
	PhaseOne          Phase = "Phase 1"
	PhaseUnknown      Phase = "UNKNOWN"
)

// PhaseOrder defines display and sort precedence.
var PhaseOrder = []Phase{
	PhaseHouseAccount,
	PhaseFunded,
	PhaseTwo,
	PhaseOneStep,
	PhaseOne,
	PhaseUnknown,
}

// Rank returns the sort precedence of p; unknown values sort last.
func (p Phase) Rank() int {
	for i, candidate := range PhaseOrder {
		if p == candidate {
			return i
		}
	}
	return len(PhaseOrder)
}

// RawRosterRow is the typed scan target for the roster join. Numeric
// columns are scanned as strings because the source schemas mix DECIMAL,
// DOUBLE and free-text columns; the post-processor owns coercion, where
// an unparseable or zero value is treated as absent.
type RawRosterRow struct {
	Login            int64      `gorm:"column:login"`
	Title            *string    `gorm:"column:title"`
	Category         *string    `gorm:"column:category"`
	AccountSize      *string    `gorm:"column:account_size"`
	MarginEquity     *string    `gorm:"column:margin_equity"`
	DailyEquity      *string    `gorm:"column:daily_equity"`
	ChallengeBalance *string    `gorm:"column:challenge_balance"`
	SnapshotAt       *time.Time `gorm:"column:snapshot_at"`
	TraderID         *string    `gorm:"column:trader_id"`
	Email            *string    `gorm:"column:email"`
	FirstName        *string    `gorm:"column:first_name"`
	LastName         *string    `gorm:"column:last_name"`
	Status           *string    `gorm:"column:status"`
}

// RosterRow is one processed roster entry, rebuilt fresh on every request
// and immutable once built. Starting balance and current equity default
// to zero when both fallback sources are absent.
type RosterRow struct {
	Login           int64           `json:"login"`
	Category        string          `json:"category"`
	Phase           Phase           `json:"phase"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Status          string          `json:"status"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	CurrentEquity   decimal.Decimal `json:"current_equity"`
	Change          decimal.Decimal `json:"change"`
	GainLossPct     float64         `json:"gain_loss_pct"`
	PayoutPct       float64         `json:"payout_pct"`
	PotLiability    decimal.Decimal `json:"pot_liability"`
}

// SummaryStats is the reduction of a processed roster.
type SummaryStats struct {
	Total               int             `json:"total"`
	Funded              int             `json:"funded"`
	Phase2              int             `json:"phase2"`
	OneStep             int             `json:"one_step"`
	Phase1              int             `json:"phase1"`
	TotalLiability      decimal.Decimal `json:"total_liability"`
	TotalEquity         decimal.Decimal `json:"total_equity"`
	WeightedAvgGainLoss float64         `json:"weighted_avg_gain_loss"`
}
