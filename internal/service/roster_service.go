package service

import (
	"context"

	"fundboard/internal/models"
	"fundboard/internal/repository"
	"fundboard/internal/roster"
)

// RosterService builds the manager roster and its derived views. Every
// call recomputes from source; nothing is cached between requests.
type RosterService struct {
	Repo        repository.Repository
	Opts        roster.Options
	SummaryOpts roster.SummaryOptions

	DealsDefaultLimit int
	DealsMaxLimit     int
}

// Roster returns the processed roster, sorted by phase precedence then
// descending gain/loss. The payout map is resolved before
// post-processing consumes it; payout failures degrade to the default
// tier rather than failing the build.
func (s *RosterService) Roster(ctx context.Context) ([]models.RosterRow, error) {
	rows, err := s.Repo.RosterRows(ctx)
	if err != nil {
		return nil, err
	}

	payouts, err := s.Repo.PayoutShares(ctx)
	if err != nil {
		payouts = repository.PayoutMap{}
	}

	processed := roster.Process(rows, payouts, s.Opts)
	roster.Sort(processed)
	return processed, nil
}

func (s *RosterService) Summary(rows []models.RosterRow) models.SummaryStats {
	return roster.Summarize(rows, s.SummaryOpts)
}

// TraderRow returns the roster row for one login, or nil when the login
// is not on the active roster.
func (s *RosterService) TraderRow(ctx context.Context, login int64) (*models.RosterRow, error) {
	rows, err := s.Roster(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Login == login {
			return &rows[i], nil
		}
	}
	return nil, nil
}

func (s *RosterService) EquitySeries(ctx context.Context, login int64) ([]models.DailyEquityPoint, error) {
	return s.Repo.DailyEquitySeries(ctx, login)
}

func (s *RosterService) Deals(ctx context.Context, login int64, limit int) ([]models.DealRecord, error) {
	if limit <= 0 {
		limit = s.DealsDefaultLimit
	}
	if s.DealsMaxLimit > 0 && limit > s.DealsMaxLimit {
		limit = s.DealsMaxLimit
	}
	return s.Repo.Deals(ctx, login, limit)
}
