package service

import (
	"context"
	"errors"

	"fundboard/internal/models"
	"fundboard/internal/repository"
)

// stubRepo satisfies repository.Repository with canned data.
type stubRepo struct {
	rosterRows   []models.RawRosterRow
	rosterErr    error
	payouts      repository.PayoutMap
	payoutsErr   error
	equity       map[int64][]models.DailyEquityPoint
	deals        map[int64][]models.DealRecord
	dealsLimit   int
	fillsByLogin map[int64][]models.TraderDeal
	fillsByEmail map[string][]models.TraderDeal
}

func (s *stubRepo) RosterRows(ctx context.Context) ([]models.RawRosterRow, error) {
	return s.rosterRows, s.rosterErr
}

func (s *stubRepo) PayoutShares(ctx context.Context) (repository.PayoutMap, error) {
	if s.payoutsErr != nil {
		return nil, s.payoutsErr
	}
	return s.payouts, nil
}

func (s *stubRepo) DailyEquitySeries(ctx context.Context, login int64) ([]models.DailyEquityPoint, error) {
	return s.equity[login], nil
}

func (s *stubRepo) Deals(ctx context.Context, login int64, limit int) ([]models.DealRecord, error) {
	s.dealsLimit = limit
	rows := s.deals[login]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *stubRepo) TraderDealsByLogin(ctx context.Context, login int64) ([]models.TraderDeal, error) {
	return s.fillsByLogin[login], nil
}

func (s *stubRepo) TraderDealsByEmail(ctx context.Context, email string) ([]models.TraderDeal, error) {
	return s.fillsByEmail[email], nil
}

func (s *stubRepo) TestConnections(ctx context.Context) map[string]error {
	return map[string]error{"mt5": nil, "admin": errors.New("unreachable")}
}
