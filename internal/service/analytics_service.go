package service

import (
	"context"
	"strconv"
	"strings"

	"fundboard/internal/analytics"
	"fundboard/internal/models"
	"fundboard/internal/repository"
)

// AnalyticsService reconstructs positions from raw fills and computes
// the per-trader performance summary.
type AnalyticsService struct {
	Repo repository.Repository
}

// TraderAnalytics resolves the identifier (an email when it contains
// "@", a numeric login otherwise), fetches the trader's fills and
// derives the analytics result. A trader with no completed positions
// yields nil, which callers present as not found.
func (s *AnalyticsService) TraderAnalytics(ctx context.Context, identifier string) (*analytics.Result, error) {
	deals, err := s.fetchDeals(ctx, strings.TrimSpace(identifier))
	if err != nil {
		return nil, err
	}
	if len(deals) == 0 {
		return nil, nil
	}

	positions := analytics.ReconstructPositions(deals)
	result := analytics.Compute(positions)
	if result == nil {
		return nil, nil
	}

	result.TraderInfo = traderInfo(deals[0])
	return result, nil
}

func (s *AnalyticsService) fetchDeals(ctx context.Context, identifier string) ([]models.TraderDeal, error) {
	if identifier == "" {
		return nil, nil
	}
	if strings.Contains(identifier, "@") {
		return s.Repo.TraderDealsByEmail(ctx, identifier)
	}
	login, err := strconv.ParseInt(identifier, 10, 64)
	if err != nil {
		// Neither an email nor a login: nothing to report.
		return nil, nil
	}
	return s.Repo.TraderDealsByLogin(ctx, login)
}

func traderInfo(deal models.TraderDeal) analytics.TraderInfo {
	info := analytics.TraderInfo{Login: deal.Login}
	if deal.Email != nil {
		info.Email = *deal.Email
	}
	if deal.FirstName != nil {
		info.FirstName = *deal.FirstName
	}
	if deal.LastName != nil {
		info.LastName = *deal.LastName
	}
	return info
}
