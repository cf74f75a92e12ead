package service

import (
	"context"
	"testing"
	"time"

	"fundboard/internal/models"
)

func completedFills(login int64, email string) []models.TraderDeal {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	mail := email
	return []models.TraderDeal{
		{Login: login, PositionID: 1, Entry: models.DealEntryOpen, Action: "BUY", Symbol: "XAUUSD",
			Price: 100, Volume: 1, NetProfit: 0, Time: base, Email: &mail},
		{Login: login, PositionID: 1, Entry: models.DealEntryClose, Action: "SELL", Symbol: "XAUUSD",
			Price: 101, Volume: 1, NetProfit: 10, Time: base.Add(time.Hour), Email: &mail},
	}
}

func TestAnalyticsService_RoutesByIdentifier(t *testing.T) {
	repo := &stubRepo{
		fillsByLogin: map[int64][]models.TraderDeal{1001: completedFills(1001, "t@example.com")},
		fillsByEmail: map[string][]models.TraderDeal{"t@example.com": completedFills(1001, "t@example.com")},
	}
	svc := &AnalyticsService{Repo: repo}

	byLogin, err := svc.TraderAnalytics(context.Background(), "1001")
	if err != nil || byLogin == nil {
		t.Fatalf("by login: result=%v err=%v", byLogin, err)
	}
	if byLogin.TraderInfo.Login != 1001 || byLogin.TraderInfo.Email != "t@example.com" {
		t.Fatalf("trader_info=%+v", byLogin.TraderInfo)
	}

	byEmail, err := svc.TraderAnalytics(context.Background(), "t@example.com")
	if err != nil || byEmail == nil {
		t.Fatalf("by email: result=%v err=%v", byEmail, err)
	}
	if byEmail.TotalTrades != 1 {
		t.Fatalf("total_trades=%d", byEmail.TotalTrades)
	}
}

func TestAnalyticsService_AbsentResults(t *testing.T) {
	repo := &stubRepo{
		fillsByLogin: map[int64][]models.TraderDeal{
			// Only an open fill: no completed positions.
			2002: {{Login: 2002, PositionID: 9, Entry: models.DealEntryOpen, Symbol: "EURUSD",
				Price: 1.1, Volume: 1, Time: time.Now()}},
		},
	}
	svc := &AnalyticsService{Repo: repo}

	for _, identifier := range []string{"9999", "2002", "not-a-login", ""} {
		result, err := svc.TraderAnalytics(context.Background(), identifier)
		if err != nil {
			t.Fatalf("identifier %q: err=%v", identifier, err)
		}
		if result != nil {
			t.Fatalf("identifier %q: want absent result, got %+v", identifier, result)
		}
	}
}
