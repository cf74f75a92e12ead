package service

import (
	"context"
	"testing"

	"fundboard/internal/models"
	"fundboard/internal/roster"
)

func strPtr(s string) *string { return &s }

func newRosterService(repo *stubRepo) *RosterService {
	return &RosterService{
		Repo:              repo,
		Opts:              roster.Options{HouseAccountEmail: "analytics@theupsidefunding.com"},
		DealsDefaultLimit: 50,
		DealsMaxLimit:     500,
	}
}

func rawRosterRow(login int64, title, equity string) models.RawRosterRow {
	return models.RawRosterRow{
		Login:        login,
		Title:        strPtr(title),
		AccountSize:  strPtr("10000"),
		MarginEquity: strPtr(equity),
		Email:        strPtr("trader@example.com"),
		Status:       strPtr("PLAYING"),
	}
}

func TestRosterService_SortedRoster(t *testing.T) {
	repo := &stubRepo{
		rosterRows: []models.RawRosterRow{
			rawRosterRow(1, "Challenge Phase 1", "10100"),
			rawRosterRow(2, "Funded", "10500"),
			rawRosterRow(3, "Funded", "12000"),
		},
	}
	svc := newRosterService(repo)

	rows, err := svc.Roster(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}
	// Funded rows first, higher gain first within the phase.
	if rows[0].Login != 3 || rows[1].Login != 2 || rows[2].Login != 1 {
		t.Fatalf("order=%d,%d,%d", rows[0].Login, rows[1].Login, rows[2].Login)
	}
}

func TestRosterService_PayoutFailureDefaultsTier(t *testing.T) {
	repo := &stubRepo{
		rosterRows: []models.RawRosterRow{rawRosterRow(1, "Funded", "10500")},
		payouts:    nil,
	}
	svc := newRosterService(repo)

	rows, err := svc.Roster(context.Background())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if rows[0].PayoutPct != 85.0 {
		t.Fatalf("payout_pct=%v want default 85", rows[0].PayoutPct)
	}
}

func TestRosterService_TraderRow(t *testing.T) {
	repo := &stubRepo{
		rosterRows: []models.RawRosterRow{rawRosterRow(42, "Funded", "10500")},
	}
	svc := newRosterService(repo)

	row, err := svc.TraderRow(context.Background(), 42)
	if err != nil || row == nil {
		t.Fatalf("row=%v err=%v", row, err)
	}
	if row.Login != 42 {
		t.Fatalf("login=%d", row.Login)
	}

	missing, err := svc.TraderRow(context.Background(), 7)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if missing != nil {
		t.Fatalf("unknown login must resolve to absent, got %+v", missing)
	}
}

func TestRosterService_DealsLimitClamped(t *testing.T) {
	repo := &stubRepo{deals: map[int64][]models.DealRecord{}}
	svc := newRosterService(repo)

	if _, err := svc.Deals(context.Background(), 1, 0); err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.dealsLimit != 50 {
		t.Fatalf("limit=%d want default 50", repo.dealsLimit)
	}

	if _, err := svc.Deals(context.Background(), 1, 9999); err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.dealsLimit != 500 {
		t.Fatalf("limit=%d want capped 500", repo.dealsLimit)
	}
}
