package roster

import (
	"testing"

	"github.com/shopspring/decimal"

	"fundboard/internal/models"
)

func TestSummarize(t *testing.T) {
	rows := []models.RosterRow{
		{Phase: models.PhaseFunded, GainLossPct: 10, CurrentEquity: decimal.NewFromInt(1000), PotLiability: decimal.NewFromInt(85)},
		{Phase: models.PhaseFunded, GainLossPct: -5, CurrentEquity: decimal.NewFromInt(3000), PotLiability: decimal.Zero},
		{Phase: models.PhaseTwo, GainLossPct: 2, CurrentEquity: decimal.NewFromInt(2000)},
		{Phase: models.PhaseOneStep, GainLossPct: 0, CurrentEquity: decimal.Zero},
		{Phase: models.PhaseOne, GainLossPct: 1, CurrentEquity: decimal.NewFromInt(4000)},
	}
	stats := Summarize(rows, SummaryOptions{})

	if stats.Total != 5 || stats.Funded != 2 || stats.Phase2 != 1 || stats.OneStep != 1 || stats.Phase1 != 1 {
		t.Fatalf("counts=%+v", stats)
	}
	if !stats.TotalLiability.Equal(decimal.NewFromInt(85)) {
		t.Fatalf("total_liability=%s", stats.TotalLiability)
	}
	if !stats.TotalEquity.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("total_equity=%s", stats.TotalEquity)
	}
	// (10*1000 - 5*3000 + 2*2000 + 0 + 1*4000) / 10000 = 0.3
	if stats.WeightedAvgGainLoss != 0.3 {
		t.Fatalf("weighted_avg=%v", stats.WeightedAvgGainLoss)
	}
}

func TestSummarize_ZeroEquityYieldsZeroAverage(t *testing.T) {
	rows := []models.RosterRow{
		{Phase: models.PhaseOne, GainLossPct: 12, CurrentEquity: decimal.Zero},
	}
	stats := Summarize(rows, SummaryOptions{})
	if stats.WeightedAvgGainLoss != 0 {
		t.Fatalf("weighted_avg=%v want 0 on zero total equity", stats.WeightedAvgGainLoss)
	}
}

func TestSummarize_ExcludeHouseFromWeightedAvg(t *testing.T) {
	rows := []models.RosterRow{
		{Phase: models.PhaseHouseAccount, GainLossPct: 100, CurrentEquity: decimal.NewFromInt(9000)},
		{Phase: models.PhaseFunded, GainLossPct: 2, CurrentEquity: decimal.NewFromInt(1000)},
	}

	included := Summarize(rows, SummaryOptions{})
	// (100*9000 + 2*1000) / 10000 = 90.2
	if included.WeightedAvgGainLoss != 90.2 {
		t.Fatalf("included weighted_avg=%v", included.WeightedAvgGainLoss)
	}

	excluded := Summarize(rows, SummaryOptions{ExcludeHouseFromWeightedAvg: true})
	if excluded.WeightedAvgGainLoss != 2 {
		t.Fatalf("excluded weighted_avg=%v want 2", excluded.WeightedAvgGainLoss)
	}
	// Equity total still covers the house row.
	if !excluded.TotalEquity.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("total_equity=%s", excluded.TotalEquity)
	}
}
