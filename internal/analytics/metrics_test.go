package analytics

import (
	"encoding/json"
	"testing"
)

func posWithPnL(symbol string, pnl float64, holdMinutes float64) Position {
	return Position{Symbol: symbol, ProfitLoss: pnl, HoldMinutes: holdMinutes}
}

func TestCompute_BasicMetrics(t *testing.T) {
	positions := []Position{
		posWithPnL("XAUUSD", 100, 60),
		posWithPnL("XAUUSD", -50, 10),
		posWithPnL("EURUSD", 30, 20),
	}
	r := Compute(positions)
	if r == nil {
		t.Fatalf("nil result")
	}
	if r.TotalTrades != 3 || r.WinningTrades != 2 || r.LosingTrades != 1 {
		t.Fatalf("counts=%d/%d/%d", r.TotalTrades, r.WinningTrades, r.LosingTrades)
	}
	if r.WinRate != 66.7 {
		t.Fatalf("win_rate=%v want 66.7", r.WinRate)
	}
	if r.TotalPnL != 80.0 {
		t.Fatalf("total_pnl=%v want 80", r.TotalPnL)
	}
	if r.ProfitFactor.Infinite || r.ProfitFactor.Value != 2.6 {
		t.Fatalf("profit_factor=%+v want 2.6", r.ProfitFactor)
	}
	if r.RiskReward.Infinite || r.RiskReward.Value != 1.3 {
		t.Fatalf("risk_reward=%+v want 1.3", r.RiskReward)
	}
	if r.AvgWin != 65.0 || r.AvgLoss != -50.0 {
		t.Fatalf("avg_win=%v avg_loss=%v", r.AvgWin, r.AvgLoss)
	}
	if r.LargestWin != 100.0 || r.LargestLoss != -50.0 {
		t.Fatalf("largest_win=%v largest_loss=%v", r.LargestWin, r.LargestLoss)
	}
	// 2/3*65 - 1/3*50 = 26.67 to two decimals.
	if r.TradeExpectancy != 26.67 {
		t.Fatalf("expectancy=%v want 26.67", r.TradeExpectancy)
	}
	if r.AvgHoldMinutes != 30.0 || r.AvgWinnerHoldMinutes != 40.0 || r.AvgLoserHoldMinutes != 10.0 {
		t.Fatalf("hold stats=%v/%v/%v", r.AvgHoldMinutes, r.AvgWinnerHoldMinutes, r.AvgLoserHoldMinutes)
	}
}

func TestCompute_NoPositions(t *testing.T) {
	if r := Compute(nil); r != nil {
		t.Fatalf("want nil result for zero positions, got %+v", r)
	}
}

func TestCompute_InfiniteSentinels(t *testing.T) {
	r := Compute([]Position{posWithPnL("XAUUSD", 100, 1), posWithPnL("XAUUSD", 50, 1)})
	if !r.ProfitFactor.Infinite {
		t.Fatalf("profit_factor=%+v want infinite", r.ProfitFactor)
	}
	if !r.RiskReward.Infinite {
		t.Fatalf("risk_reward=%+v want infinite", r.RiskReward)
	}

	raw, err := json.Marshal(r.ProfitFactor)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"Infinite"` {
		t.Fatalf("marshaled=%s want \"Infinite\"", raw)
	}
}

func TestCompute_AllBreakeven(t *testing.T) {
	r := Compute([]Position{posWithPnL("XAUUSD", 0, 1)})
	if r == nil {
		t.Fatalf("breakeven trader must still get analytics")
	}
	if r.ProfitFactor.Infinite || r.ProfitFactor.Value != 0 {
		t.Fatalf("profit_factor=%+v want plain zero", r.ProfitFactor)
	}
	if r.RiskReward.Infinite || r.RiskReward.Value != 0 {
		t.Fatalf("risk_reward=%+v want plain zero", r.RiskReward)
	}
	if r.WinRate != 0 {
		t.Fatalf("win_rate=%v", r.WinRate)
	}
}

func TestSymbolBreakdown_SortedByExpectancyDescending(t *testing.T) {
	positions := []Position{
		posWithPnL("EURUSD", -20, 1),
		posWithPnL("EURUSD", -10, 1),
		posWithPnL("XAUUSD", 100, 1),
		posWithPnL("XAUUSD", 80, 1),
		posWithPnL("GBPUSD", 5, 1),
		posWithPnL("GBPUSD", -5, 1),
	}
	r := Compute(positions)
	if len(r.SymbolBreakdown) != 3 {
		t.Fatalf("symbols=%d", len(r.SymbolBreakdown))
	}
	if r.SymbolBreakdown[0].Symbol != "XAUUSD" || r.SymbolBreakdown[2].Symbol != "EURUSD" {
		t.Fatalf("breakdown order=%v", r.SymbolBreakdown)
	}
	for i := 1; i < len(r.SymbolBreakdown); i++ {
		if r.SymbolBreakdown[i].Expectancy > r.SymbolBreakdown[i-1].Expectancy {
			t.Fatalf("breakdown not sorted: %v", r.SymbolBreakdown)
		}
	}
}

func TestFormatHoldTime(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0.5, "30 seconds"},
		{45, "45 minutes"},
		{90, "1h 30m"},
		{1500, "1d 1h"},
	}
	for _, tt := range tests {
		if got := FormatHoldTime(tt.minutes); got != tt.want {
			t.Fatalf("FormatHoldTime(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
