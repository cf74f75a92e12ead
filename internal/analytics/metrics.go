package analytics

import (
	"encoding/json"
	"math"
	"sort"
)

// Ratio is a quotient whose denominator may legitimately be zero. The
// infinite case is a distinct sentinel, never a float overflow, and is
// rendered as the string "Infinite".
type Ratio struct {
	Value    float64
	Infinite bool
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.Infinite {
		return json.Marshal("Infinite")
	}
	return json.Marshal(round2(r.Value))
}

// ratioOf builds num/den with the zero-denominator convention: infinite
// when the numerator is positive, zero otherwise.
func ratioOf(num, den float64) Ratio {
	if den == 0 {
		return Ratio{Infinite: num > 0}
	}
	return Ratio{Value: num / den}
}

// TraderInfo identifies whose trades were analyzed.
type TraderInfo struct {
	Login     int64  `json:"login"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SymbolStats is the per-symbol slice of the breakdown table.
type SymbolStats struct {
	Symbol      string  `json:"symbol"`
	TotalTrades int     `json:"total_trades"`
	WinRate     float64 `json:"win_rate"`
	TotalPnL    float64 `json:"total_pnl"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
	Expectancy  float64 `json:"expectancy"`
}

// Result is the full analytics summary for one trader. It has no
// identity of its own and is recomputed on every request.
type Result struct {
	TraderInfo     TraderInfo `json:"trader_info"`
	TotalPositions int        `json:"total_positions"`

	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`

	TotalPnL    float64 `json:"total_pnl"`
	AvgPnL      float64 `json:"avg_pnl"`
	AvgWin      float64 `json:"avg_win"`
	AvgLoss     float64 `json:"avg_loss"`
	LargestWin  float64 `json:"largest_win"`
	LargestLoss float64 `json:"largest_loss"`

	ProfitFactor    Ratio   `json:"profit_factor"`
	RiskReward      Ratio   `json:"risk_reward"`
	TradeExpectancy float64 `json:"trade_expectancy"`

	AvgHoldMinutes       float64 `json:"avg_hold_minutes"`
	AvgWinnerHoldMinutes float64 `json:"avg_winner_hold_minutes"`
	AvgLoserHoldMinutes  float64 `json:"avg_loser_hold_minutes"`
	AvgHold              string  `json:"avg_hold_formatted"`
	AvgWinnerHold        string  `json:"avg_winner_hold_formatted"`
	AvgLoserHold         string  `json:"avg_loser_hold_formatted"`

	SymbolBreakdown []SymbolStats `json:"symbol_breakdown"`
	Positions       []Position    `json:"positions"`
}

// Compute derives the analytics summary from a trader's completed
// positions. A trader with zero positions has no analytics: nil result,
// distinct from a trader with positions and zero P&L.
func Compute(positions []Position) *Result {
	if len(positions) == 0 {
		return nil
	}

	total := len(positions)
	var wins, losses int
	var grossProfit, grossLossAbs, totalPnL float64
	largestWin := positions[0].ProfitLoss
	largestLoss := positions[0].ProfitLoss
	var holdSum, winnerHoldSum, loserHoldSum float64

	for _, pos := range positions {
		totalPnL += pos.ProfitLoss
		holdSum += pos.HoldMinutes
		if pos.ProfitLoss > largestWin {
			largestWin = pos.ProfitLoss
		}
		if pos.ProfitLoss < largestLoss {
			largestLoss = pos.ProfitLoss
		}
		if pos.ProfitLoss > 0 {
			wins++
			grossProfit += pos.ProfitLoss
			winnerHoldSum += pos.HoldMinutes
		}
		if pos.ProfitLoss < 0 {
			losses++
			grossLossAbs += -pos.ProfitLoss
			loserHoldSum += pos.HoldMinutes
		}
	}

	winRate := float64(wins) / float64(total) * 100
	lossRate := float64(losses) / float64(total) * 100

	avgWin := 0.0
	avgWinnerHold := 0.0
	if wins > 0 {
		avgWin = grossProfit / float64(wins)
		avgWinnerHold = winnerHoldSum / float64(wins)
	}
	avgLoss := 0.0
	avgLoserHold := 0.0
	if losses > 0 {
		avgLoss = -grossLossAbs / float64(losses)
		avgLoserHold = loserHoldSum / float64(losses)
	}

	riskReward := Ratio{}
	if avgLoss != 0 {
		riskReward = Ratio{Value: math.Abs(avgWin / avgLoss)}
	} else if avgWin > 0 {
		riskReward = Ratio{Infinite: true}
	}

	expectancy := winRate/100*avgWin - lossRate/100*math.Abs(avgLoss)

	return &Result{
		TotalPositions:       total,
		TotalTrades:          total,
		WinningTrades:        wins,
		LosingTrades:         losses,
		WinRate:              round1(winRate),
		TotalPnL:             round2(totalPnL),
		AvgPnL:               round2(totalPnL / float64(total)),
		AvgWin:               round2(avgWin),
		AvgLoss:              round2(avgLoss),
		LargestWin:           round2(largestWin),
		LargestLoss:          round2(largestLoss),
		ProfitFactor:         ratioOf(grossProfit, grossLossAbs),
		RiskReward:           riskReward,
		TradeExpectancy:      round2(expectancy),
		AvgHoldMinutes:       round1(holdSum / float64(total)),
		AvgWinnerHoldMinutes: round1(avgWinnerHold),
		AvgLoserHoldMinutes:  round1(avgLoserHold),
		AvgHold:              FormatHoldTime(holdSum / float64(total)),
		AvgWinnerHold:        FormatHoldTime(avgWinnerHold),
		AvgLoserHold:         FormatHoldTime(avgLoserHold),
		SymbolBreakdown:      symbolBreakdown(positions),
		Positions:            positions,
	}
}

func symbolBreakdown(positions []Position) []SymbolStats {
	bySymbol := make(map[string][]Position)
	symbols := make([]string, 0)
	for _, pos := range positions {
		if _, seen := bySymbol[pos.Symbol]; !seen {
			symbols = append(symbols, pos.Symbol)
		}
		bySymbol[pos.Symbol] = append(bySymbol[pos.Symbol], pos)
	}
	sort.Strings(symbols)

	stats := make([]SymbolStats, 0, len(symbols))
	for _, symbol := range symbols {
		group := bySymbol[symbol]
		var wins, losses int
		var grossProfit, grossLossAbs, pnl float64
		for _, pos := range group {
			pnl += pos.ProfitLoss
			if pos.ProfitLoss > 0 {
				wins++
				grossProfit += pos.ProfitLoss
			}
			if pos.ProfitLoss < 0 {
				losses++
				grossLossAbs += -pos.ProfitLoss
			}
		}
		winRate := float64(wins) / float64(len(group)) * 100
		avgWin := 0.0
		if wins > 0 {
			avgWin = grossProfit / float64(wins)
		}
		avgLoss := 0.0
		if losses > 0 {
			avgLoss = -grossLossAbs / float64(losses)
		}
		// Break-even trades weigh on the loss side here, mirroring the
		// (100 - win rate) convention of the per-symbol table.
		expectancy := winRate/100*avgWin - (100-winRate)/100*math.Abs(avgLoss)

		stats = append(stats, SymbolStats{
			Symbol:      symbol,
			TotalTrades: len(group),
			WinRate:     round1(winRate),
			TotalPnL:    round2(pnl),
			AvgWin:      round2(avgWin),
			AvgLoss:     round2(avgLoss),
			Expectancy:  round2(expectancy),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Expectancy > stats[j].Expectancy
	})
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
