package analytics

import "fmt"

// FormatHoldTime renders a hold duration in the most readable unit.
func FormatHoldTime(minutes float64) string {
	switch {
	case minutes < 1:
		return fmt.Sprintf("%d seconds", int(minutes*60))
	case minutes < 60:
		return fmt.Sprintf("%d minutes", int(minutes))
	case minutes < 1440:
		return fmt.Sprintf("%dh %dm", int(minutes/60), int(minutes)%60)
	default:
		return fmt.Sprintf("%dd %dh", int(minutes/1440), int(minutes/60)%24)
	}
}

// Insights turns an analytics result into short review notes for the
// manager view.
func Insights(r *Result) []string {
	if r == nil {
		return nil
	}
	insights := make([]string, 0, 6)

	switch {
	case r.TradeExpectancy > 50:
		insights = append(insights, "Excellent trade expectancy - strategy is highly scalable")
	case r.TradeExpectancy > 20:
		insights = append(insights, "Good trade expectancy - consider increasing position sizes")
	case r.TradeExpectancy > 0:
		insights = append(insights, "Positive expectancy - focus on consistency")
	default:
		insights = append(insights, "Negative expectancy - strategy needs fundamental changes")
	}

	switch {
	case r.TotalPnL > 0 && r.WinRate > 55:
		insights = append(insights, "Strong overall performance with good profitability")
	case r.TotalPnL > 0:
		insights = append(insights, "Profitable but consider improving win rate")
	default:
		insights = append(insights, "Performance needs improvement - focus on risk management")
	}

	if r.AvgWinnerHoldMinutes > r.AvgLoserHoldMinutes*1.5 {
		insights = append(insights, "Good discipline - winners held longer than losers")
	} else if r.AvgLoserHoldMinutes > r.AvgWinnerHoldMinutes*1.5 {
		insights = append(insights, "Consider cutting losses faster")
	}

	if len(r.SymbolBreakdown) > 0 {
		best := r.SymbolBreakdown[0]
		insights = append(insights, fmt.Sprintf("Best symbol: %s ($%.2f expectancy)", best.Symbol, best.Expectancy))

		negative := 0
		for _, s := range r.SymbolBreakdown {
			if s.Expectancy < 0 {
				negative++
			}
		}
		if negative > 0 {
			insights = append(insights, fmt.Sprintf("Warning: %d symbols have negative expectancy - consider eliminating", negative))
		}
	}

	return insights
}
