package roster

import (
	"math"

	"github.com/shopspring/decimal"

	"fundboard/internal/models"
)

// SummaryOptions tunes the roster reduction.
type SummaryOptions struct {
	// ExcludeHouseFromWeightedAvg removes House Account rows from both
	// sides of the equity-weighted average gain/loss. Counts and totals
	// always cover the full roster.
	ExcludeHouseFromWeightedAvg bool
}

// Summarize reduces a processed roster into the overview statistics.
// A roster with zero total equity yields a weighted average of 0.
func Summarize(rows []models.RosterRow, opts SummaryOptions) models.SummaryStats {
	stats := models.SummaryStats{
		Total:          len(rows),
		TotalLiability: decimal.Zero,
		TotalEquity:    decimal.Zero,
	}

	weightedSum := 0.0
	weightTotal := 0.0

	for _, row := range rows {
		switch row.Phase {
		case models.PhaseFunded:
			stats.Funded++
			stats.TotalLiability = stats.TotalLiability.Add(row.PotLiability)
		case models.PhaseTwo:
			stats.Phase2++
		case models.PhaseOneStep:
			stats.OneStep++
		case models.PhaseOne:
			stats.Phase1++
		}

		stats.TotalEquity = stats.TotalEquity.Add(row.CurrentEquity)

		if opts.ExcludeHouseFromWeightedAvg && row.Phase == models.PhaseHouseAccount {
			continue
		}
		equity := row.CurrentEquity.InexactFloat64()
		weightedSum += row.GainLossPct * equity
		weightTotal += equity
	}

	if weightTotal > 0 {
		stats.WeightedAvgGainLoss = round3(weightedSum / weightTotal)
	}

	return stats
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
