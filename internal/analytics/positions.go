package analytics

import (
	"sort"
	"time"

	"fundboard/internal/models"
)

// Position is one completed trade reconstructed from raw fills sharing a
// position id. Partial fills on either side are folded into
// volume-weighted entry and exit prices.
type Position struct {
	PositionID  int64     `json:"position_id"`
	Symbol      string    `json:"symbol"`
	Action      string    `json:"action"`
	EntryTime   time.Time `json:"entry_time"`
	ExitTime    time.Time `json:"exit_time"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price"`
	Volume      float64   `json:"volume"`
	ProfitLoss  float64   `json:"profit_loss"`
	HoldMinutes float64   `json:"hold_time_minutes"`
}

// ReconstructPositions pairs opening and closing fills into completed
// positions. Position ids seen on only one side are open or otherwise
// incomplete and are not reportable as closed trades, so they are
// dropped. The reduction is order independent: only the earliest open
// and latest close timestamps matter.
func ReconstructPositions(deals []models.TraderDeal) []Position {
	opens := make(map[int64][]models.TraderDeal)
	closes := make(map[int64][]models.TraderDeal)
	for _, deal := range deals {
		switch deal.Entry {
		case models.DealEntryOpen:
			opens[deal.PositionID] = append(opens[deal.PositionID], deal)
		case models.DealEntryClose:
			closes[deal.PositionID] = append(closes[deal.PositionID], deal)
		}
	}

	positions := make([]Position, 0, len(opens))
	for positionID, posOpens := range opens {
		posCloses, completed := closes[positionID]
		if !completed {
			continue
		}

		var openVolume, entryWeighted float64
		entryTime := posOpens[0].Time
		netProfit := 0.0
		for _, deal := range posOpens {
			openVolume += deal.Volume
			entryWeighted += deal.Price * deal.Volume
			netProfit += deal.NetProfit
			if deal.Time.Before(entryTime) {
				entryTime = deal.Time
			}
		}

		var closeVolume, exitWeighted float64
		exitTime := posCloses[0].Time
		for _, deal := range posCloses {
			closeVolume += deal.Volume
			exitWeighted += deal.Price * deal.Volume
			netProfit += deal.NetProfit
			if deal.Time.After(exitTime) {
				exitTime = deal.Time
			}
		}

		entryPrice := 0.0
		if openVolume > 0 {
			entryPrice = entryWeighted / openVolume
		}
		exitPrice := 0.0
		if closeVolume > 0 {
			exitPrice = exitWeighted / closeVolume
		}

		holdMinutes := 0.0
		if exitTime.After(entryTime) {
			holdMinutes = exitTime.Sub(entryTime).Minutes()
		}

		positions = append(positions, Position{
			PositionID:  positionID,
			Symbol:      posOpens[0].Symbol,
			Action:      posOpens[0].Action,
			EntryTime:   entryTime,
			ExitTime:    exitTime,
			EntryPrice:  entryPrice,
			ExitPrice:   exitPrice,
			Volume:      openVolume,
			ProfitLoss:  netProfit,
			HoldMinutes: holdMinutes,
		})
	}

	sort.Slice(positions, func(i, j int) bool {
		if !positions[i].EntryTime.Equal(positions[j].EntryTime) {
			return positions[i].EntryTime.Before(positions[j].EntryTime)
		}
		return positions[i].PositionID < positions[j].PositionID
	})

	return positions
}
