package models

import "time"

// TraderDeal is one raw fill joined with trader identity, as fed to the
// position reconstructor. Administrative/balance deals (order id 0) are
// filtered out by the query.
type TraderDeal struct {
	Login      int64     `gorm:"column:login"`
	PositionID int64     `gorm:"column:position_id"`
	DealID     int64     `gorm:"column:deal_id"`
	OrderID    int64     `gorm:"column:order_id"`
	Action     string    `gorm:"column:action"`
	Entry      string    `gorm:"column:entry"`
	Symbol     string    `gorm:"column:symbol"`
	Price      float64   `gorm:"column:price"`
	Volume     float64   `gorm:"column:volume"`
	Profit     float64   `gorm:"column:profit"`
	Commission float64   `gorm:"column:commission"`
	NetProfit  float64   `gorm:"column:net_profit"`
	Time       time.Time `gorm:"column:time"`
	TraderID   *string   `gorm:"column:trader_id"`
	Email      *string   `gorm:"column:email"`
	FirstName  *string   `gorm:"column:first_name"`
	LastName   *string   `gorm:"column:last_name"`
}

const (
	DealEntryOpen  = "OPEN"
	DealEntryClose = "CLOSE"
)

// DealRecord is a raw deal as listed on the trader drill-down view.
type DealRecord struct {
	Deal   int64     `gorm:"column:deal" json:"deal"`
	Login  int64     `gorm:"column:login" json:"login"`
	Time   time.Time `gorm:"column:time" json:"time"`
	Symbol string    `gorm:"column:symbol" json:"symbol"`
	Action uint8     `gorm:"column:action" json:"action"`
	Entry  uint8     `gorm:"column:entry" json:"entry"`
	Volume float64   `gorm:"column:volume" json:"volume"`
	Price  float64   `gorm:"column:price" json:"price"`
	Profit float64   `gorm:"column:profit" json:"profit"`
}

// DailyEquityPoint is one day of the equity curve; either value may be
// missing in the source snapshots.
type DailyEquityPoint struct {
	Date         time.Time `gorm:"column:date" json:"date"`
	Equity       *float64  `gorm:"column:equity" json:"equity"`
	DailyBalance *float64  `gorm:"column:daily_balance" json:"daily_balance"`
}
