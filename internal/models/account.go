package models

import "time"

// PositionSide represents the direction of an open position.
type PositionSide string

const (
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// AccountBalance represents an account balance snapshot.
type AccountBalance struct {
	Currency    string    `json:"currency"`
	Cash        float64   `json:"cash"`
	Equity      float64   `json:"equity"`
	BuyingPower float64   `json:"buying_power"`
	Timestamp   time.Time `json:"timestamp"`
}

// Position represents an open trading position.
type Position struct {
	Symbol   string       `json:"symbol"`
	Quantity float64      `json:"qty"`
	AvgPrice float64      `json:"avg_price"`
	Side     PositionSide `json:"side"`
}

// TradeStats represents aggregate trade statistics for a symbol over a window.
type TradeStats struct {
	Symbol      string    `json:"symbol"`
	Window      string    `json:"window"`
	Trades      int       `json:"trades"`
	WinRate     float64   `json:"win_rate"`
	PnL         float64   `json:"pnl"`
	AvgReturn   float64   `json:"avg_return"`
	Sharpe      *float64  `json:"sharpe"`
	LastUpdated time.Time `json:"last_updated"`
}
