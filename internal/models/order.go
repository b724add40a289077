package models

import (
	"strings"
	"time"

	apperrors "kalshi-trader/internal/errors"
)

// Order represents a trading order owned by the order registry.
type Order struct {
	ID           string      `json:"id"`
	Symbol       string      `json:"symbol"`
	Side         OrderSide   `json:"side"`
	Quantity     float64     `json:"qty"`
	Type         OrderType   `json:"order_type"`
	LimitPrice   *float64    `json:"limit_price"`
	TimeInForce  TimeInForce `json:"tif"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	AvgFillPrice *float64    `json:"avg_fill_price"`
	FilledQty    float64     `json:"filled_qty"`
}

// RemainingQty returns the unfilled portion of the order.
func (o *Order) RemainingQty() float64 {
	return o.Quantity - o.FilledQty
}

// Clone returns a copy of the order safe to hand outside the registry.
func (o *Order) Clone() *Order {
	c := *o
	if o.LimitPrice != nil {
		p := *o.LimitPrice
		c.LimitPrice = &p
	}
	if o.AvgFillPrice != nil {
		p := *o.AvgFillPrice
		c.AvgFillPrice = &p
	}
	return &c
}

// OrderRequest represents a request to place an order.
type OrderRequest struct {
	Symbol        string      `json:"symbol"`
	Side          OrderSide   `json:"side"`
	Quantity      float64     `json:"qty"`
	Type          OrderType   `json:"order_type"`
	LimitPrice    *float64    `json:"limit_price"`
	TimeInForce   TimeInForce `json:"tif"`
	ClientOrderID string      `json:"client_order_id"`
}

// Normalize applies defaults matching the wire contract: MARKET type and
// DAY validity when omitted, upper-cased symbol.
func (r *OrderRequest) Normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	if r.Type == "" {
		r.Type = OrderTypeMarket
	}
	if r.TimeInForce == "" {
		r.TimeInForce = TimeInForceDay
	}
}

// Validate checks the boundary constraints on the request.
func (r *OrderRequest) Validate() error {
	if r.Symbol == "" {
		return apperrors.NewRequestError("symbol", "must not be empty")
	}
	if !r.Side.Valid() {
		return apperrors.NewRequestError("side", "must be BUY or SELL")
	}
	if !r.Type.Valid() {
		return apperrors.NewRequestError("order_type", "must be MARKET or LIMIT")
	}
	if !r.TimeInForce.Valid() {
		return apperrors.NewRequestError("tif", "must be DAY or GTC")
	}
	if r.Quantity <= 0 {
		return apperrors.NewRequestError("qty", "must be greater than zero")
	}
	if r.LimitPrice != nil && *r.LimitPrice <= 0 {
		return apperrors.NewRequestError("limit_price", "must be greater than zero")
	}
	return nil
}

// Fill represents an execution report for a previously placed order.
type Fill struct {
	OrderID   string    `json:"order_id"`
	Quantity  float64   `json:"qty"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}
