package models

import (
	"errors"
	"testing"

	apperrors "kalshi-trader/internal/errors"
)

func TestStatusTransitions(t *testing.T) {
	all := []OrderStatus{
		OrderStatusNew,
		OrderStatusPartiallyFilled,
		OrderStatusFilled,
		OrderStatusCanceled,
		OrderStatusRejected,
	}

	// Terminal states admit nothing.
	for _, terminal := range []OrderStatus{OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected} {
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Errorf("%s -> %s allowed from a terminal state", terminal, next)
			}
		}
	}

	// Nothing returns to NEW.
	for _, from := range all {
		if from.CanTransitionTo(OrderStatusNew) {
			t.Errorf("%s -> NEW allowed", from)
		}
	}

	if !OrderStatusNew.CanTransitionTo(OrderStatusPartiallyFilled) {
		t.Error("NEW -> PARTIALLY_FILLED refused")
	}
	if !OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusPartiallyFilled) {
		t.Error("PARTIALLY_FILLED -> PARTIALLY_FILLED refused")
	}
	if !OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusFilled) {
		t.Error("PARTIALLY_FILLED -> FILLED refused")
	}
	if OrderStatusPartiallyFilled.CanTransitionTo(OrderStatusRejected) {
		t.Error("PARTIALLY_FILLED -> REJECTED allowed")
	}
}

func TestStatusPredicates(t *testing.T) {
	if !OrderStatusNew.IsOpen() || !OrderStatusPartiallyFilled.IsOpen() {
		t.Error("working statuses not reported open")
	}
	for _, s := range []OrderStatus{OrderStatusFilled, OrderStatusCanceled, OrderStatusRejected} {
		if s.IsOpen() {
			t.Errorf("%s reported open", s)
		}
		if !s.IsTerminal() {
			t.Errorf("%s not reported terminal", s)
		}
	}
}

func TestOrderRequestNormalize(t *testing.T) {
	req := OrderRequest{Symbol: " msft ", Side: OrderSideBuy, Quantity: 1}
	req.Normalize()

	if req.Symbol != "MSFT" {
		t.Errorf("symbol %q, want MSFT", req.Symbol)
	}
	if req.Type != OrderTypeMarket {
		t.Errorf("type %q, want MARKET default", req.Type)
	}
	if req.TimeInForce != TimeInForceDay {
		t.Errorf("tif %q, want DAY default", req.TimeInForce)
	}
}

func TestOrderRequestValidate(t *testing.T) {
	price := 150.0
	valid := OrderRequest{
		Symbol:      "AAPL",
		Side:        OrderSideSell,
		Quantity:    2,
		Type:        OrderTypeLimit,
		LimitPrice:  &price,
		TimeInForce: TimeInForceGTC,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*OrderRequest)
	}{
		{"empty symbol", func(r *OrderRequest) { r.Symbol = "" }},
		{"bad side", func(r *OrderRequest) { r.Side = "SHORT" }},
		{"bad type", func(r *OrderRequest) { r.Type = "STOP" }},
		{"bad tif", func(r *OrderRequest) { r.TimeInForce = "IOC" }},
		{"zero qty", func(r *OrderRequest) { r.Quantity = 0 }},
		{"negative qty", func(r *OrderRequest) { r.Quantity = -3 }},
		{"zero limit price", func(r *OrderRequest) { p := 0.0; r.LimitPrice = &p }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); !errors.Is(err, apperrors.ErrInvalidRequest) {
				t.Errorf("want invalid request, got %v", err)
			}
		})
	}
}

func TestOrderCloneIsDeep(t *testing.T) {
	price := 99.0
	order := &Order{ID: "x", LimitPrice: &price}

	clone := order.Clone()
	*clone.LimitPrice = 50.0

	if *order.LimitPrice != 99.0 {
		t.Error("mutating a clone reached the original")
	}
}
