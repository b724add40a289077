package broker

import (
	"context"
	"testing"
	"time"

	"kalshi-trader/internal/models"
)

func TestStubGatewayBalance(t *testing.T) {
	gw := NewStubGateway(StubConfig{})

	balance, err := gw.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.Currency != "USD" {
		t.Errorf("currency %q, want USD", balance.Currency)
	}
	if balance.Cash != 100001.0 {
		t.Errorf("cash %v, want 100001", balance.Cash)
	}
	if balance.Timestamp.IsZero() {
		t.Error("balance timestamp not refreshed")
	}
}

func TestStubGatewayPositions(t *testing.T) {
	gw := NewStubGateway(StubConfig{})

	positions, err := gw.GetPositions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if positions[0].Symbol != "AAPL" || positions[0].Side != models.PositionLong {
		t.Errorf("unexpected first position: %+v", positions[0])
	}
	if positions[1].Symbol != "TSLA" || positions[1].Side != models.PositionShort {
		t.Errorf("unexpected second position: %+v", positions[1])
	}

	// Callers get a copy, not the gateway's slice.
	positions[0].Symbol = "HACK"
	again, _ := gw.GetPositions(context.Background())
	if again[0].Symbol != "AAPL" {
		t.Error("mutating returned positions reached the gateway")
	}
}

func TestStubGatewaySubmitWithoutSimulation(t *testing.T) {
	gw := NewStubGateway(StubConfig{})

	order := &models.Order{ID: "o1", Symbol: "AAPL", Type: models.OrderTypeMarket, Quantity: 3}
	if err := gw.SubmitOrder(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case fill := <-gw.Fills():
		t.Errorf("unexpected fill %+v with simulation disabled", fill)
	default:
	}
}

func TestStubGatewaySimulatedFills(t *testing.T) {
	gw := NewStubGateway(StubConfig{SimulateFills: true})

	order := &models.Order{ID: "o2", Symbol: "AAPL", Type: models.OrderTypeMarket, Quantity: 3}
	if err := gw.SubmitOrder(context.Background(), order); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case fill := <-gw.Fills():
		if fill.OrderID != "o2" {
			t.Errorf("fill for %q, want o2", fill.OrderID)
		}
		if fill.Quantity != 3 {
			t.Errorf("fill qty %v, want 3", fill.Quantity)
		}
		if fill.Price != 190.0 {
			t.Errorf("fill price %v, want reference price 190", fill.Price)
		}
	case <-time.After(time.Second):
		t.Fatal("no fill emitted for market order")
	}

	// Limit orders rest; no simulated fill.
	price := 10.0
	resting := &models.Order{ID: "o3", Symbol: "AAPL", Type: models.OrderTypeLimit, Quantity: 1, LimitPrice: &price}
	if err := gw.SubmitOrder(context.Background(), resting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case fill := <-gw.Fills():
		t.Errorf("unexpected fill %+v for limit order", fill)
	default:
	}
}
