package broker

import (
	"context"
	"sync"
	"time"

	"kalshi-trader/internal/models"
)

// StubGateway implements the Gateway interface against in-memory canned
// state. It stands in for a real broker connection: balances and positions
// are fixed snapshots, and every submission is acknowledged.
type StubGateway struct {
	balance   models.AccountBalance
	positions []models.Position

	// Reference prices used when simulating fills.
	prices map[string]float64

	simulateFills bool
	fills         chan models.Fill

	mu sync.RWMutex
}

// StubConfig holds configuration for the stub gateway.
type StubConfig struct {
	Currency      string
	InitialCash   float64
	SimulateFills bool
	// FillBuffer is the fills channel capacity. Zero means 16.
	FillBuffer int
}

// NewStubGateway creates a stub gateway seeded with the default demo
// balance and positions.
func NewStubGateway(cfg StubConfig) *StubGateway {
	currency := cfg.Currency
	if currency == "" {
		currency = "USD"
	}
	cash := cfg.InitialCash
	if cash == 0 {
		cash = 100001.0
	}
	buffer := cfg.FillBuffer
	if buffer <= 0 {
		buffer = 16
	}

	return &StubGateway{
		balance: models.AccountBalance{
			Currency:    currency,
			Cash:        cash,
			Equity:      100000.0,
			BuyingPower: 200000.0,
		},
		positions: []models.Position{
			{Symbol: "AAPL", Quantity: 50, AvgPrice: 190.0, Side: models.PositionLong},
			{Symbol: "TSLA", Quantity: 10, AvgPrice: 240.0, Side: models.PositionShort},
		},
		prices: map[string]float64{
			"AAPL": 190.0,
			"TSLA": 240.0,
		},
		simulateFills: cfg.SimulateFills,
		fills:         make(chan models.Fill, buffer),
	}
}

// SubmitOrder acknowledges the order. With fill simulation enabled, market
// orders produce a full fill on the fills channel at the cached reference
// price (falling back to the limit price, then to a nominal 100).
func (g *StubGateway) SubmitOrder(ctx context.Context, order *models.Order) error {
	if !g.simulateFills || order.Type != models.OrderTypeMarket {
		return nil
	}

	g.mu.RLock()
	price, ok := g.prices[order.Symbol]
	g.mu.RUnlock()
	if !ok {
		if order.LimitPrice != nil {
			price = *order.LimitPrice
		} else {
			price = 100.0
		}
	}

	fill := models.Fill{
		OrderID:   order.ID,
		Quantity:  order.Quantity,
		Price:     price,
		Timestamp: time.Now().UTC(),
	}

	select {
	case g.fills <- fill:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// GetPositions returns the canned open positions.
func (g *StubGateway) GetPositions(ctx context.Context) ([]models.Position, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	positions := make([]models.Position, len(g.positions))
	copy(positions, g.positions)
	return positions, nil
}

// GetBalance returns the canned balance with a fresh timestamp.
func (g *StubGateway) GetBalance(ctx context.Context) (*models.AccountBalance, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	balance := g.balance
	balance.Timestamp = time.Now().UTC()
	return &balance, nil
}

// Fills returns the fill notification channel.
func (g *StubGateway) Fills() <-chan models.Fill {
	return g.fills
}

// UpdatePrice updates the cached reference price for a symbol.
func (g *StubGateway) UpdatePrice(symbol string, price float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[symbol] = price
}

// Ensure StubGateway implements Gateway interface
var _ Gateway = (*StubGateway)(nil)
