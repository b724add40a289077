package registry

import (
	"context"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"kalshi-trader/internal/models"
)

// Property: replaying any valid request with a client order ID returns the
// order created by the first attempt, field for field, and never grows the
// registry.
func TestProperty_ClientOrderIDReplayIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	symbols := []string{"AAPL", "TSLA", "NVDA", "MSFT", "SPY", "QQQ"}
	sides := []models.OrderSide{models.OrderSideBuy, models.OrderSideSell}
	tifs := []models.TimeInForce{models.TimeInForceDay, models.TimeInForceGTC}

	requestGen := gopter.CombineGens(
		gen.OneConstOf(symbols[0], symbols[1], symbols[2], symbols[3], symbols[4], symbols[5]),
		gen.OneConstOf(sides[0], sides[1]),
		gen.Float64Range(0.5, 5000),
		gen.OneConstOf(tifs[0], tifs[1]),
		gen.Identifier(),
	).Map(func(values []interface{}) models.OrderRequest {
		return models.OrderRequest{
			Symbol:        values[0].(string),
			Side:          values[1].(models.OrderSide),
			Quantity:      values[2].(float64),
			Type:          models.OrderTypeMarket,
			TimeInForce:   values[3].(models.TimeInForce),
			ClientOrderID: values[4].(string),
		}
	})

	properties.Property("Replay returns the original order and registry size is stable", prop.ForAll(
		func(req models.OrderRequest) bool {
			reg := New()
			ctx := context.Background()

			first, err := reg.PlaceOrder(ctx, req)
			if err != nil {
				return false
			}
			sizeAfterFirst := reg.Size()

			second, err := reg.PlaceOrder(ctx, req)
			if err != nil {
				return false
			}

			return second.ID == first.ID &&
				second.Symbol == first.Symbol &&
				second.Side == first.Side &&
				second.Quantity == first.Quantity &&
				second.Status == first.Status &&
				second.CreatedAt.Equal(first.CreatedAt) &&
				reg.Size() == sizeAfterFirst
		},
		requestGen,
	))

	properties.TestingRun(t)
}
