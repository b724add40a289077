// Package registry owns the in-memory collection of orders and enforces the
// order lifecycle: admission, idempotency, identity assignment, and status
// transitions.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kalshi-trader/internal/broker"
	apperrors "kalshi-trader/internal/errors"
	"kalshi-trader/internal/models"
)

// Registry is the exclusive owner of the order-ID-to-order mapping.
//
// A single mutex guards the mapping so that the idempotency check and the
// insert form one atomic unit: two concurrent requests bearing the same
// client order ID cannot both create an order.
type Registry struct {
	mu     sync.RWMutex
	orders map[string]*models.Order

	gateway broker.Gateway
	logger  zerolog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithGateway attaches a broker gateway. Placed orders are handed to the
// gateway after local admission; a rejected submission marks the order
// REJECTED.
func WithGateway(gw broker.Gateway) Option {
	return func(r *Registry) {
		r.gateway = gw
	}
}

// WithLogger attaches a logger for order lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty order registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		orders: make(map[string]*models.Order),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlaceOrder validates and admits an order request.
//
// If the request carries a client order ID that already identifies an order,
// that order is returned unchanged and nothing is created. Otherwise a new
// order is admitted with status NEW; the client order ID becomes the order's
// identity when supplied, and a random UUID is generated when it is not.
func (r *Registry) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Type == models.OrderTypeLimit && req.LimitPrice == nil {
		return nil, apperrors.NewRequestError("limit_price", "required for LIMIT orders")
	}

	order, created := r.admit(req)
	if !created {
		r.logger.Debug().Str("order_id", order.ID).Msg("Idempotent replay, returning existing order")
		return order, nil
	}

	r.logger.Info().
		Str("order_id", order.ID).
		Str("symbol", order.Symbol).
		Str("side", string(order.Side)).
		Float64("qty", order.Quantity).
		Msg("Order placed")

	if r.gateway != nil {
		if err := r.gateway.SubmitOrder(ctx, order.Clone()); err != nil {
			r.logger.Warn().Err(err).Str("order_id", order.ID).Msg("Broker rejected order")
			if serr := r.UpdateStatus(ctx, order.ID, models.OrderStatusRejected); serr != nil {
				return nil, serr
			}
			return r.Get(ctx, order.ID)
		}
	}

	return order, nil
}

// admit performs the idempotency check and insert as one atomic unit.
// It returns the resulting order and whether a new order was created.
func (r *Registry) admit(req models.OrderRequest) (*models.Order, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ClientOrderID != "" {
		if existing, ok := r.orders[req.ClientOrderID]; ok {
			return existing.Clone(), false
		}
	}

	id := req.ClientOrderID
	if id == "" {
		id = uuid.NewString()
	}

	order := &models.Order{
		ID:          id,
		Symbol:      req.Symbol,
		Side:        req.Side,
		Quantity:    req.Quantity,
		Type:        req.Type,
		LimitPrice:  req.LimitPrice,
		TimeInForce: req.TimeInForce,
		Status:      models.OrderStatusNew,
		CreatedAt:   time.Now().UTC(),
	}
	r.orders[order.ID] = order

	return order.Clone(), true
}

// Get returns the order with the given ID.
func (r *Registry) Get(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %q: %w", id, apperrors.ErrOrderNotFound)
	}
	return order.Clone(), nil
}

// OpenOrders returns every order whose status is NEW or PARTIALLY_FILLED,
// ordered by creation time then ID so repeated calls are stable.
func (r *Registry) OpenOrders(ctx context.Context) []*models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	open := make([]*models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if o.Status.IsOpen() {
			open = append(open, o.Clone())
		}
	}
	sort.Slice(open, func(i, j int) bool {
		if !open[i].CreatedAt.Equal(open[j].CreatedAt) {
			return open[i].CreatedAt.Before(open[j].CreatedAt)
		}
		return open[i].ID < open[j].ID
	})
	return open
}

// Size returns the number of orders in the registry.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// UpdateStatus moves an order to the given status, enforcing monotonic
// transitions: terminal orders are frozen and no order returns to NEW.
func (r *Registry) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %q: %w", id, apperrors.ErrOrderNotFound)
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("order %q: %s -> %s: %w", id, order.Status, status, apperrors.ErrInvalidStatus)
	}
	order.Status = status
	return nil
}

// RecordFill applies a fill to an order: filled quantity and average fill
// price are updated and the status moves to PARTIALLY_FILLED or FILLED.
// Fills may never exceed the requested quantity.
func (r *Registry) RecordFill(ctx context.Context, fill models.Fill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[fill.OrderID]
	if !ok {
		return fmt.Errorf("order %q: %w", fill.OrderID, apperrors.ErrOrderNotFound)
	}
	if fill.Quantity <= 0 {
		return apperrors.NewRequestError("qty", "fill quantity must be greater than zero")
	}
	if order.FilledQty+fill.Quantity > order.Quantity {
		return fmt.Errorf("order %q: fill of %v exceeds remaining %v: %w",
			fill.OrderID, fill.Quantity, order.RemainingQty(), apperrors.ErrInvalidStatus)
	}

	next := models.OrderStatusPartiallyFilled
	if order.FilledQty+fill.Quantity == order.Quantity {
		next = models.OrderStatusFilled
	}
	if !order.Status.CanTransitionTo(next) {
		return fmt.Errorf("order %q: %s -> %s: %w", fill.OrderID, order.Status, next, apperrors.ErrInvalidStatus)
	}

	// Weighted average entry across fills.
	total := order.FilledQty + fill.Quantity
	avg := fill.Price
	if order.AvgFillPrice != nil {
		avg = (*order.AvgFillPrice*order.FilledQty + fill.Price*fill.Quantity) / total
	}
	order.AvgFillPrice = &avg
	order.FilledQty = total
	order.Status = next

	r.logger.Info().
		Str("order_id", order.ID).
		Float64("filled_qty", order.FilledQty).
		Str("status", string(order.Status)).
		Msg("Fill recorded")

	return nil
}

// ConsumeFills applies fills from the gateway's notification channel until
// the context is cancelled or the channel closes. Intended to run in its own
// goroutine for the lifetime of the serving process.
func (r *Registry) ConsumeFills(ctx context.Context) {
	if r.gateway == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case fill, ok := <-r.gateway.Fills():
			if !ok {
				return
			}
			if err := r.RecordFill(ctx, fill); err != nil {
				r.logger.Warn().Err(err).Str("order_id", fill.OrderID).Msg("Dropping unappliable fill")
			}
		}
	}
}
