// Package broker provides broker integration interfaces and implementations.
package broker

import (
	"context"

	"kalshi-trader/internal/models"
)

// Gateway defines the interface for broker operations the order registry
// depends on. A production implementation would talk to a real broker API;
// this repository ships only the in-memory stub.
type Gateway interface {
	// SubmitOrder hands a locally admitted order to the broker.
	// A non-nil error means the submission was rejected.
	SubmitOrder(ctx context.Context, order *models.Order) error

	// GetPositions returns the currently open positions.
	GetPositions(ctx context.Context) ([]models.Position, error)

	// GetBalance returns the account balance snapshot.
	GetBalance(ctx context.Context) (*models.AccountBalance, error)

	// Fills returns the channel on which asynchronous fill notifications
	// are delivered.
	Fills() <-chan models.Fill
}
