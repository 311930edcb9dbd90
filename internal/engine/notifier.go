package engine

import (
	"context"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// Notifier is the sink for outbound customer notifications. All three
// operations are fire-and-forget: delivery failures are handled inside the
// implementation and never surface to the engine.
type Notifier interface {
	SendDelayNotification(ctx context.Context, leadTime int, productName string)
	SendOutOfStockNotification(ctx context.Context, productName string)
	SendExpirationNotification(ctx context.Context, productName string, expiryDate db.Date)
}
