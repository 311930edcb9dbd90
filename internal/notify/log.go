package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// LogNotifier writes notifications to the service log. Used when no Kafka
// brokers are configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendDelayNotification(ctx context.Context, leadTime int, productName string) {
	n.logger.Info("delay notification",
		zap.String("product", productName),
		zap.Int("lead_time_days", leadTime))
}

func (n *LogNotifier) SendOutOfStockNotification(ctx context.Context, productName string) {
	n.logger.Info("out-of-stock notification",
		zap.String("product", productName))
}

func (n *LogNotifier) SendExpirationNotification(ctx context.Context, productName string, expiryDate db.Date) {
	n.logger.Info("expiration notification",
		zap.String("product", productName),
		zap.String("expiry_date", expiryDate.String()))
}
