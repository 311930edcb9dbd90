package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// KafkaNotifier publishes notifications to a Kafka topic. Delivery errors
// are logged and swallowed: the engine never sees them.
type KafkaNotifier struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, logger *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			BatchSize:    100,
		},
		logger: logger,
	}
}

func (n *KafkaNotifier) SendDelayNotification(ctx context.Context, leadTime int, productName string) {
	n.publish(ctx, delayMessage(leadTime, productName))
}

func (n *KafkaNotifier) SendOutOfStockNotification(ctx context.Context, productName string) {
	n.publish(ctx, outOfStockMessage(productName))
}

func (n *KafkaNotifier) SendExpirationNotification(ctx context.Context, productName string, expiryDate db.Date) {
	n.publish(ctx, expirationMessage(productName, expiryDate))
}

func (n *KafkaNotifier) publish(ctx context.Context, msg Message) {
	value, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("encoding notification", zap.Error(err))
		return
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.ID),
		Value: value,
	})
	if err != nil {
		n.logger.Error("publishing notification",
			zap.String("kind", string(msg.Kind)),
			zap.String("product", msg.ProductName),
			zap.Error(err))
		return
	}

	n.logger.Info("notification published",
		zap.String("kind", string(msg.Kind)),
		zap.String("product", msg.ProductName))
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
