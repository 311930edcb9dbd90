// Package notify provides the outbound notification sinks: a Kafka
// publisher for real deployments and a log-only sink for local runs.
package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/buildtall-systems/stockroom/internal/db"
)

// Kind discriminates the notification payload.
type Kind string

const (
	KindDelay      Kind = "delay"
	KindOutOfStock Kind = "out_of_stock"
	KindExpiration Kind = "expiration"
)

// Message is the wire form of a notification.
type Message struct {
	ID           string    `json:"id"`
	Kind         Kind      `json:"kind"`
	ProductName  string    `json:"product_name"`
	LeadTimeDays int       `json:"lead_time_days,omitempty"`
	ExpiryDate   string    `json:"expiry_date,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

func delayMessage(leadTime int, productName string) Message {
	return Message{
		ID:           uuid.NewString(),
		Kind:         KindDelay,
		ProductName:  productName,
		LeadTimeDays: leadTime,
		SentAt:       time.Now().UTC(),
	}
}

func outOfStockMessage(productName string) Message {
	return Message{
		ID:          uuid.NewString(),
		Kind:        KindOutOfStock,
		ProductName: productName,
		SentAt:      time.Now().UTC(),
	}
}

func expirationMessage(productName string, expiryDate db.Date) Message {
	return Message{
		ID:          uuid.NewString(),
		Kind:        KindExpiration,
		ProductName: productName,
		ExpiryDate:  expiryDate.String(),
		SentAt:      time.Now().UTC(),
	}
}
