// Package events publishes domain events that other services subscribe to,
// grounded on the teacher's NATS RPC client (pkg/broker/nats) but reshaped
// from request/reply into fire-and-forget publish, since a finalized
// payment has no caller waiting on a response.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"vpos-orchestrator/internal/domain/transaction"
)

const (
	subjectFinalized = "payment.finalized"

	reconnectWait = 5 * time.Second
	maxReconnects = 10
	connectTimeout = 5 * time.Second
)

// NatsPublisher publishes a finalizedEvent to subjectFinalized whenever a
// transaction reaches a terminal state. It is a best-effort side channel:
// callers log publish failures rather than fail the payment over them.
type NatsPublisher struct {
	conn *nats.Conn
}

// NewNatsPublisher dials the given NATS URL. Connection options mirror the
// teacher's RPC client defaults.
func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url,
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.Timeout(connectTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("events: connecting to nats: %w", err)
	}
	return &NatsPublisher{conn: conn}, nil
}

type finalizedEvent struct {
	TransactionID string `json:"transactionId"`
	TerminalID    string `json:"terminalId"`
	Status        string `json:"status"`
	Success       bool   `json:"success"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	AuthCode      string `json:"authCode,omitempty"`
	RefNumber     string `json:"refNumber,omitempty"`
}

// PublishFinalized satisfies paymentops.EventPublisher.
func (p *NatsPublisher) PublishFinalized(_ context.Context, tx transaction.Entity) error {
	body, err := json.Marshal(finalizedEvent{
		TransactionID: tx.ID,
		TerminalID:    tx.TerminalID,
		Status:        string(tx.Status),
		Success:       tx.Result.Success,
		Amount:        tx.Amount.String(),
		Currency:      string(tx.Currency),
		AuthCode:      tx.Result.AuthCode,
		RefNumber:     tx.Result.RefNumber,
	})
	if err != nil {
		return fmt.Errorf("events: marshal finalized event: %w", err)
	}
	return p.conn.Publish(subjectFinalized, body)
}

// Close closes the underlying connection without draining it.
func (p *NatsPublisher) Close() {
	p.conn.Close()
}
