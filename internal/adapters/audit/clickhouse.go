// Package audit mirrors transaction log entries into an append-only audit
// trail, adapted from the teacher's pkg/store ClickHouse connection
// (pkg/store/clickhouse.go) into a domain-specific sink instead of a bare
// *sql.DB handle.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"vpos-orchestrator/internal/domain/transaction"
	"vpos-orchestrator/pkg/store"
)

const insertLogSQL = `INSERT INTO transaction_logs (transaction_id, type, request, response, at) VALUES (?, ?, ?, ?, ?)`

// ClickHouseSink writes every newly appended transaction.LogEntry to a
// transaction_logs table, independent of the Mongo transaction document
// those same entries live on: a compacted/rotated Mongo document never
// loses history an auditor needs.
type ClickHouseSink struct {
	ch *store.ClickHouse
}

// NewClickHouseSink opens a ClickHouse connection via pkg/store and wraps
// it as a sink for transaction log entries.
func NewClickHouseSink(addr, database, username, password string) (*ClickHouseSink, error) {
	ch, err := store.NewClickHouse(addr, database, username, password)
	if err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	return &ClickHouseSink{ch: ch}, nil
}

// WriteLogs satisfies paymentops.AuditSink.
func (s *ClickHouseSink) WriteLogs(ctx context.Context, transactionID string, entries []transaction.LogEntry) error {
	for _, entry := range entries {
		req, err := json.Marshal(entry.Request)
		if err != nil {
			return fmt.Errorf("audit: marshal request: %w", err)
		}
		resp, err := json.Marshal(entry.Response)
		if err != nil {
			return fmt.Errorf("audit: marshal response: %w", err)
		}
		if _, err := s.ch.Connection.ExecContext(ctx, insertLogSQL, transactionID, string(entry.Type), req, resp, entry.At); err != nil {
			return fmt.Errorf("audit: inserting log entry: %w", err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *ClickHouseSink) Close() error {
	return s.ch.Connection.Close()
}
