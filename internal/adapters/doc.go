// Package adapters contains implementations of external interfaces and integrations.
//
// This package implements the adapters layer (also known as interface adapters) in clean
// architecture, translating between the application core and external systems.
//
// The adapters layer includes:
//   - Inbound adapters (driving): HTTP handlers, gRPC services, CLI commands
//   - Outbound adapters (driven): Repository implementations, external service clients
//   - DTOs and request/response transformations
//
// Subpackages:
//   - http: REST API handlers (handlers/payment)
//   - provider: acquirer adapters (garanti, payten, ykb, vakifbank, qnb, iyzico) and their shared HTTP client
//   - bin: BIN resolver with in-process and optional Redis caching
//   - events: NATS publisher for payment.finalized events
//   - audit: ClickHouse sink for transaction log entries
//
// Design principles:
//   - Adapters implement domain interfaces
//   - Dependencies point inward (toward domain)
//   - Technology-specific implementation details isolated here
//   - Easy to swap implementations without affecting business logic
package adapters
