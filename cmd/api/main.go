package main

import (
	"log"

	"vpos-orchestrator/internal/app"
)

// @title VPOS Orchestrator API
// @version 1.0
// @description Multi-acquirer card payment orchestration over BIN-driven
// @description acquirer selection and bank-hosted 3-D Secure.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

/*
Application Entry Point

Boot sequence, orchestrated by internal/app.New():

 1. Logger (zap, JSON in APP_MODE=prod, console otherwise)
 2. Configuration (env vars, .env for local development)
 3. Mongo connection (terminal and transaction stores)
 4. Field cipher (card and credential encryption at rest)
 5. BIN resolver (acquirer-selection lookup, TTL-cached)
 6. Provider registry (garanti, payten, ykb, vakifbank, qnb, iyzico)
 7. Orchestrator service
 8. HTTP server (chi router, authenticated + public route groups)

REQUIRED ENVIRONMENT VARIABLES:
  - MONGODB_URI: Mongo connection string
  - CALLBACK_BASE_URL: public base URL the 3-D Secure callback is built against
  - CRYPTO_MASTER_SECRET: master secret the field cipher derives its key from

OPTIONAL ENVIRONMENT VARIABLES:
  - APP_MODE: "dev" (default) or "prod"
  - APP_PORT: server port (default: 8080)
  - BIN_API_URL: upstream BIN lookup service
  - BIN_REDIS_URL: shares the BIN resolver's TTL cache across instances
  - CORS_ORIGIN: allowed CORS origin (default: "*")
  - EVENTS_URL: NATS server for the payment.finalized domain event; unset disables it
  - CLICKHOUSE_ADDR: audit-log sink for the transaction exchange log; unset disables it

GRACEFUL SHUTDOWN:
SIGINT/SIGTERM stop the HTTP server, drain in-flight requests, and close the
Mongo connection before the process exits.
*/
func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
