package store

import (
	"crypto/tls"
	"database/sql"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type ClickHouse struct {
	Connection *sql.DB
}

// NewClickHouse dials a ClickHouse cluster at addr for the audit log sink.
// TLS stays on with InsecureSkipVerify, matching how the cluster this was
// grounded on terminates TLS at a self-signed load balancer.
func NewClickHouse(addr, database, username, password string) (*ClickHouse, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		TLS: &tls.Config{
			InsecureSkipVerify: true,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout: time.Second * 30,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		BlockBufferSize:      10,
		MaxCompressionBuffer: 10240,
	})
	conn.SetMaxIdleConns(5)
	conn.SetMaxOpenConns(10)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &ClickHouse{
		Connection: conn,
	}, nil
}

func (ch *ClickHouse) Close() error {
	return ch.Connection.Close()
}
