// Package db is the optional Postgres sink for finished reports.
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"

	"githubreport/logger"
)

// DB represents a database connection
type DB struct {
	conn *sqlx.DB
}

// New opens a connection to the report database. Pool settings come from the
// environment with the same defaults the rest of the configuration uses.
func New(dsn string) (*DB, error) {
	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	maxOpenConns := 25
	if v := viper.GetInt("DB_MAX_OPEN_CONNS"); v > 0 {
		maxOpenConns = v
	}

	maxIdleConns := 25
	if v := viper.GetInt("DB_MAX_IDLE_CONNS"); v > 0 {
		maxIdleConns = v
	}

	connMaxLifetime := 5 * time.Minute
	if v := viper.GetString("DB_CONN_MAX_LIFETIME"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			connMaxLifetime = parsed
		}
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	logger.Info("Database connection established",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
