package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	// URL, when set, takes precedence over the discrete fields.
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the lib/pq connection string.
func (c Config) DSN() (string, error) {
	if c.URL != "" {
		dsn, err := pq.ParseURL(c.URL)
		if err != nil {
			return "", fmt.Errorf("failed to parse database URL: %w", err)
		}
		return dsn, nil
	}

	parts := []string{
		kv("host", c.Host),
		kv("port", fmt.Sprintf("%d", c.Port)),
		kv("user", c.User),
		kv("password", c.Password),
		kv("dbname", c.DBName),
		kv("sslmode", c.SSLMode),
	}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " "), nil
}

func kv(key, value string) string {
	if value == "" || value == "0" {
		return ""
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return fmt.Sprintf("%s='%s'", key, value)
}

// NewPostgresDB opens a lib/pq database handle and verifies connectivity.
func NewPostgresDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// DescribeError adds the PostgreSQL error code and detail to err when it
// carries a *pq.Error.
func DescribeError(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		msg := fmt.Sprintf("%s (SQLSTATE %s)", err.Error(), pqErr.Code)
		if pqErr.Detail != "" {
			msg += ": " + pqErr.Detail
		}
		return msg
	}
	return err.Error()
}
