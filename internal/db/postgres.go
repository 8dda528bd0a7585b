package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type PostgresOpts struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration

	// InsecureSkipVerify forces sslmode=require: the link is encrypted but
	// the server certificate is not verified. Managed hosts hand out certs
	// that do not chain to a local CA.
	InsecureSkipVerify bool
}

// NewPostgresConnection opens a *sqlx.DB with sensible pool/timeouts.
func NewPostgresConnection(dsn string, opts PostgresOpts) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty Postgres DSN")
	}
	if opts.InsecureSkipVerify {
		dsn = forceSSLMode(dsn, "require")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// forceSSLMode overrides sslmode in either a URL DSN (postgres://...) or a
// key=value DSN.
func forceSSLMode(dsn, mode string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		q.Set("sslmode", mode)
		u.RawQuery = q.Encode()
		return u.String()
	}

	parts := strings.Fields(dsn)
	out := parts[:0]
	for _, p := range parts {
		if !strings.HasPrefix(p, "sslmode=") {
			out = append(out, p)
		}
	}
	return strings.Join(append(out, "sslmode="+mode), " ")
}
