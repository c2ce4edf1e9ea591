package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/andywolf/skilltrack/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// Postgres stores keys as rows of a single jsonb table.
type Postgres struct {
	pool    *pgxpool.Pool
	table   string
	timeout time.Duration
}

// PostgresOptions configures a Postgres store. Password, when set, overrides
// any password in the DSN.
type PostgresOptions struct {
	DSN      string
	Password string
	Table    string
	Timeout  time.Duration
}

// ValidateTableName checks that name is safe to interpolate as an identifier.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %q", name)
	}
	return nil
}

// NewPostgres opens a connection pool and creates the table if needed.
func NewPostgres(ctx context.Context, opts PostgresOptions) (*Postgres, error) {
	if err := ValidateTableName(opts.Table); err != nil {
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		// pgconn errors quote the connection string.
		return nil, fmt.Errorf("failed to parse db config: %s", security.Scrub(err.Error()))
	}
	if opts.Password != "" {
		poolCfg.ConnConfig.Password = opts.Password
	}
	poolCfg.MaxConns = 2
	poolCfg.MaxConnIdleTime = time.Minute

	p := &Postgres{table: opts.Table, timeout: opts.Timeout}

	connectCtx, cancel := p.withTimeout(ctx)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", security.RedactDSN(opts.DSN), err)
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", security.RedactDSN(opts.DSN), err)
	}
	if _, err := pool.Exec(connectCtx, createTableSQL(p.table)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", p.table, err)
	}

	p.pool = pool
	return p, nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, table)
}

func selectSQL(table string) string {
	return fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, table)
}

func upsertSQL(table string) string {
	return fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, table)
}

func (p *Postgres) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	var value []byte
	err := p.pool.QueryRow(ctx, selectSQL(p.table), key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set implements Store.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	_, err := p.pool.Exec(ctx, upsertSQL(p.table), key, value)
	return err
}

// Close implements Store.
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
