package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
)

// OpenOptions controls how long Open waits for the database to come up.
type OpenOptions struct {
	Attempts uint
	Delay    time.Duration
	// OnRetry is called after each failed ping; attempt starts at 1.
	OnRetry func(attempt uint, err error)
}

// Open opens a pool for driver and pings it until it answers or the
// attempts run out. The pool is closed when Open fails.
func Open(ctx context.Context, driver, dsn string, opts OpenOptions) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if opts.Attempts == 0 {
		opts.Attempts = 1
	}

	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Attempts(opts.Attempts),
		retry.Delay(opts.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			if opts.OnRetry != nil {
				opts.OnRetry(n+1, err)
			}
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}
