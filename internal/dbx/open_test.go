package dbx

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpen_Succeeds(t *testing.T) {
	db, err := Open(context.Background(), "sqlite", "file:open_ok?mode=memory&cache=shared", OpenOptions{Attempts: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	require.Equal(t, 1, one)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "no-such-driver", "", OpenOptions{})
	require.ErrorContains(t, err, "db open error")
}

func TestOpen_RetriesUntilGivingUp(t *testing.T) {
	var attempts []uint
	// a directory that does not exist makes every ping fail
	dsn := "file:" + t.TempDir() + "/missing/dir/db.sqlite?mode=ro"

	_, err := Open(context.Background(), "sqlite", dsn, OpenOptions{
		Attempts: 3,
		Delay:    time.Millisecond,
		OnRetry:  func(n uint, _ error) { attempts = append(attempts, n) },
	})
	require.ErrorContains(t, err, "db ping error")
	require.NotEmpty(t, attempts)
	require.Equal(t, uint(1), attempts[0])
	require.LessOrEqual(t, len(attempts), 3)
}
