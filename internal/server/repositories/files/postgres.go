package files

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/dbx"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// PostgresStore keeps file content in the files table, keyed by
// (namespace, name). It works over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresStore struct {
	db dbx.DBTX
}

// NewPostgresStore constructs a store bound to the given DBTX.
func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) Ensure(ctx context.Context, ns models.Namespace) error {
	query := `INSERT INTO namespaces (key) VALUES ($1) ON CONFLICT (key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, ns.Key()); err != nil {
		return fmt.Errorf("ensure namespace: %w", err)
	}
	return nil
}

// Put upserts the entry. With IfAbsent the insert is skipped on conflict and
// the zero affected rows are reported as ErrorAlreadyExists.
func (r *PostgresStore) Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error {
	if err := r.Ensure(ctx, ns); err != nil {
		return err
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}

	query := `
		INSERT INTO files (namespace, name, content, size_bytes, modified_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (namespace, name)
		DO UPDATE SET
			content = EXCLUDED.content,
			size_bytes = EXCLUDED.size_bytes,
			modified_at = EXCLUDED.modified_at
	`
	if opts.IfAbsent {
		query = `
		INSERT INTO files (namespace, name, content, size_bytes, modified_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (namespace, name) DO NOTHING
	`
	}

	res, err := r.db.ExecContext(ctx, query, ns.Key(), name, data, int64(len(data)))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 && opts.IfAbsent {
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
	}
	return nil
}

func (r *PostgresStore) List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error) {
	query := `SELECT name, size_bytes, modified_at FROM files WHERE namespace=$1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, ns.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	result := []models.FileInfo{}
	for rows.Next() {
		var item models.FileInfo
		if err := rows.Scan(&item.Name, &item.Size, &item.ModifiedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// ORDER BY follows the collation; keep byte order like the other backends
	sortByName(result)
	return result, nil
}

func (r *PostgresStore) Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error) {
	query := `SELECT size_bytes, modified_at FROM files WHERE namespace=$1 AND name=$2`

	info := models.FileInfo{Name: name}
	err := r.db.QueryRowContext(ctx, query, ns.Key(), name).Scan(&info.Size, &info.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return models.FileInfo{}, fmt.Errorf("failed to select file: %w", err)
	}
	return info, nil
}

func (r *PostgresStore) Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error) {
	query := `SELECT content, size_bytes, modified_at FROM files WHERE namespace=$1 AND name=$2`

	var data []byte
	info := models.FileInfo{Name: name}
	err := r.db.QueryRowContext(ctx, query, ns.Key(), name).Scan(&data, &info.Size, &info.ModifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return nil, models.FileInfo{}, fmt.Errorf("failed to select file: %w", err)
	}
	return io.NopCloser(bytes.NewReader(data)), info, nil
}

func (r *PostgresStore) Remove(ctx context.Context, ns models.Namespace, name string) error {
	query := `DELETE FROM files WHERE namespace=$1 AND name=$2`
	res, err := r.db.ExecContext(ctx, query, ns.Key(), name)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	}
	return nil
}
