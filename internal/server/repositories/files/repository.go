// Package files stores uploaded content grouped by namespace. Every backend
// implements NamespaceStore; services never touch storage directly.
package files

import (
	"context"
	"io"
	"sort"

	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

// PutOptions tunes a single Put.
type PutOptions struct {
	// IfAbsent makes Put fail with common.ErrorAlreadyExists instead of
	// overwriting an existing entry.
	IfAbsent bool
}

// NamespaceStore maps each namespace to a flat collection of named entries.
//
// Names passed in are expected to have passed models.ValidateFileName.
// Missing entries are reported as common.ErrorNotFound; List of a namespace
// that was never written returns an empty slice.
type NamespaceStore interface {
	Ensure(ctx context.Context, ns models.Namespace) error
	Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error
	List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error)
	Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error)
	Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error)
	Remove(ctx context.Context, ns models.Namespace, name string) error
}

func sortByName(items []models.FileInfo) {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
}
