package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/filex"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

const tmpDirName = ".tmp"

// FilesystemStore lays namespaces out as directories under root:
//
//	<root>/public/<name>
//	<root>/private/<username>/<name>
//
// Uploads are staged in <root>/.tmp and moved into place, so a reader
// never observes a partially written file.
type FilesystemStore struct {
	root   string
	tmpDir string
}

// NewFilesystemStore creates root (and its staging directory) if needed.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	abs, err := filex.EnsureDir(root)
	if err != nil {
		return nil, err
	}
	tmp, err := filex.EnsureDir(filepath.Join(abs, tmpDirName))
	if err != nil {
		return nil, err
	}
	return &FilesystemStore{root: abs, tmpDir: tmp}, nil
}

func (s *FilesystemStore) dir(ns models.Namespace) string {
	return filepath.Join(s.root, filepath.FromSlash(ns.Key()))
}

func (s *FilesystemStore) path(ns models.Namespace, name string) string {
	return filepath.Join(s.dir(ns), name)
}

func (s *FilesystemStore) Ensure(ctx context.Context, ns models.Namespace) error {
	// MkdirAll tolerates concurrent creation of the same directory
	if _, err := filex.EnsureDir(s.dir(ns)); err != nil {
		return err
	}
	return nil
}

func (s *FilesystemStore) Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error {
	if err := s.Ensure(ctx, ns); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.tmpDir, "upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// after a successful rename this is a no-op
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.path(ns, name)
	if opts.IfAbsent {
		if err := os.Link(tmpName, target); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
			}
			return fmt.Errorf("link %s: %w", target, err)
		}
		return nil
	}

	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}

func (s *FilesystemStore) List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error) {
	dirEntries, err := os.ReadDir(s.dir(ns))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.FileInfo{}, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", ns.Key(), err)
	}

	result := make([]models.FileInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		fi, err := de.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s/%s: %w", ns.Key(), de.Name(), err)
		}
		result = append(result, fileInfo(fi))
	}
	sortByName(result)
	return result, nil
}

func (s *FilesystemStore) Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error) {
	fi, err := os.Lstat(s.path(ns, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return models.FileInfo{}, fmt.Errorf("stat %s/%s: %w", ns.Key(), name, err)
	}
	if !fi.Mode().IsRegular() {
		return models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	}
	return fileInfo(fi), nil
}

func (s *FilesystemStore) Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error) {
	info, err := s.Stat(ctx, ns, name)
	if err != nil {
		return nil, models.FileInfo{}, err
	}
	f, err := os.Open(s.path(ns, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return nil, models.FileInfo{}, fmt.Errorf("open %s/%s: %w", ns.Key(), name, err)
	}
	return f, info, nil
}

func (s *FilesystemStore) Remove(ctx context.Context, ns models.Namespace, name string) error {
	if _, err := s.Stat(ctx, ns, name); err != nil {
		return err
	}
	if err := os.Remove(s.path(ns, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
		}
		return fmt.Errorf("remove %s/%s: %w", ns.Key(), name, err)
	}
	return nil
}

func fileInfo(fi fs.FileInfo) models.FileInfo {
	return models.FileInfo{Name: fi.Name(), Size: fi.Size(), ModifiedAt: fi.ModTime()}
}
