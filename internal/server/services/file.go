package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/config"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/dmitrijs2005/gophdrop/internal/server/repositories/files"
)

const (
	msgUploaded = "File uploaded!"
	msgDeleted  = "File deleted"
)

// UploadOptions tunes a single upload.
type UploadOptions struct {
	// IfAbsent refuses to replace an existing entry of the same name in the
	// target namespace.
	IfAbsent bool
}

// FileService implements the file registry: who may put, see and remove
// which entries. Every method takes the already resolved caller username.
//
// Visibility model:
//   - public uploads land in the single shared namespace and are visible to
//     every caller;
//   - private uploads land in the caller's own namespace, which no other
//     caller can see or touch.
type FileService struct {
	store            files.NamespaceStore
	strictVisibility bool
	// nil means any authenticated caller may delete public entries
	publicDeleteAdmins map[string]struct{}
}

// NewFileService binds the registry to a store and the visibility and
// deletion policy from cfg.
func NewFileService(store files.NamespaceStore, cfg *config.Config) *FileService {
	s := &FileService{store: store, strictVisibility: cfg.StrictVisibility}
	if len(cfg.PublicDeleteAdmins) > 0 {
		s.publicDeleteAdmins = lo.SliceToMap(cfg.PublicDeleteAdmins, func(u string) (string, struct{}) {
			return u, struct{}{}
		})
	}
	return s
}

// Upload stores content under name in the namespace chosen by visibility.
// The name is used verbatim; an existing entry is replaced unless
// opts.IfAbsent is set.
func (s *FileService) Upload(ctx context.Context, caller, visibility, name string, content io.Reader, opts UploadOptions) (models.Ack, error) {
	if caller == "" {
		return models.Ack{}, common.ErrorUnauthorized
	}
	v, err := models.ParseVisibility(visibility, s.strictVisibility)
	if err != nil {
		return models.Ack{}, err
	}
	if err := models.ValidateFileName(name); err != nil {
		return models.Ack{}, err
	}

	ns := models.NamespaceFor(v, caller)
	if err := s.store.Put(ctx, ns, name, content, files.PutOptions{IfAbsent: opts.IfAbsent}); err != nil {
		return models.Ack{}, storageErr("upload", err)
	}
	return models.Ack{Message: msgUploaded}, nil
}

// List returns the public entries followed by the caller's private ones.
func (s *FileService) List(ctx context.Context, caller string) ([]models.FileEntry, error) {
	if caller == "" {
		return nil, common.ErrorUnauthorized
	}
	return s.visible(ctx, caller)
}

// Search is List narrowed to names containing query, ignoring case.
// An empty query matches everything.
func (s *FileService) Search(ctx context.Context, caller, query string) ([]models.FileEntry, error) {
	if caller == "" {
		return nil, common.ErrorUnauthorized
	}
	entries, err := s.visible(ctx, caller)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return lo.Filter(entries, func(e models.FileEntry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Name), q)
	}), nil
}

// Delete removes name from the public namespace if it is there, otherwise
// from the caller's private namespace.
func (s *FileService) Delete(ctx context.Context, caller, name string) (models.Ack, error) {
	if caller == "" {
		return models.Ack{}, common.ErrorUnauthorized
	}
	if err := models.ValidateFileName(name); err != nil {
		return models.Ack{}, err
	}

	ns, err := s.resolve(ctx, caller, name)
	if err != nil {
		return models.Ack{}, err
	}
	if err := s.authorizeDelete(caller, ns); err != nil {
		return models.Ack{}, err
	}
	if err := s.store.Remove(ctx, ns, name); err != nil {
		return models.Ack{}, storageErr("delete", err)
	}
	return models.Ack{Message: msgDeleted, Filename: name}, nil
}

// Download opens name using the same lookup as Delete. The caller closes
// the returned reader.
func (s *FileService) Download(ctx context.Context, caller, name string) (io.ReadCloser, models.FileEntry, error) {
	if caller == "" {
		return nil, models.FileEntry{}, common.ErrorUnauthorized
	}
	if err := models.ValidateFileName(name); err != nil {
		return nil, models.FileEntry{}, err
	}

	ns, err := s.resolve(ctx, caller, name)
	if err != nil {
		return nil, models.FileEntry{}, err
	}
	rc, info, err := s.store.Get(ctx, ns, name)
	if err != nil {
		return nil, models.FileEntry{}, storageErr("download", err)
	}
	return rc, models.NewFileEntry(ns, info), nil
}

func (s *FileService) visible(ctx context.Context, caller string) ([]models.FileEntry, error) {
	var result []models.FileEntry
	for _, ns := range []models.Namespace{models.PublicNamespace(), models.PrivateNamespace(caller)} {
		infos, err := s.store.List(ctx, ns)
		if err != nil {
			return nil, storageErr("list", err)
		}
		result = append(result, lo.Map(infos, func(info models.FileInfo, _ int) models.FileEntry {
			return models.NewFileEntry(ns, info)
		})...)
	}
	if result == nil {
		result = []models.FileEntry{}
	}
	return result, nil
}

// resolve looks name up in the public namespace first, then in the
// caller's. Other users' namespaces are never consulted.
func (s *FileService) resolve(ctx context.Context, caller, name string) (models.Namespace, error) {
	for _, ns := range []models.Namespace{models.PublicNamespace(), models.PrivateNamespace(caller)} {
		_, err := s.store.Stat(ctx, ns, name)
		if err == nil {
			return ns, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return models.Namespace{}, storageErr("stat", err)
		}
	}
	return models.Namespace{}, fmt.Errorf("%s: %w", name, common.ErrorNotFound)
}

func (s *FileService) authorizeDelete(caller string, ns models.Namespace) error {
	owner := ns.Owner()
	if owner == common.PublicOwner {
		if s.publicDeleteAdmins == nil {
			return nil
		}
		if _, ok := s.publicDeleteAdmins[caller]; ok {
			return nil
		}
		return fmt.Errorf("%s may not delete public entries: %w", caller, common.ErrorForbidden)
	}
	if owner != caller {
		return common.ErrorForbidden
	}
	return nil
}

// storageErr passes the registry's own error kinds through and files
// everything else under common.ErrorStorage.
func storageErr(op string, err error) error {
	for _, known := range []error{common.ErrorNotFound, common.ErrorAlreadyExists, common.ErrorValidation} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrorStorage, err)
}
