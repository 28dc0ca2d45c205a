package files

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
)

type memEntry struct {
	data       []byte
	modifiedAt time.Time
}

// MemoryStore keeps everything in process memory. Used in tests and for
// throwaway deployments.
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]memEntry
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		namespaces: make(map[string]map[string]memEntry),
		now:        time.Now,
	}
}

func (s *MemoryStore) Ensure(ctx context.Context, ns models.Namespace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(ns)
	return nil
}

func (s *MemoryStore) ensureLocked(ns models.Namespace) map[string]memEntry {
	entries, ok := s.namespaces[ns.Key()]
	if !ok {
		entries = make(map[string]memEntry)
		s.namespaces[ns.Key()] = entries
	}
	return entries
}

func (s *MemoryStore) Put(ctx context.Context, ns models.Namespace, name string, content io.Reader, opts PutOptions) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("read content: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.ensureLocked(ns)
	if _, exists := entries[name]; exists && opts.IfAbsent {
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorAlreadyExists)
	}
	entries[name] = memEntry{data: data, modifiedAt: s.now()}
	return nil
}

func (s *MemoryStore) List(ctx context.Context, ns models.Namespace) ([]models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.namespaces[ns.Key()]
	result := make([]models.FileInfo, 0, len(entries))
	for name, e := range entries {
		result = append(result, infoOf(name, e))
	}
	sortByName(result)
	return result, nil
}

func (s *MemoryStore) Stat(ctx context.Context, ns models.Namespace, name string) (models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.namespaces[ns.Key()][name]
	if !ok {
		return models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	}
	return infoOf(name, e), nil
}

func (s *MemoryStore) Get(ctx context.Context, ns models.Namespace, name string) (io.ReadCloser, models.FileInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.namespaces[ns.Key()][name]
	if !ok {
		return nil, models.FileInfo{}, fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	}
	// entries are replaced, never mutated, so sharing the slice is safe
	return io.NopCloser(bytes.NewReader(e.data)), infoOf(name, e), nil
}

func (s *MemoryStore) Remove(ctx context.Context, ns models.Namespace, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.namespaces[ns.Key()]
	if _, ok := entries[name]; !ok {
		return fmt.Errorf("%s/%s: %w", ns.Key(), name, common.ErrorNotFound)
	}
	delete(entries, name)
	return nil
}

func infoOf(name string, e memEntry) models.FileInfo {
	return models.FileInfo{Name: name, Size: int64(len(e.data)), ModifiedAt: e.modifiedAt}
}
