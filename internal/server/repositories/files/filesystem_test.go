package files

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/dmitrijs2005/gophdrop/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemStore_Layout(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, models.PublicNamespace(), "p.txt", strings.NewReader("p"), PutOptions{}))
	require.NoError(t, s.Put(ctx, models.PrivateNamespace("alice"), "a.txt", strings.NewReader("a"), PutOptions{}))

	_, err = os.Stat(filepath.Join(root, "public", "p.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "private", "alice", "a.txt"))
	require.NoError(t, err)

	staged, err := os.ReadDir(filepath.Join(root, tmpDirName))
	require.NoError(t, err)
	assert.Empty(t, staged, "staging dir must be empty after successful puts")
}

func TestFilesystemStore_IgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStore(root)
	require.NoError(t, err)
	ctx := context.Background()
	pub := models.PublicNamespace()

	require.NoError(t, s.Ensure(ctx, pub))
	require.NoError(t, os.Mkdir(filepath.Join(root, "public", "subdir"), 0o700))
	require.NoError(t, s.Put(ctx, pub, "file.txt", strings.NewReader("x"), PutOptions{}))

	list, err := s.List(ctx, pub)
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, names(list))

	_, err = s.Stat(ctx, pub, "subdir")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, s.Remove(ctx, pub, "subdir"), common.ErrorNotFound)
}

func TestFilesystemStore_CanceledContext(t *testing.T) {
	s, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Put(ctx, models.PublicNamespace(), "c.txt", strings.NewReader("x"), PutOptions{})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Stat(context.Background(), models.PublicNamespace(), "c.txt")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestNewFilesystemStore_RootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewFilesystemStore(file)
	require.Error(t, err)
}
