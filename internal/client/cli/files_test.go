package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	fc := &fakeClient{}
	app, out := newTestApp(t, fc, "")

	require.NoError(t, app.Upload(context.Background(), []string{path, "public", "--if-absent"}))
	assert.Equal(t, "notes.txt", fc.upName)
	assert.Equal(t, "public", fc.upVisibility)
	assert.Equal(t, []byte("hello"), fc.upContent)
	assert.True(t, fc.upIfAbsent)
	assert.Contains(t, out.String(), "File uploaded!")
}

func TestUpload_Usage(t *testing.T) {
	app, _ := newTestApp(t, &fakeClient{}, "")

	require.ErrorIs(t, app.Upload(context.Background(), nil), errUsage)
	require.ErrorIs(t, app.Upload(context.Background(), []string{"a", "public", "extra"}), errUsage)
}

func TestUpload_MissingFile(t *testing.T) {
	fc := &fakeClient{}
	app, _ := newTestApp(t, fc, "")

	require.Error(t, app.Upload(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}))
	assert.Empty(t, fc.upName)
}

func TestListAndSearch(t *testing.T) {
	fc := &fakeClient{files: []pb.FileEntry{
		{Name: "a.txt", Owner: "Public", SizeBytes: 3, ModifiedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Visibility: "public"},
		{Name: "b.txt", Owner: "alice", SizeBytes: 7, Visibility: "private"},
	}}
	app, out := newTestApp(t, fc, "")

	require.NoError(t, app.List(context.Background()))
	assert.Contains(t, out.String(), "NAME")
	assert.Contains(t, out.String(), "a.txt")
	assert.Contains(t, out.String(), "2024-01-02 03:04:05")

	out.Reset()
	require.NoError(t, app.Search(context.Background(), []string{"my", "file"}))
	assert.Equal(t, "my file", fc.query)
	assert.Contains(t, out.String(), "b.txt")
}

func TestList_Empty(t *testing.T) {
	app, out := newTestApp(t, &fakeClient{}, "")
	require.NoError(t, app.List(context.Background()))
	assert.Contains(t, out.String(), "No files")
}

func TestDelete(t *testing.T) {
	fc := &fakeClient{}
	app, out := newTestApp(t, fc, "")

	require.ErrorIs(t, app.Delete(context.Background(), nil), errUsage)

	require.NoError(t, app.Delete(context.Background(), []string{"a.txt"}))
	assert.Equal(t, "a.txt", fc.deleted)
	assert.Contains(t, out.String(), "File deleted: a.txt")

	fc.deleteErr = errors.New("file not found")
	require.Error(t, app.Delete(context.Background(), []string{"b.txt"}))
}

func TestDownload(t *testing.T) {
	fc := &fakeClient{download: pb.FileEntry{Name: "a.txt"}, downloadRaw: []byte("data")}
	app, out := newTestApp(t, fc, "")
	dir := t.TempDir()

	// into a directory keeps the server name
	require.NoError(t, app.Download(context.Background(), []string{"a.txt", dir}))
	got, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assert.Contains(t, out.String(), "Saved")

	// explicit file name
	dest := filepath.Join(dir, "copy.bin")
	require.NoError(t, app.Download(context.Background(), []string{"a.txt", dest}))
	_, err = os.Stat(dest)
	require.NoError(t, err)

	require.ErrorIs(t, app.Download(context.Background(), nil), errUsage)
}
