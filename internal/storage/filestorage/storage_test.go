package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	storage "vineet_portfolio/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveReader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := storage.NewLocalFileStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	path, size, err := fs.SaveReader(ctx, strings.NewReader("hello"), filepath.Join("portfolio", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	data, err := os.ReadFile(fs.GetFullPath(path))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalFileStorage_SaveReaderOverwrites(t *testing.T) {
	// повторное сохранение по тому же пути — upsert, не ошибка
	ctx := context.Background()
	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	_, _, err = fs.SaveReader(ctx, strings.NewReader("first"), "portfolio/a.jpg")
	require.NoError(t, err)

	path, size, err := fs.SaveReader(ctx, strings.NewReader("second!"), "portfolio/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)

	data, err := os.ReadFile(fs.GetFullPath(path))
	require.NoError(t, err)
	assert.Equal(t, "second!", string(data))
}

func TestLocalFileStorage_SaveReaderCancelledContext(t *testing.T) {
	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = fs.SaveReader(ctx, strings.NewReader("data"), "portfolio/a.jpg")
	assert.Error(t, err)
}

func TestLocalFileStorage_PublicURL(t *testing.T) {
	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	assert.Equal(t,
		"http://localhost:8080/uploads/portfolio/a.jpg",
		fs.PublicURL(filepath.Join("portfolio", "a.jpg")),
	)
}

func TestLocalFileStorage_Delete(t *testing.T) {
	ctx := context.Background()
	fs, err := storage.NewLocalFileStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, _, err := fs.SaveReader(ctx, strings.NewReader("bye"), "portfolio/a.jpg")
	require.NoError(t, err)

	require.NoError(t, fs.Delete(ctx, path))

	_, err = os.Stat(fs.GetFullPath(path))
	assert.True(t, os.IsNotExist(err))
}
