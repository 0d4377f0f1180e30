package store_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsight/streetsight/store"
)

func TestUploadsSave(t *testing.T) {
	dir := t.TempDir()
	uploads, err := store.NewUploads(dir)
	require.NoError(t, err)

	publicPath, err := uploads.Save("photo.JPG", bytes.NewReader([]byte("image-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/"))
	assert.True(t, strings.HasSuffix(publicPath, ".jpg"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(publicPath, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestUploadsSaveDefaultsExtension(t *testing.T) {
	uploads, err := store.NewUploads(t.TempDir())
	require.NoError(t, err)

	publicPath, err := uploads.Save("noext", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(publicPath, ".jpg"))
}

func TestUploadsSaveUniqueNames(t *testing.T) {
	uploads, err := store.NewUploads(t.TempDir())
	require.NoError(t, err)

	first, err := uploads.Save("photo.jpg", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	second, err := uploads.Save("photo.jpg", bytes.NewReader([]byte("b")))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
