package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStore_SaveAndOpen(t *testing.T) {
	store := New(afero.NewMemMapFs(), "uploads", "/uploads")

	url, err := store.Save("products", "photo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	f, err := store.Open(strings.TrimPrefix(url, "/uploads"))
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestImageStore_GeneratedNamesDoNotCollide(t *testing.T) {
	store := New(afero.NewMemMapFs(), "uploads", "/uploads")

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		url, err := store.Save("banners", "same-name.jpg", strings.NewReader("x"))
		require.NoError(t, err)
		assert.False(t, seen[url], "stored name must be unique even for identical originals")
		seen[url] = true
	}
}

func TestImageStore_ExtensionFallback(t *testing.T) {
	store := New(afero.NewMemMapFs(), "uploads", "/uploads")

	url, err := store.Save("products", "no-extension", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".bin"))
}

func TestImageStore_OpenRefusesPathEscape(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "secret.txt", []byte("top"), 0o644))

	store := New(fs, "uploads", "/uploads")

	_, err := store.Open("../secret.txt")
	assert.Error(t, err, "traversal outside the store root must not resolve")
}
