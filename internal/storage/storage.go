package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ImageStore persists uploaded images behind an afero filesystem, so tests
// run against memory and production against disk. It stands in for the
// original deployment's storage bucket.
type ImageStore struct {
	fs      afero.Fs
	dir     string
	baseURL string
}

// New creates an ImageStore rooted at dir; stored files are served under
// baseURL.
func New(fs afero.Fs, dir, baseURL string) *ImageStore {
	return &ImageStore{
		fs:      fs,
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes the image under a collision-free generated name and returns
// the URL it will be served at. kind groups files ("banners", "products").
func (s *ImageStore) Save(kind, originalName string, r io.Reader) (string, error) {
	ext := path.Ext(originalName)
	if ext == "" {
		ext = ".bin"
	}

	name := fmt.Sprintf("%s_%d_%s%s", kind, time.Now().UnixMilli(), randomSuffix(), ext)
	dir := path.Join(s.dir, kind)

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := s.fs.Create(path.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.baseURL + "/" + kind + "/" + name, nil
}

// Open returns a stored file by its path relative to the store root.
func (s *ImageStore) Open(relPath string) (afero.File, error) {
	clean := path.Clean("/" + relPath)
	return s.fs.Open(path.Join(s.dir, clean))
}

// FileServer returns an http.Handler serving the store's files. The caller
// mounts it under the store's base URL.
func (s *ImageStore) FileServer() http.Handler {
	base := afero.NewBasePathFs(s.fs, s.dir)
	return http.FileServer(afero.NewHttpFs(base).Dir("/"))
}

func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf)
}
