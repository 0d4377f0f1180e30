package store

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploads keeps submitted report images on local disk, mirroring the
// backend's /uploads static route
type Uploads struct {
	dir string
}

// NewUploads ensures the upload directory exists
func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Uploads{dir: dir}, nil
}

// Dir returns the directory served under /uploads
func (u *Uploads) Dir() string {
	return u.dir
}

// Save writes the image under a fresh name and returns the public path
func (u *Uploads) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path.Join("/uploads", name), nil
}
