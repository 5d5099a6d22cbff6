// Package storage persists uploaded files on local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedType is returned for uploads whose extension is not an
	// accepted image format.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when an upload exceeds the configured limit.
	ErrFileTooLarge = errors.New("file too large")
)

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
}

// AvatarStore saves avatar images under a local directory with random names,
// so uploads can neither collide nor traverse outside the directory.
type AvatarStore struct {
	dir          string
	publicPrefix string
	maxSizeBytes int64
}

// NewAvatarStore creates the upload directory if needed. publicPrefix is the
// URL path prefix the stored files are served under.
func NewAvatarStore(dir, publicPrefix string, maxSizeBytes int64) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &AvatarStore{dir: dir, publicPrefix: publicPrefix, maxSizeBytes: maxSizeBytes}, nil
}

// Save writes the upload to disk and returns its public path. The original
// filename contributes only its extension; the stored name is a fresh uuid.
func (s *AvatarStore) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	// One extra byte past the limit distinguishes "too large" from "exactly at it".
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSizeBytes+1))
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if n > s.maxSizeBytes {
		_ = os.Remove(dst.Name())
		return "", ErrFileTooLarge
	}

	return path.Join(s.publicPrefix, name), nil
}
