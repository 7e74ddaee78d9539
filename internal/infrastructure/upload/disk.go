// Package upload stores image uploads on local disk under generated,
// collision-resistant names. Callers treat the returned name as opaque.
package upload

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedType is returned for uploads whose extension is not an
// accepted image format.
var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// DiskStore writes uploads into a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns the store.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save streams r to disk under a name built from 16 random bytes plus
// the original extension, and returns that name.
func (s *DiskStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrUnsupportedType
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	name := hex.EncodeToString(buf) + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}
