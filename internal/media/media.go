// Package media stores user-uploaded images on local disk and builds
// the public URLs they are served under.
package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/okarpova/staffhub/internal/apperr"
)

// extensions maps the accepted image formats to file extensions.
var extensions = map[string]string{
	"jpeg": ".jpg",
	"jpg":  ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// Store writes decoded images under a root directory and addresses them
// relative to a base URL.
type Store struct {
	root    string
	baseURL string
}

// NewStore creates a Store rooted at dir. Files are addressed under
// baseURL + "/media/".
func NewStore(dir, baseURL string) *Store {
	return &Store{root: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveImage decodes a base64 payload and writes it under the store root
// with a generated name of the form "{kind}_{id}{ext}". It returns the
// stored file name. The format must be one of the accepted image
// formats; malformed payloads are rejected as unprocessable.
func (s *Store) SaveImage(kind, format, encoded string) (string, error) {
	ext, ok := extensions[strings.ToLower(format)]
	if !ok {
		return "", apperr.New(apperr.KindUnprocessable,
			fmt.Sprintf("Unsupported image format %q", format))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnprocessable, "Image payload is not valid base64", err)
	}

	id := uuid.New()
	name := fmt.Sprintf("%s_%x%s", kind, id[:], ext)

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), data, 0o644); err != nil {
		return "", apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return name, nil
}

// Remove deletes a stored file. A missing file is not an error, so a
// stale reference never blocks replacing an image.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return apperr.Wrap(apperr.KindInternal, "Internal server error", err)
	}
	return nil
}

// URL returns the public address of a stored file, or the empty string
// for an empty name.
func (s *Store) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.baseURL + "/media/" + name
}
