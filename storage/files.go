// Package storage keeps attachment blobs on local disk. The rest of the
// system only ever sees stored names; swapping the directory for a real
// blob store stays contained here.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var dir string

// Init sets up the upload directory. Called once at startup (and by
// tests with a temp dir).
func Init(uploadDir string) error {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return err
	}
	dir = uploadDir
	return nil
}

// StoredName builds a unique, filesystem-safe blob name from the
// original upload name. The slug keeps the name readable, the uuid
// fragment keeps repeated uploads of the same file apart.
func StoredName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(filepath.Base(original), ext)
	s := slug.Make(base)
	if s == "" {
		s = "file"
	}
	return fmt.Sprintf("%s-%s%s", s, uuid.New().String()[:8], strings.ToLower(ext))
}

// Save writes the uploaded file to disk and returns the stored name and
// the number of bytes written.
func Save(fh *multipart.FileHeader) (string, int64, error) {
	src, err := fh.Open()
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	name := StoredName(fh.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", 0, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		return "", 0, err
	}
	return name, size, nil
}

// Remove deletes a stored blob. Missing files are not an error; the
// record is the source of truth and cleanup is best-effort.
func Remove(storedName string) error {
	if storedName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk location of a stored blob.
func Path(storedName string) string {
	return filepath.Join(dir, storedName)
}
