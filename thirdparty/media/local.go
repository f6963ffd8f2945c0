package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const localPrefix = "/uploads/"

// LocalUploader writes images under a directory served at /uploads/.
type LocalUploader struct {
	dir       string
	chunkSize int
}

func NewLocalUploader(dir string, chunkSize int) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if chunkSize <= 0 {
		chunkSize = 32 * 1024
	}
	return &LocalUploader{dir: dir, chunkSize: chunkSize}, nil
}

func (l *LocalUploader) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uniqueName(filename)
	fullPath := filepath.Join(l.dir, name)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.CopyBuffer(f, r, make([]byte, l.chunkSize)); err != nil {
		_ = f.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return localPrefix + name, nil
}

func (l *LocalUploader) Remove(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, localPrefix) {
		return fmt.Errorf("not a local reference: %q", ref)
	}
	name := path.Base(ref)
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *LocalUploader) Dir() string {
	return l.dir
}

func (l *LocalUploader) Prefix() string {
	return localPrefix
}

func (l *LocalUploader) Handler() http.Handler {
	return http.StripPrefix(localPrefix, http.FileServer(http.Dir(l.dir)))
}

// Check reports whether the upload directory exists and is writable.
func (l *LocalUploader) Check(_ context.Context) error {
	f, err := os.CreateTemp(l.dir, ".health-*")
	if err != nil {
		return fmt.Errorf("upload dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
