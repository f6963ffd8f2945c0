package media

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/muhammadheryan/property-listing/constant"
)

var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Uploader persists listing images and hands back a publicly fetchable reference.
type Uploader interface {
	Store(ctx context.Context, r io.Reader, filename string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Server is implemented by uploaders that serve their own references over HTTP.
type Server interface {
	Prefix() string
	Handler() http.Handler
}

// ValidateFilename accepts jpg, jpeg, png, gif and webp, case-insensitively.
func ValidateFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := constant.AllowedImageExtensions[ext]; !ok {
		return ErrUnsupportedMediaType
	}
	return nil
}

// uniqueName replaces the client file name with a UUID, keeping the extension.
func uniqueName(filename string) string {
	return uuid.NewString() + filepath.Ext(filename)
}
