package media_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muhammadheryan/property-listing/thirdparty/media"
	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{filename: "photo.jpg"},
		{filename: "photo.JPEG"},
		{filename: "plan.png"},
		{filename: "anim.gif"},
		{filename: "modern.webp"},
		{filename: "malware.exe", wantErr: true},
		{filename: "archive.jpg.zip", wantErr: true},
		{filename: "noextension", wantErr: true},
		{filename: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := media.ValidateFilename(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, media.ErrUnsupportedMediaType)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLocalUploader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	up, err := media.NewLocalUploader(dir, 4)
	require.NoError(t, err)
	require.NoError(t, up.Check(context.Background()))

	ref, err := up.Store(context.Background(), strings.NewReader("fake image bytes"), "Photo.PNG")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "/uploads/"), ref)
	require.True(t, strings.HasSuffix(ref, ".PNG"), ref)
	require.NotContains(t, ref, "Photo")

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(ref)))
	require.NoError(t, err)
	require.Equal(t, "fake image bytes", string(stored))

	// served back under its reference
	mux := http.NewServeMux()
	mux.Handle(up.Prefix(), up.Handler())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, ref, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	require.Equal(t, "fake image bytes", string(body))

	second, err := up.Store(context.Background(), strings.NewReader("x"), "Photo.PNG")
	require.NoError(t, err)
	require.NotEqual(t, ref, second)

	require.NoError(t, up.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(ref)))
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.NoError(t, up.Remove(context.Background(), ref))
}

func TestLocalUploader_RejectsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	up, err := media.NewLocalUploader(dir, 0)
	require.NoError(t, err)

	_, err = up.Store(context.Background(), strings.NewReader("MZ"), "malware.exe")
	require.ErrorIs(t, err, media.ErrUnsupportedMediaType)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
