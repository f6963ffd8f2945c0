package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/muhammadheryan/property-listing/utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	gridFSPrefix = "/media/"
	gridFSBucket = "images"
)

// GridFSUploader stores images in a MongoDB GridFS bucket served at /media/{id}.
type GridFSUploader struct {
	bucket *gridfs.Bucket
}

func NewGridFSUploader(db *mongo.Database, chunkSize int) (*GridFSUploader, error) {
	opts := options.GridFSBucket().SetName(gridFSBucket)
	if chunkSize > 0 {
		opts.SetChunkSizeBytes(int32(chunkSize))
	}
	bucket, err := gridfs.NewBucket(db, opts)
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &GridFSUploader{bucket: bucket}, nil
}

func (g *GridFSUploader) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uniqueName(filename)
	meta := bson.M{
		"original_name": filename,
		"content_type":  mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))),
	}
	id, err := g.bucket.UploadFromStream(name, r, options.GridFSUpload().SetMetadata(meta))
	if err != nil {
		return "", fmt.Errorf("gridfs upload %s: %w", name, err)
	}
	return gridFSPrefix + id.Hex(), nil
}

func (g *GridFSUploader) Remove(ctx context.Context, ref string) error {
	oid, err := primitive.ObjectIDFromHex(strings.TrimPrefix(ref, gridFSPrefix))
	if err != nil {
		return fmt.Errorf("not a gridfs reference: %q", ref)
	}
	err = g.bucket.DeleteContext(ctx, oid)
	if err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return err
	}
	return nil
}

func (g *GridFSUploader) Prefix() string {
	return gridFSPrefix
}

// Handler streams a stored file back to the client.
func (g *GridFSUploader) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		oid, err := primitive.ObjectIDFromHex(strings.TrimPrefix(r.URL.Path, gridFSPrefix))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		stream, err := g.bucket.OpenDownloadStream(oid)
		if err != nil {
			if !errors.Is(err, gridfs.ErrFileNotFound) {
				logger.Error("[GridFS] err OpenDownloadStream", zap.String("error", err.Error()))
			}
			http.NotFound(w, r)
			return
		}
		defer stream.Close()

		name := stream.GetFile().Name
		if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.Header().Set("Content-Disposition", "inline; filename="+name)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		if _, err := io.Copy(w, stream); err != nil {
			logger.Warn("[GridFS] err streaming file", zap.String("id", oid.Hex()), zap.String("error", err.Error()))
		}
	})
}
