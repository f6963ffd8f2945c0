package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader pushes images to Cloudinary; references are the secure URLs.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (c *CloudinaryUploader) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}

	name := uniqueName(filename)
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: strings.TrimSuffix(name, path.Ext(name)),
		Folder:   c.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", name, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %s: %s", name, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (c *CloudinaryUploader) Remove(ctx context.Context, ref string) error {
	u, err := url.Parse(ref)
	if err != nil {
		return fmt.Errorf("not a cloudinary reference: %q", ref)
	}
	base := path.Base(u.Path)
	publicID := path.Join(c.folder, strings.TrimSuffix(base, path.Ext(base)))

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Error.Message)
	}
	return nil
}
