package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/hirehive/hirehive/internal/apperror"
)

// uploadTimeout bounds every transfer to the object store. Uploads are
// never retried — a timeout surfaces as an external-service error and the
// client decides whether to try again.
const uploadTimeout = 30 * time.Second

// Cloudinary implements Uploader against the Cloudinary upload API.
//
// One client is created in the composition root and reused for the
// process lifetime.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

var _ Uploader = (*Cloudinary)(nil)

// NewCloudinary creates a client from a cloudinary:// credential URL.
func NewCloudinary(url string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("storage: creating cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload streams the file into the given folder and returns the HTTPS URL
// of the stored asset. ResourceType "auto" lets the store accept both PDFs
// and images without separate code paths.
func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", apperror.External("file storage", err)
	}
	if res.SecureURL == "" {
		return "", apperror.External("file storage", fmt.Errorf("upload returned no URL"))
	}

	return res.SecureURL, nil
}
