package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// UploadResult is the subset of the Cloudinary upload response exposed to
// callers
type UploadResult struct {
	URL      string
	PublicID string
	Bytes    int
	Format   string
	Width    int
	Height   int
}

// Client wraps a Cloudinary account for image uploads
type Client struct {
	cld *cloudinary.Cloudinary
}

// NewClient builds a Client from a cloudinary:// URL
func NewClient(cloudinaryURL string) (*Client, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &Client{cld: cld}, nil
}

// UploadImage stores the image under the messages folder with a generated
// public ID and returns the hosted URL and metadata.
func (c *Client) UploadImage(ctx context.Context, r io.Reader) (*UploadResult, error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       "messages",
		PublicID:     uuid.NewString(),
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Bytes:    resp.Bytes,
		Format:   resp.Format,
		Width:    resp.Width,
		Height:   resp.Height,
	}, nil
}
