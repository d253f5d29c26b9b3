// Package gallery lists stored images as time-limited URLs, one page at a time.
package gallery

import (
	"context"
	"time"

	"github.com/gomcpgo/cloud_ai/pkg/storage"
	"github.com/gomcpgo/cloud_ai/pkg/types"
	"go.uber.org/zap"
)

// DefaultURLTTL is how long presigned URLs stay valid
const DefaultURLTTL = 3600 * time.Second

// Error codes
const (
	CodeListFailed    = "list_failed"
	CodePresignFailed = "presign_failed"
)

// GalleryError represents an error while listing images
type GalleryError struct {
	Code    string
	Message string
	Err     error
}

func (e GalleryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e GalleryError) Unwrap() error {
	return e.Err
}

// Gallery pages through the image store
type Gallery struct {
	store  storage.ImageStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewGallery creates a gallery; a zero ttl uses DefaultURLTTL
func NewGallery(store storage.ImageStore, ttl time.Duration, logger *zap.Logger) *Gallery {
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &Gallery{store: store, ttl: ttl, logger: logger}
}

// List returns a URL for every key on the page after token. NextToken is nil
// once the listing is exhausted.
func (g *Gallery) List(ctx context.Context, req types.ListImagesRequest) (*types.ListImagesResponse, error) {
	page, err := g.store.ListPage(ctx, req.NextToken)
	if err != nil {
		return nil, GalleryError{Code: CodeListFailed, Message: "failed to list images", Err: err}
	}

	urls := make([]string, 0, len(page.Keys))
	for _, key := range page.Keys {
		u, err := g.store.PresignURL(ctx, key, g.ttl)
		if err != nil {
			return nil, GalleryError{Code: CodePresignFailed, Message: "failed to presign " + key, Err: err}
		}
		urls = append(urls, u)
	}

	resp := &types.ListImagesResponse{Images: urls}
	if page.NextToken != "" {
		next := page.NextToken
		resp.NextToken = &next
	}

	g.logger.Debug("Listed images",
		zap.Int("count", len(urls)),
		zap.Bool("has_more", resp.NextToken != nil))

	return resp, nil
}
