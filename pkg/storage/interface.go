// Package storage provides the image store used by the generation and query
// handlers: S3 in the cloud, the local filesystem for development.
package storage

import (
	"context"
	"errors"
	"time"
)

// ContentTypePNG is the content type of every stored image
const ContentTypePNG = "image/png"

var (
	ErrInvalidToken     = errors.New("invalid continuation token")
	ErrInvalidKey       = errors.New("invalid image key")
	ErrNotFound         = errors.New("image not found")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrURLExpired       = errors.New("url expired")
)

// Page is one page of stored keys. NextToken is empty when the listing is exhausted.
type Page struct {
	Keys      []string
	NextToken string
}

// ImageStore defines the interface for persisting and listing images
type ImageStore interface {
	// PutImage writes a PNG under key
	PutImage(ctx context.Context, key string, data []byte) error

	// ListPage returns one page of keys starting after token ("" for the first page)
	ListPage(ctx context.Context, token string) (Page, error)

	// PresignURL returns a time-limited GET URL for key
	PresignURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Ensure both stores implement ImageStore
var (
	_ ImageStore = (*S3Store)(nil)
	_ ImageStore = (*LocalStore)(nil)
)
