package model

import (
	"context"
	"io"
	"time"
)

// AssetStore serves static assets from object storage.
type AssetStore interface {
	Open(ctx context.Context, key string) (Asset, error)
}

// Asset is an opened object. Callers must close Body.
type Asset struct {
	Body         io.ReadCloser
	ContentType  string
	Size         int64
	ETag         string
	LastModified time.Time
}
