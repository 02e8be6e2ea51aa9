package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/taskmanager-server/internal/config"
	"github.com/dtroode/taskmanager-server/internal/model"
)

const noSuchKey = "NoSuchKey"

// minioAPI is the subset of *minio.Client used here, so tests can run without a server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}

func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}

func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

var _ model.AssetStore = (*AssetStore)(nil)

// AssetStore serves public static assets from a single bucket.
type AssetStore struct {
	api    minioAPI
	bucket string
}

// NewAssetStore connects to MinIO with the configured credentials and ensures the bucket exists.
func NewAssetStore(ctx context.Context, cfg config.Storage) (*AssetStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return NewAssetStoreWithAPI(ctx, minioClientWrapper{c: client}, cfg.Bucket)
}

// NewAssetStoreWithAPI allows injecting a fake API.
func NewAssetStoreWithAPI(ctx context.Context, api minioAPI, bucket string) (*AssetStore, error) {
	s := &AssetStore{
		api:    api,
		bucket: bucket,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return s, nil
}

func (s *AssetStore) ensureBucketExists(ctx context.Context) error {
	exists, err := s.api.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.api.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// Another replica may have created it in the meantime.
		if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Open stats the object and opens it for reading. Missing objects yield model.ErrNotFound.
func (s *AssetStore) Open(ctx context.Context, key string) (model.Asset, error) {
	info, err := s.api.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == noSuchKey {
			return model.Asset{}, fmt.Errorf("asset %q: %w", key, model.ErrNotFound)
		}
		return model.Asset{}, fmt.Errorf("failed to stat object: %w", err)
	}

	body, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to get object: %w", err)
	}

	return model.Asset{
		Body:         body,
		ContentType:  info.ContentType,
		Size:         info.Size,
		ETag:         quoteETag(info.ETag),
		LastModified: info.LastModified,
	}, nil
}

// quoteETag restores the quotes minio-go strips from the ETag header.
func quoteETag(etag string) string {
	if etag == "" || etag[0] == '"' || len(etag) > 2 && etag[:2] == "W/" {
		return etag
	}
	return `"` + etag + `"`
}
