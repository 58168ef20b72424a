package objectstore

import (
	"bytes"
	"context"
	"fmt"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Mirror uploads RawCapture artifacts to an object-store bucket, keeping a
// queryable copy of the raw layer outside the worker's filesystem.
type Mirror struct {
	client *miniogo.Client
	bucket string
}

type MirrorConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

func NewMirror(cfg MirrorConfig) (*Mirror, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &Mirror{client: client, bucket: cfg.Bucket}, nil
}

func (m *Mirror) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, miniogo.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", m.bucket, err)
		}
	}
	return nil
}

func (m *Mirror) Upload(ctx context.Context, videoName string, data []byte) error {
	key := videoName + ".json"
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload artifact %s: %w", key, err)
	}
	return nil
}
