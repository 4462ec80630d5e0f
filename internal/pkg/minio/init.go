package minio

import (
	"axis6/internal/api/config"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client is the global MinIO client instance.
	Client *minio.Client
	// AvatarBucket stores profile avatars.
	AvatarBucket string
)

// Init initializes the MinIO client and ensures the avatar bucket.
func Init() error {
	cfg := config.Cfg.MinIO

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.AvatarBucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.AvatarBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create avatar bucket: %w", err)
		}
	}

	Client = client
	AvatarBucket = cfg.AvatarBucket
	return nil
}
