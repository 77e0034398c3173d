// Package objects stores user-uploaded media in an S3-compatible bucket.
package objects

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/duetcal/duetcal-api/internal/config"
	"github.com/duetcal/duetcal-api/internal/logger"
)

// AvatarStore writes avatar images to a MinIO (or any S3-compatible) bucket
// and hands back the object key the user record stores.
type AvatarStore struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// NewAvatarStore connects to the object storage endpoint and makes sure the
// avatar bucket exists.
func NewAvatarStore(ctx context.Context, cfg config.ObjectsConfig) (*AvatarStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	store := &AvatarStore{
		client: client,
		bucket: cfg.Bucket,
		log:    logger.Objects(),
	}

	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	store.log.Info("object storage ready", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return store, nil
}

func (s *AvatarStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	s.log.Info("bucket created", "bucket", s.bucket)
	return nil
}

// Upload stores the avatar under a fresh object key and returns the key. The
// extension of the original filename is kept so content type survives.
func (s *AvatarStore) Upload(ctx context.Context, userID int, filename, contentType string, r io.Reader, size int64) (string, error) {
	key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), path.Ext(filename))

	s.log.Debug("uploading avatar", "user_id", userID, "key", key, "size", size)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("failed to upload avatar", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	s.log.Info("avatar uploaded", "user_id", userID, "key", key)
	return key, nil
}

// Remove deletes a previously uploaded avatar object. Missing objects are not
// an error.
func (s *AvatarStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove avatar object: %w", err)
	}
	return nil
}
