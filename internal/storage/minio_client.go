package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"blogcms/internal/config"
)

// Storage keeps post images in an object store and hands back their public URL.
type Storage interface {
	UploadImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (objectName string, url string, err error)
	DeleteImage(ctx context.Context, objectName string) error
	ObjectNameFromURL(url string) (string, bool)
}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageContentType returns the content type for an accepted image file name.
func ImageContentType(fileName string) (string, bool) {
	contentType, ok := imageContentTypes[strings.ToLower(filepath.Ext(fileName))]
	return contentType, ok
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
	now    func() time.Time
}

// NewMinIOClient connects to MinIO and makes sure the configured bucket exists.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{client: client, config: cfg, now: time.Now}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (string, string, error) {
	contentType, ok := ImageContentType(fileName)
	if !ok {
		return "", "", fmt.Errorf("unsupported image type %q", filepath.Ext(fileName))
	}

	now := m.now()
	objectName := buildObjectName(postID, strings.ToLower(filepath.Ext(fileName)), now)

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"post-id":           fmt.Sprint(postID),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	return objectName, objectURL(m.config, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete image %q: %w", objectName, err)
	}
	return nil
}

// ObjectNameFromURL recovers the object name from a URL this client produced.
// URLs pointing anywhere else report false.
func (m *MinIOClient) ObjectNameFromURL(url string) (string, bool) {
	return objectNameFromURL(m.config, url)
}

func buildObjectName(postID int64, ext string, now time.Time) string {
	return fmt.Sprintf("posts/%d/%d/%02d/%s%s", postID, now.Year(), now.Month(), uuid.New().String(), ext)
}

func objectURL(cfg config.MinIO, objectName string) string {
	return cfg.PublicURL + "/" + path.Join(cfg.BucketName, objectName)
}

func objectNameFromURL(cfg config.MinIO, url string) (string, bool) {
	prefix := cfg.PublicURL + "/" + cfg.BucketName + "/"
	objectName, ok := strings.CutPrefix(url, prefix)
	if !ok || objectName == "" {
		return "", false
	}
	return objectName, true
}
