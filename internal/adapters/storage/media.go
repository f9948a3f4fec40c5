package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"shaadicircle/internal/domain"
)

// MinioConfig holds configuration for the MinIO media store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is the origin clients fetch media from, e.g.
	// http://localhost:9000.
	PublicBaseURL string
}

type minioStore struct {
	client *minio.Client
	config MinioConfig
}

// NewMinioStore returns a domain.MediaStore backed by a MinIO (or any
// S3-compatible) bucket.
func NewMinioStore(config MinioConfig) (domain.MediaStore, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &minioStore{client: client, config: config}, nil
}

func (m *minioStore) Store(ctx context.Context, shaadiID, fileName string, file io.Reader, size int64) (*domain.StoredMedia, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}
	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("shaadis/%s/%d/%02d/%s%s",
		shaadiID, now.Year(), now.Month(), uuid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.config.Bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"shaadi-id":         shaadiID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return nil, fmt.Errorf("upload to minio: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(m.config.PublicBaseURL, "/"), m.config.Bucket, objectName)
	return &domain.StoredMedia{URL: url, Key: objectName}, nil
}

func (m *minioStore) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.config.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}
