package domain

import (
	"context"
	"io"
)

// StoredMedia is the result of storing a media file: the public URL the
// content store keeps, and the storage key used for deletion.
type StoredMedia struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// MediaStore is the blob-storage port. The content store only keeps URLs; it
// is indifferent to whether storage is local disk, MinIO, or S3.
type MediaStore interface {
	Store(ctx context.Context, shaadiID, fileName string, file io.Reader, size int64) (*StoredMedia, error)
	Delete(ctx context.Context, key string) error
}
