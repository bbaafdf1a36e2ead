package storage

import (
	"context"
	"time"
)

// Service archives rendered artifacts (chart images) in remote object storage.
type Service interface {
	PutObject(ctx context.Context, bucket, key, contentType string, body []byte) (string, error)
	GetObjectURL(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
