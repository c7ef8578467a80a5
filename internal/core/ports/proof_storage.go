package ports

import (
	"context"
	"time"
)

// PresignedURL is a time-limited URL to an object in proof storage.
type PresignedURL struct {
	URL       string
	Method    string
	Key       string
	ExpiresAt time.Time
}

// ProofStorage keeps delivery proof images. The core only stores object keys.
type ProofStorage interface {
	PresignUpload(ctx context.Context, key, contentType string) (PresignedURL, error)
	PresignDownload(ctx context.Context, key string) (PresignedURL, error)
	Exists(ctx context.Context, key string) (bool, error)
}
