// Package s3storage keeps delivery proofs in an S3 compatible bucket. Clients
// upload and download directly through presigned URLs.
package s3storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"logistics/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const DefaultURLTTL = 15 * time.Minute

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	URLTTL    time.Duration
}

// ObjectAPI is the part of the s3 client used here.
type ObjectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Presigner signs object requests without sending them.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ProofStorage implements ports.ProofStorage.
type ProofStorage struct {
	objects   ObjectAPI
	presigner Presigner
	bucket    string
	ttl       time.Duration
	now       func() time.Time
}

// New loads the default AWS credential chain unless keys are configured. A
// custom endpoint switches to path-style addressing for MinIO and friends.
func New(ctx context.Context, cfg Config) (*ProofStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not configured")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, s3.NewPresignClient(client), cfg.Bucket, cfg.URLTTL), nil
}

func NewWithClient(objects ObjectAPI, presigner Presigner, bucket string, ttl time.Duration) *ProofStorage {
	if ttl <= 0 {
		ttl = DefaultURLTTL
	}
	return &ProofStorage{
		objects:   objects,
		presigner: presigner,
		bucket:    bucket,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *ProofStorage) PresignUpload(ctx context.Context, key, contentType string) (ports.PresignedURL, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return ports.PresignedURL{}, fmt.Errorf("presign upload of %s: %w", key, err)
	}
	return s.result(req, key), nil
}

func (s *ProofStorage) PresignDownload(ctx context.Context, key string) (ports.PresignedURL, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return ports.PresignedURL{}, fmt.Errorf("presign download of %s: %w", key, err)
	}
	return s.result(req, key), nil
}

func (s *ProofStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.objects.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return false, nil
	}
	return false, fmt.Errorf("head %s: %w", key, err)
}

func (s *ProofStorage) result(req *v4.PresignedHTTPRequest, key string) ports.PresignedURL {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	return ports.PresignedURL{
		URL:       req.URL,
		Method:    method,
		Key:       key,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
}
