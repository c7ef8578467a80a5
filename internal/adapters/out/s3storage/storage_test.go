package s3storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"logistics/internal/adapters/out/s3storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const key = "delivery_proofs/7f1c/9a2b.jpg"

func newStorage(t *testing.T, endpoint string) *s3storage.ProofStorage {
	t.Helper()
	client := s3.New(s3.Options{
		Region:       "eu-west-1",
		Credentials:  aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKIDTEST", "secret", "")),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
	})
	return s3storage.NewWithClient(client, s3.NewPresignClient(client), "proofs", 10*time.Minute)
}

func TestProofStorage_PresignUpload(t *testing.T) {
	storage := newStorage(t, "http://minio.local:9000")

	signed, err := storage.PresignUpload(context.Background(), key, "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, signed.Method)
	assert.Equal(t, key, signed.Key)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), signed.ExpiresAt, 5*time.Second)

	u, err := url.Parse(signed.URL)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", u.Host)
	assert.Equal(t, "/proofs/"+key, u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestProofStorage_PresignDownload(t *testing.T) {
	storage := newStorage(t, "http://minio.local:9000")

	signed, err := storage.PresignDownload(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, signed.Method)
	assert.Contains(t, signed.URL, "/proofs/"+key)
}

func TestProofStorage_Exists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/proofs/" + key:
			w.Header().Set("Content-Type", "image/jpeg")
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
		case "/proofs/forbidden.jpg":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	storage := newStorage(t, server.URL)

	t.Run("present", func(t *testing.T) {
		ok, err := storage.Exists(context.Background(), key)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		ok, err := storage.Exists(context.Background(), "delivery_proofs/7f1c/missing.jpg")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("storage error", func(t *testing.T) {
		_, err := storage.Exists(context.Background(), "forbidden.jpg")
		require.Error(t, err)
	})
}
