package s3_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/config"
	"backoffice/internal/storage/s3"
)

func TestImageStore_PresignedURLUsesPathStyleEndpoint(t *testing.T) {
	store, err := s3.NewImageStore(context.Background(), &config.S3Config{
		Region:    "eu-west-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio-secret",
	})
	require.NoError(t, err)

	url, err := store.GetPresignedURL(context.Background(), "backoffice-images", "images/abc.png", 60)
	require.NoError(t, err)

	assert.Contains(t, url, "http://localhost:9000/backoffice-images/images/abc.png")
	assert.Contains(t, url, "X-Amz-Expires=60")
}
