package minio

import (
	"context"
	"testing"

	"github.com/hupe1980/matchgo/rulestore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-matchgo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Put and Get
	data := []byte("rule set document")
	require.NoError(t, store.Put(ctx, "rules.snap", data))

	got, err := store.Get(ctx, "rules.snap")
	require.NoError(t, err)
	require.Equal(t, data, got)

	// List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "rules.snap")

	// Delete, then verify gone
	require.NoError(t, store.Delete(ctx, "rules.snap"))

	_, err = store.Get(ctx, "rules.snap")
	assert.ErrorIs(t, err, rulestore.ErrNotFound)
}
