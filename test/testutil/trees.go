package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/fhuszti/portfolio-medias-go/internal/storage"
	"github.com/minio/minio-go/v7"
)

// NewBucketTree creates a fresh bucket named after the test and removes it,
// objects included, when the test ends.
func NewBucketTree(t *testing.T, endpoint string) *storage.MinioTree {
	t.Helper()
	ctx := context.Background()

	strg, err := storage.NewMinioClient(endpoint, MinioRootUser, MinioRootPassword, false)
	if err != nil {
		t.Fatalf("minio client: %v", err)
	}
	bucket := bucketName(t.Name())
	tree, err := strg.WithBucket(ctx, bucket)
	if err != nil {
		t.Fatalf("init bucket %q: %v", bucket, err)
	}

	t.Cleanup(func() {
		client, ok := strg.Client.(*minio.Client)
		if !ok {
			return
		}
		for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			if obj.Err == nil {
				_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
			}
		}
		if err := client.RemoveBucket(ctx, bucket); err != nil {
			t.Logf("could not remove bucket %q: %v", bucket, err)
		}
	})
	return tree
}

// NewLocalTree returns a primary tree rooted in a temp dir.
func NewLocalTree(t *testing.T, name string) *storage.LocalTree {
	t.Helper()
	tree, err := storage.NewLocalTree(name, t.TempDir())
	if err != nil {
		t.Fatalf("local tree: %v", err)
	}
	return tree
}

// bucket names are lowercase, 3-63 chars, letters digits and dashes
func bucketName(testName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(testName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("it-%s", strings.TrimRight(name, "-"))
}

// Trees groups the primary and mirror copies used by a test server.
type Trees struct {
	Primary *storage.LocalTree
	Mirror  *storage.LocalTree
}
