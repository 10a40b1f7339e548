package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readZip(t *testing.T, b []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)

	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		assert.Equal(t, zip.Deflate, f.Method, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(content)
	}
	return out
}

func TestArchiveService_Dir(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.txt":           "alpha",
		"reports/b.txt":   "bravo",
		"reports/q1/c.md": "charlie",
	}
	writeFiles(t, root, files)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	svc := NewArchiveService(NewDirSource(root))
	archive, err := svc.Prepare(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, archive.Len())

	var buf bytes.Buffer
	require.NoError(t, archive.Stream(context.Background(), &buf))

	assert.Equal(t, files, readZip(t, buf.Bytes()))
}

func TestArchiveService_EmptyDir(t *testing.T) {
	svc := NewArchiveService(NewDirSource(t.TempDir()))
	archive, err := svc.Prepare(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, archive.Stream(context.Background(), &buf))
	assert.Empty(t, readZip(t, buf.Bytes()))
}

func TestArchiveService_MissingDir(t *testing.T) {
	svc := NewArchiveService(NewDirSource(filepath.Join(t.TempDir(), "nope")))
	_, err := svc.Prepare(context.Background())
	require.ErrorIs(t, err, ErrDirectoryNotFound)
	assert.Equal(t, "Documents directory not found.", Message(err, ""))
}

func TestArchiveService_PathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := NewArchiveService(NewDirSource(path)).Prepare(context.Background())
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestArchiveService_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.txt": "alpha"})

	archive, err := NewArchiveService(NewDirSource(root)).Prepare(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = archive.Stream(ctx, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArchiveService_Minio(t *testing.T) {
	endpoint := os.Getenv("TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_MINIO_ENDPOINT not set")
	}
	ctx := context.Background()
	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(os.Getenv("TEST_MINIO_AK"), os.Getenv("TEST_MINIO_SK"), ""),
	})
	require.NoError(t, err)

	bucket := "rag-test-" + randomName()
	require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	t.Cleanup(func() {
		for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
			_ = client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{})
		}
		_ = client.RemoveBucket(ctx, bucket)
	})

	files := map[string]string{"docs/a.txt": "alpha", "docs/sub/b.txt": "bravo", "other/c.txt": "charlie"}
	for key, content := range files {
		_, err := client.PutObject(ctx, bucket, key, bytes.NewReader([]byte(content)), int64(len(content)), minio.PutObjectOptions{})
		require.NoError(t, err)
	}

	archive, err := NewArchiveService(NewMinioSource(client, bucket, "docs")).Prepare(ctx)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, archive.Stream(ctx, &buf))

	got := readZip(t, buf.Bytes())
	names := make([]string, 0, len(got))
	for name := range got {
		names = append(names, name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, names)

	_, err = NewArchiveService(NewMinioSource(client, bucket, "missing")).Prepare(ctx)
	assert.ErrorIs(t, err, ErrDirectoryNotFound)

	_, err = NewArchiveService(NewMinioSource(client, bucket+"-absent", "")).Prepare(ctx)
	assert.ErrorIs(t, err, ErrDirectoryNotFound)
}
