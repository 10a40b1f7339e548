package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
)

// DirSource 本地目录，递归收集所有普通文件
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func (s *DirSource) List(ctx context.Context) ([]Document, error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, s.dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, s.dir)
	}

	var docs []Document
	err = filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		docs = append(docs, Document{
			Name:     filepath.ToSlash(rel),
			Modified: fi.ModTime(),
			open: func(context.Context) (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.dir, err)
	}
	return docs, nil
}

// MinioSource 桶内某个前缀下的所有对象
type MinioSource struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinioSource prefix 为空表示整个桶
func NewMinioSource(client *minio.Client, bucket, prefix string) *MinioSource {
	prefix = strings.TrimPrefix(prefix, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &MinioSource{client: client, bucket: bucket, prefix: prefix}
}

func (s *MinioSource) List(ctx context.Context) ([]Document, error) {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: bucket %s", ErrDirectoryNotFound, s.bucket)
	}

	var docs []Document
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s/%s: %w", s.bucket, s.prefix, obj.Err)
		}
		// 目录占位对象
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		key := obj.Key
		docs = append(docs, Document{
			Name:     strings.TrimPrefix(key, s.prefix),
			Modified: obj.LastModified,
			open: func(ctx context.Context) (io.ReadCloser, error) {
				return s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
			},
		})
	}

	// 对象存储没有真正的目录，前缀下一个对象都没有就视为目录不存在
	if s.prefix != "" && len(docs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrDirectoryNotFound, s.bucket, s.prefix)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
