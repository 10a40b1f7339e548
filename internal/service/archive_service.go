package service

import (
	"archive/zip"
	"compress/flate"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

// Document 打包清单中的一个条目
type Document struct {
	// Name zip 内的相对路径，统一使用 "/"
	Name     string
	Modified time.Time
	open     func(ctx context.Context) (io.ReadCloser, error)
}

// DocumentSource 待打包文档的来源 (本地目录 / MinIO)
type DocumentSource interface {
	// List 源不存在时返回 ErrDirectoryNotFound
	List(ctx context.Context) ([]Document, error)
}

// ArchiveService 把文档源流式打包为 zip
type ArchiveService struct {
	source DocumentSource
}

func NewArchiveService(source DocumentSource) *ArchiveService {
	return &ArchiveService{source: source}
}

// Archive 已确认存在的文档清单，尚未写出任何字节
type Archive struct {
	docs []Document
}

func (a *Archive) Len() int { return len(a.docs) }

// Prepare 在写响应头之前检查文档源
func (s *ArchiveService) Prepare(ctx context.Context) (*Archive, error) {
	docs, err := s.source.List(ctx)
	if err != nil {
		if errors.Is(err, ErrDirectoryNotFound) {
			return nil, &Error{Kind: ErrDirectoryNotFound, Msg: "Documents directory not found.", Err: err}
		}
		return nil, &Error{Kind: ErrArchive, Msg: "Error creating archive", Err: err}
	}
	return &Archive{docs: docs}, nil
}

// Stream 逐个文件压缩 (Deflate) 写入 w，不在内存中缓存整个压缩包
func (a *Archive) Stream(ctx context.Context, w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	for _, doc := range a.docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeEntry(ctx, zw, doc); err != nil {
			return fmt.Errorf("archiving %s: %w", doc.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	log.Ctx(ctx).Info().Int("files", len(a.docs)).Msg("documents archive streamed")
	return nil
}

func writeEntry(ctx context.Context, zw *zip.Writer, doc Document) error {
	rc, err := doc.open(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	hdr := &zip.FileHeader{
		Name:     doc.Name,
		Method:   zip.Deflate,
		Modified: doc.Modified,
	}
	fw, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, rc)
	return err
}
