package storage

import (
	"context"
	"fmt"
	"io"

	"gymmate/internal/api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStore struct {
	client *minio.Client
	cfg    config.MinIOConfig
}

// NewMinioStore 初始化 MinIO 客户端并验证连通性
func NewMinioStore(cfg config.MinIOConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, cfg: cfg}, nil
}

// Upload 上传文件
func (s *MinioStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	uploadInfo, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return uploadInfo.Key, nil
}

// Remove 删除文件
func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL 获取文件的公共访问URL
func (s *MinioStore) PublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	if s.cfg.PublicBase != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.PublicBase, s.cfg.Bucket, objectName)
	}

	protocol := "http"
	if s.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.cfg.Endpoint, s.cfg.Bucket, objectName)
}
