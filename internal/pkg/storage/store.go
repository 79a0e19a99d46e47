package storage

import (
	"context"
	"io"
)

// ObjectStore 头像与动作图片的对象存储
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}
