package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymmate/internal/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeBlacklist 内存版黑名单
type fakeBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]bool)}
}

func (f *fakeBlacklist) Revoke(_ context.Context, signature string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[signature] = true
	return nil
}

func (f *fakeBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[signature], nil
}

// fakeStore 内存版对象存储，记录删除过的对象
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[objectName] = data
	return objectName, nil
}

func (f *fakeStore) Remove(_ context.Context, objectName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, objectName)
	f.removed = append(f.removed, objectName)
	return nil
}

func (f *fakeStore) PublicURL(objectName string) string {
	return "http://store.local/" + objectName
}

func (f *fakeStore) removedObjects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

// fakeMailer 记录发送过的邮件
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	Recipient string
	Template  string
	Data      map[string]string
}

func (f *fakeMailer) Send(_ context.Context, recipient string, template string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{Recipient: recipient, Template: template, Data: data})
	return nil
}
