package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/data/repos"
	"github.com/yungbote/portfolio-backend/internal/data/repos/testutil"
	"github.com/yungbote/portfolio-backend/internal/platform/dbctx"
	"github.com/yungbote/portfolio-backend/internal/platform/gcp"
	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type countingNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (n *countingNotifier) SiteChanged(_ context.Context, reason string) {
	n.mu.Lock()
	n.reasons = append(n.reasons, reason)
	n.mu.Unlock()
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.reasons)
}

func (n *countingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.reasons) == 0 {
		return ""
	}
	return n.reasons[len(n.reasons)-1]
}

type storedObject struct {
	category gcp.BucketCategory
	key      string
	data     []byte
}

type fakeBucket struct {
	mu      sync.Mutex
	objects []storedObject
	failPut error
}

func (b *fakeBucket) UploadFile(_ dbctx.Context, category gcp.BucketCategory, key string, file io.Reader) error {
	if b.failPut != nil {
		return b.failPut
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.objects = append(b.objects, storedObject{category: category, key: key, data: data})
	b.mu.Unlock()
	return nil
}

func (b *fakeBucket) DeleteFile(dbctx.Context, gcp.BucketCategory, string) error { return nil }

func (b *fakeBucket) GetObjectAttrs(context.Context, gcp.BucketCategory, string) (*gcp.ObjectAttrs, error) {
	return nil, errors.New("not implemented")
}

func (b *fakeBucket) GetPublicURL(category gcp.BucketCategory, key string) string {
	return "https://cdn.test/" + string(category) + "/" + key
}

func (b *fakeBucket) Close() error { return nil }

type env struct {
	db       *gorm.DB
	log      *logger.Logger
	notifier *countingNotifier
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return &env{db: testutil.DB(t), log: testutil.Logger(t), notifier: &countingNotifier{}}
}

func (e *env) blogs() BlogService {
	return NewBlogService(e.log, repos.NewBlogRepo(e.db, e.log), e.notifier)
}

func (e *env) projects() ProjectService {
	return NewProjectService(e.log, repos.NewProjectRepo(e.db, e.log), e.notifier)
}

func (e *env) skills() SkillService {
	return NewSkillService(e.log, repos.NewSkillRepo(e.db, e.log), e.notifier)
}

func (e *env) settings() SettingsService {
	return NewSettingsService(e.log, repos.NewSettingsRepo(e.db, e.log), e.notifier)
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

func pdfBytes() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")
}

func strPtr(s string) *string { return &s }
