// Package archive copies generated PDF forms to S3 compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/macormexico/sistema-pnc/internal/config"
)

const prefix = "reports"

// Archiver stores a named document.
type Archiver interface {
	Put(ctx context.Context, name string, data []byte) error
}

// ObjectKey is the storage key of a generated form.
func ObjectKey(name string) string {
	return path.Join(prefix, path.Base(name))
}

// New returns a MinIO backed archiver when ARCHIVE_* is configured, Discard otherwise.
func New(cfg *config.Config) (Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return Discard{}, nil
	}
	return NewMinio(cfg)
}

// Discard drops every document.
type Discard struct{}

func (Discard) Put(context.Context, string, []byte) error { return nil }

// Minio writes documents to a single bucket.
type Minio struct {
	client *minio.Client
	bucket string
	region string
}

func NewMinio(cfg *config.Config) (*Minio, error) {
	client, err := minio.New(cfg.ArchiveEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ArchiveAccessKey, cfg.ArchiveSecretKey, ""),
		Secure: cfg.ArchiveUseSSL,
		Region: cfg.ArchiveRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &Minio{client: client, bucket: cfg.ArchiveBucket, region: cfg.ArchiveRegion}, nil
}

// EnsureBucket creates the archive bucket if it does not exist yet.
func (m *Minio) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: m.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", m.bucket, err)
	}
	return nil
}

func (m *Minio) Put(ctx context.Context, name string, data []byte) error {
	opts := minio.PutObjectOptions{ContentType: "application/pdf"}
	if _, err := m.client.PutObject(ctx, m.bucket, ObjectKey(name), bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

// Memory keeps documents in a map. Used by tests and local runs.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func (m *Memory) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[ObjectKey(name)] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[key]
	return d, ok
}

func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.docs))
	for k := range m.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
