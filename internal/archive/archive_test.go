package archive

import (
	"context"
	"testing"

	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "reports/PNC_F-1.pdf", ObjectKey("PNC_F-1.pdf"))
	assert.Equal(t, "reports/PNC_x.pdf", ObjectKey("../../PNC_x.pdf"))
}

func TestNewWithoutEndpointDiscards(t *testing.T) {
	a, err := New(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, Discard{}, a)
	assert.NoError(t, a.Put(context.Background(), "PNC_1.pdf", []byte("%PDF")))
}

func TestNewWithEndpointBuildsMinioClient(t *testing.T) {
	a, err := New(&config.Config{
		ArchiveEndpoint:  "localhost:9000",
		ArchiveAccessKey: "minio",
		ArchiveSecretKey: "minio123",
		ArchiveBucket:    "pnc-forms",
	})
	require.NoError(t, err)
	m, ok := a.(*Minio)
	require.True(t, ok)
	assert.Equal(t, "pnc-forms", m.bucket)
}

func TestMemoryArchive(t *testing.T) {
	m := NewMemory()
	data := []byte("%PDF-1.3")
	require.NoError(t, m.Put(context.Background(), "PNC_F-9.pdf", data))
	data[0] = 'X'

	got, ok := m.Get("reports/PNC_F-9.pdf")
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.3", string(got))
	assert.Equal(t, []string{"reports/PNC_F-9.pdf"}, m.Keys())
}
