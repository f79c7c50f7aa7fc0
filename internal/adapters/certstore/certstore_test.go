package certstore

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	material := []byte("-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.pem"), material, 0o600))

	s := NewDirStore(dir)
	rc, err := s.Open("client.pem")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, material, got)
}

func TestDirStoreRejectsTraversal(t *testing.T) {
	s := NewDirStore(t.TempDir())

	for _, ref := range []string{"", "..", "../secrets", "a/b", `a\b`} {
		_, err := s.Open(domain.CertRef(ref))
		assert.Error(t, err, "reference %q must be rejected", ref)
	}
}

func TestDirStoreMissingFile(t *testing.T) {
	s := NewDirStore(t.TempDir())
	_, err := s.Open("absent.pem")
	assert.Error(t, err)
}

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	s.Put("key", []byte("secret material"))

	rc, err := s.Open("key")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret material"), got)
	require.NoError(t, rc.Close())

	_, err = s.Open("missing")
	assert.Error(t, err)
}

func TestMemStorePutCopies(t *testing.T) {
	s := NewMemStore()
	material := []byte("original")
	s.Put("key", material)
	material[0] = 'X'

	rc, err := s.Open("key")
	require.NoError(t, err)
	got, _ := io.ReadAll(rc)
	assert.Equal(t, []byte("original"), got)
}
