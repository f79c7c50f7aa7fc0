// Package certstore serves opaque certificate and private-key streams.
// The core never parses the material; references resolve to readers here
// and nowhere else.
package certstore

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// DirStore resolves references as file names under one directory.
type DirStore struct {
	dir string
}

var _ ports.CertStore = (*DirStore)(nil)

// NewDirStore serves streams from dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Open(ref domain.CertRef) (io.ReadCloser, error) {
	name := string(ref)
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") || name == ".." {
		return nil, fmt.Errorf("invalid certificate reference %q", ref)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("opening certificate %q: %w", ref, err)
	}
	return f, nil
}

// MemStore holds material in memory; handy for tests.
type MemStore struct {
	mu      sync.RWMutex
	entries map[domain.CertRef][]byte
}

var _ ports.CertStore = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[domain.CertRef][]byte)}
}

// Put installs material under ref.
func (s *MemStore) Put(ref domain.CertRef, material []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[ref] = append([]byte(nil), material...)
}

func (s *MemStore) Open(ref domain.CertRef) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	material, ok := s.entries[ref]
	if !ok {
		return nil, fmt.Errorf("unknown certificate reference %q", ref)
	}
	return io.NopCloser(bytes.NewReader(material)), nil
}
