package sim

import (
	"fmt"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// SettingStore is an in-memory numeric setting store for the ioctl
// pass-through ranges. Unknown ids error on get; set creates.
type SettingStore struct {
	mu       sync.Mutex
	settings map[uint32]uint32
}

var _ ports.SettingStore = (*SettingStore)(nil)

// NewSettingStore returns an empty store.
func NewSettingStore() *SettingStore {
	return &SettingStore{settings: make(map[uint32]uint32)}
}

func (s *SettingStore) Get(id uint32) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[id]
	if !ok {
		return 0, fmt.Errorf("sim: no setting %d", id)
	}
	return v, nil
}

func (s *SettingStore) Set(id uint32, value uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[id] = value
	return nil
}
