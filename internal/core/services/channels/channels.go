// Package channels tracks the requested, regulatory-filtered and active
// channel lists for the single radio.
package channels

import (
	"fmt"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

var (
	channels24 = domain.ChannelList{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	channels5  = domain.ChannelList{36, 40, 44, 48, 52, 56, 60, 64, 100, 104, 108, 112, 116, 120, 124, 128, 132, 136, 140, 149, 153, 157, 161, 165}

	// Per-domain allow tables. Filtering only; detecting the active
	// domain is the driver's job.
	allowTables = map[domain.RegulatoryDomain]domain.ChannelList{
		domain.DomainWorld: concat(channels24[:11], channels5),
		domain.DomainFCC:   concat(channels24[:11], channels5),
		domain.DomainETSI:  concat(channels24, domain.ChannelList{36, 40, 44, 48, 52, 56, 60, 64, 100, 104, 108, 112, 116, 120, 124, 128, 132, 136, 140}),
		domain.DomainTELEC: concat(channels24, domain.ChannelList{36, 40, 44, 48, 52, 56, 60, 64, 100, 104, 108, 112, 116, 120, 124, 128, 132, 136, 140}),
	}
)

func concat(lists ...domain.ChannelList) domain.ChannelList {
	var out domain.ChannelList
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// DefaultList returns the full channel list for the given domain.
func DefaultList(dom domain.RegulatoryDomain) domain.ChannelList {
	return allowTables[dom].Clone()
}

// Applier receives the filtered list when it changes; in production this
// is the driver.
type Applier func(list domain.ChannelList) error

// Manager holds the three channel list views. Requested and active are
// separate fields and never alias each other.
type Manager struct {
	mu        sync.RWMutex
	domain    domain.RegulatoryDomain
	requested domain.ChannelList // nil means "default"
	active    domain.ChannelList
	apply     Applier
}

// NewManager creates a manager for the given regulatory domain. The
// active list starts as the domain default.
func NewManager(dom domain.RegulatoryDomain, apply Applier) (*Manager, error) {
	if _, ok := allowTables[dom]; !ok {
		return nil, fmt.Errorf("%w: unknown regulatory domain %q", domain.ErrInvalidParam, dom)
	}
	m := &Manager{
		domain: dom,
		active: DefaultList(dom),
		apply:  apply,
	}
	return m, nil
}

// Set installs a new requested list. A nil or empty list restores the
// default. The active list becomes the intersection of the requested list
// and the regulatory allow table, and is pushed to the applier.
func (m *Manager) Set(list domain.ChannelList) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	allowed := allowTables[m.domain]
	if len(list) == 0 {
		m.requested = nil
		m.active = allowed.Clone()
	} else {
		for _, ch := range list {
			if ch == 0 {
				return fmt.Errorf("%w: channel 0", domain.ErrInvalidParam)
			}
		}
		filtered := list.Intersect(allowed)
		if len(filtered) == 0 {
			return fmt.Errorf("%w: no requested channel allowed in domain %q", domain.ErrInvalidParam, m.domain)
		}
		m.requested = list.Clone()
		m.active = filtered
	}

	if m.apply != nil {
		if err := m.apply(m.active.Clone()); err != nil {
			return fmt.Errorf("applying channel list: %w", err)
		}
	}
	return nil
}

// Get returns the requested list, or the domain default if none was set.
func (m *Manager) Get() domain.ChannelList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.requested == nil {
		return DefaultList(m.domain)
	}
	return m.requested.Clone()
}

// GetActive returns the regulatory-filtered list the driver currently
// uses.
func (m *Manager) GetActive() domain.ChannelList {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active.Clone()
}

// Allows reports whether the channel is usable under the active list.
func (m *Manager) Allows(ch domain.Channel) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active.Contains(ch)
}
