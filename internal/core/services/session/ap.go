package session

import (
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// apState is the access-point role's state machine position.
type apState int

const (
	apDown apState = iota
	apStarting
	apUp
	apStopping
)

func (s apState) String() string {
	switch s {
	case apStarting:
		return "starting"
	case apUp:
		return "up"
	case apStopping:
		return "stopping"
	default:
		return "down"
	}
}

// apSession holds the access-point role's state. Up is a single
// macro-state covering zero or more associated stations.
type apSession struct {
	state  apState
	cred   domain.Credential
	config domain.CommonAPParameters
}

// APStart validates the parameters and submits the access-point start.
// StatusAPUp arrives on driver confirmation; a start failure surfaces as
// StatusError and the session stays Down. A channel conflict with an
// active station session is the driver's to arbitrate; its error is
// surfaced verbatim.
func (m *Manager) APStart(common domain.CommonAPParameters, wpa *domain.WPAPSKAPParameters, cred domain.Credential) error {
	if err := common.SSID.Validate(); err != nil {
		return err
	}
	if common.BasicRates&^domain.RateMaskAll != 0 {
		return fmt.Errorf("%w: undefined bits in rate mask %#x", domain.ErrInvalidParam, common.BasicRates)
	}
	if cred == nil {
		return fmt.Errorf("%w: nil credential", domain.ErrInvalidParam)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readyLocked(); err != nil {
		return err
	}
	if !m.chans.Allows(common.Channel) {
		return fmt.Errorf("%w: channel %d not in active channel list", domain.ErrInvalidParam, common.Channel)
	}
	if m.ap.state != apDown {
		return fmt.Errorf("%w: access point is %s", domain.ErrSessionBusy, m.ap.state)
	}

	// The AP credential travels inside the driver start request; the
	// supplicant only serves the station role.
	if err := m.drv.StartAP(common, wpa); err != nil {
		cred.Wipe()
		return fmt.Errorf("submitting ap start: %w", err)
	}

	m.ap.state = apStarting
	m.ap.cred = cred
	m.ap.config = common
	apTransitions.WithLabelValues("starting").Inc()
	slog.Info("ap starting", "ssid", string(common.SSID), "channel", common.Channel, "security", cred.Kind())
	return nil
}

// APStop brings the access point down. A no-op success if it is already
// Down.
func (m *Manager) APStop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readyLocked(); err != nil {
		return err
	}
	if m.ap.state == apDown {
		return nil
	}
	m.teardownAPLocked()
	return nil
}

// APUp reports whether the access point is beaconing.
func (m *Manager) APUp() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ap.state == apUp
}

// teardownAPLocked stops the access point and posts StatusAPDown. Used by
// APStop and the subsystem-wide Stop.
func (m *Manager) teardownAPLocked() {
	if m.ap.state == apDown {
		return
	}
	m.ap.state = apStopping
	if err := m.drv.StopAP(); err != nil {
		slog.Debug("driver ap stop failed", "error", err)
	}
	m.wipeAPLocked()
	m.ap.state = apDown
	apTransitions.WithLabelValues("down").Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusAPDown})
}

func (m *Manager) handleAPStartedLocked() {
	if m.ap.state != apStarting {
		return
	}
	m.ap.state = apUp
	apTransitions.WithLabelValues("up").Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusAPUp})
	slog.Info("ap up", "ssid", string(m.ap.config.SSID))
}

func (m *Manager) handleAPStartFailedLocked(ev domain.EvAPStartFailed) {
	if m.ap.state != apStarting {
		return
	}
	m.wipeAPLocked()
	m.ap.state = apDown
	apTransitions.WithLabelValues("start_failed").Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusError, Err: ev.Cause})
	slog.Error("ap start failed", "cause", ev.Cause)
}

// handleAPStoppedLocked covers a driver-initiated shutdown. A stop the
// core itself requested already went Down synchronously, so this is only
// meaningful from Up.
func (m *Manager) handleAPStoppedLocked() {
	if m.ap.state != apUp {
		return
	}
	m.wipeAPLocked()
	m.ap.state = apDown
	apTransitions.WithLabelValues("down").Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusAPDown})
}

// handleAPStationLocked emits the per-station sub-events. No state
// transition: Up covers any number of associated stations.
func (m *Manager) handleAPStationLocked(kind domain.StatusKind, mac domain.MACAddress) {
	if m.ap.state != apUp {
		return
	}
	m.dispatch.Post(domain.StatusIndication{Kind: kind, MAC: mac})
}

// wipeAPLocked clears access-point credential material.
func (m *Manager) wipeAPLocked() {
	if m.ap.cred != nil {
		m.ap.cred.Wipe()
		m.ap.cred = nil
	}
}
