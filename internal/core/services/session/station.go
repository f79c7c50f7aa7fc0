package session

import (
	"fmt"
	"log/slog"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// stationState is the station role's state machine position.
type stationState int

const (
	stationIdle stationState = iota
	stationConnecting
	stationConnected
	stationDisconnecting
)

func (s stationState) String() string {
	switch s {
	case stationConnecting:
		return "connecting"
	case stationConnected:
		return "connected"
	case stationDisconnecting:
		return "disconnecting"
	default:
		return "idle"
	}
}

// stationSession holds the station role's state. A session exists between
// a connect call and the terminal indication of its attempt.
type stationSession struct {
	state   stationState
	cred    domain.Credential
	target  domain.CommonConnectParameters
	bssid   domain.MACAddress
	channel domain.Channel
}

// Connect starts a station connection attempt with a prebuilt credential.
// A prior attempt or association is implicitly cancelled first and gets
// its own terminal indication, so no attempt is ever orphaned. The return
// value only covers validation and submission; the outcome arrives via
// status callback.
func (m *Manager) Connect(common domain.CommonConnectParameters, cred domain.Credential) error {
	if err := common.SSID.Validate(); err != nil {
		return err
	}
	if cred == nil {
		return fmt.Errorf("%w: nil credential", domain.ErrInvalidParam)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readyLocked(); err != nil {
		return err
	}

	if m.station.state == stationConnecting || m.station.state == stationConnected {
		m.teardownStationLocked(domain.DisconnectUnknown)
	}

	if err := m.supp.InstallCredential(cred); err != nil {
		return fmt.Errorf("installing credential: %w", err)
	}
	if err := m.drv.Connect(common); err != nil {
		m.supp.ClearCredential()
		cred.Wipe()
		return fmt.Errorf("submitting connect: %w", err)
	}

	m.station.state = stationConnecting
	m.station.cred = cred
	m.station.target = common
	attemptsStarted.Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusConnecting})
	slog.Info("connecting", "ssid", string(common.SSID), "security", cred.Kind())
	return nil
}

// Disconnect ends the current attempt or association. Valid from any
// state; on an idle session it is a no-op that still reports success.
// Exactly one StatusDisconnected is emitted per attempt, never two.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readyLocked(); err != nil {
		return err
	}
	if m.station.state == stationIdle {
		return nil
	}
	m.teardownStationLocked(domain.DisconnectUnknown)
	return nil
}

// StationConnected reports whether the station session is in Connected
// state. The packet gateway gates transmission on it.
func (m *Manager) StationConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.station.state == stationConnected
}

// StationBSSID returns the BSSID of the current association, or the zero
// address.
func (m *Manager) StationBSSID() domain.MACAddress {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.station.bssid
}

// teardownStationLocked cancels or disconnects the station session and
// posts its single terminal indication. Passes through Disconnecting on
// the way back to Idle.
func (m *Manager) teardownStationLocked(reason domain.DisconnectReason) {
	if m.station.state == stationIdle {
		return
	}
	m.station.state = stationDisconnecting
	if err := m.drv.Disconnect(); err != nil {
		slog.Debug("driver disconnect failed", "error", err)
	}
	m.wipeStationLocked()
	m.station.state = stationIdle
	attemptOutcomes.WithLabelValues("disconnected_" + reason.String()).Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusDisconnected, Reason: reason})
}

// failAttemptLocked ends a Connecting session on an asynchronous failure
// reported by the driver. The driver already gave the attempt up, so no
// disconnect request is issued.
func (m *Manager) failAttemptLocked(reason domain.DisconnectReason) {
	if m.station.state != stationConnecting {
		return // stale event from a cancelled attempt
	}
	m.wipeStationLocked()
	m.station.state = stationIdle
	attemptOutcomes.WithLabelValues("disconnected_" + reason.String()).Inc()
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusDisconnected, Reason: reason})
}

func (m *Manager) handleAssociatedLocked(ev domain.EvAssociated) {
	if m.station.state != stationConnecting {
		return
	}
	m.station.state = stationConnected
	m.station.bssid = ev.BSSID
	m.station.channel = ev.Channel
	attemptOutcomes.WithLabelValues("connected").Inc()
	m.dispatch.Post(domain.StatusIndication{
		Kind:    domain.StatusConnected,
		BSSID:   ev.BSSID,
		Channel: ev.Channel,
	})
	slog.Info("connected", "bssid", ev.BSSID, "channel", ev.Channel)
}

// handleMICFailureLocked drops an established link immediately. The
// session must not remain Connected after an integrity failure, even
// transiently.
func (m *Manager) handleMICFailureLocked() {
	if m.station.state != stationConnected {
		return
	}
	slog.Warn("mic failure, dropping link", "bssid", m.station.bssid)
	m.teardownStationLocked(domain.DisconnectMICFailure)
}

func (m *Manager) handleDeauthenticatedLocked(ev domain.EvDeauthenticated) {
	switch m.station.state {
	case stationConnected:
		slog.Info("deauthenticated by peer", "reason_code", ev.Reason)
		m.teardownStationLocked(domain.DisconnectUnknown)
	case stationConnecting:
		// A deauthentication during the attempt is a connection
		// failure, distinct from the disconnect reasons.
		m.wipeStationLocked()
		m.station.state = stationIdle
		attemptOutcomes.WithLabelValues("connection_failure").Inc()
		m.dispatch.Post(domain.StatusIndication{
			Kind: domain.StatusConnectionFailure,
			Err:  fmt.Sprintf("deauthenticated during attempt (reason code %d)", ev.Reason),
		})
	}
}

// wipeStationLocked clears credential material held for the session.
func (m *Manager) wipeStationLocked() {
	m.supp.ClearCredential()
	if m.station.cred != nil {
		m.station.cred.Wipe()
		m.station.cred = nil
	}
	m.station.bssid = domain.MACAddress{}
	m.station.channel = 0
	m.station.target = domain.CommonConnectParameters{}
}
