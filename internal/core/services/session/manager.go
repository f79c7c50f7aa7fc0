// Package session owns the per-role connection state machines and the
// event pump that maps driver/supplicant events onto the public status
// vocabulary.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
	"github.com/lcalzada-xor/wland/internal/core/services/callback"
	"github.com/lcalzada-xor/wland/internal/core/services/channels"
	"github.com/lcalzada-xor/wland/internal/core/services/packet"
	"github.com/lcalzada-xor/wland/internal/core/services/scan"
)

var (
	attemptsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_station_attempts_total",
		Help: "Station connection attempts submitted to the driver",
	})
	attemptOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wland_station_outcomes_total",
		Help: "Terminal station attempt outcomes",
	}, []string{"outcome"})
	apTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wland_ap_transitions_total",
		Help: "Access point lifecycle transitions",
	}, []string{"transition"})
	driverFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_driver_failures_total",
		Help: "Fatal driver losses observed",
	})
)

// Manager sequences the station and access-point state machines over the
// single radio. All state mutation happens under one mutex; all status
// emission goes through the dispatcher queue, so subscribers observe one
// total order.
type Manager struct {
	mu sync.Mutex

	drv      ports.Driver
	supp     ports.Supplicant
	chans    *channels.Manager
	dispatch *callback.Dispatcher

	scans   *scan.Coordinator
	gateway *packet.Gateway

	started bool
	failed  bool
	mac     domain.MACAddress

	station stationSession
	ap      apSession

	pumpDone chan struct{}
}

// NewManager wires the state machines with their collaborators. recorder
// may be nil to disable the scan survey tee.
func NewManager(drv ports.Driver, supp ports.Supplicant, chans *channels.Manager, dispatch *callback.Dispatcher, recorder ports.SurveyRecorder) *Manager {
	m := &Manager{
		drv:      drv,
		supp:     supp,
		chans:    chans,
		dispatch: dispatch,
	}
	m.scans = scan.NewCoordinator(m.startScan, recorder)
	m.gateway = packet.NewGateway(drv.Transmit, m.StationConnected, dispatch.Registry().DispatchPacket)
	return m
}

// Scans exposes the scan coordinator to the facade.
func (m *Manager) Scans() *scan.Coordinator { return m.scans }

// Gateway exposes the packet gateway to the facade.
func (m *Manager) Gateway() *packet.Gateway { return m.gateway }

// Start brings up the driver, emits StatusStarted and launches the event
// pump. The whole subsystem's lifecycle is bracketed by Start and Stop.
func (m *Manager) Start(params domain.StartParameters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("%w: already started", domain.ErrSessionBusy)
	}

	mac, err := m.drv.Start(params)
	if err != nil {
		return fmt.Errorf("starting driver: %w", err)
	}

	m.started = true
	m.failed = false
	m.mac = mac
	m.station = stationSession{}
	m.ap = apSession{}
	m.pumpDone = make(chan struct{})
	go m.pump(m.drv.Events())

	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusStarted, MAC: mac})
	slog.Info("wlan started", "mac", mac)
	return nil
}

// Stop destroys both sessions, clears credential material and stops the
// driver. In-flight attempts still get their terminal indication, then
// StatusStopped closes the stream.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return nil
	}
	m.teardownStationLocked(domain.DisconnectUnknown)
	m.teardownAPLocked()
	m.started = false
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusStopped})
	pumpDone := m.pumpDone
	m.mu.Unlock()

	// The coordinator still owes its requester the terminal indication.
	m.scans.Abort()

	if err := m.drv.Stop(); err != nil {
		slog.Error("driver stop failed", "error", err)
	}
	<-pumpDone
	slog.Info("wlan stopped")
	return nil
}

// readyLocked gates mutating calls on subsystem state. After a fatal
// driver failure the error names the cause; errors.Is(err, ErrNotStarted)
// holds either way.
func (m *Manager) readyLocked() error {
	if m.failed {
		return fmt.Errorf("%w: driver lost, reinit required", domain.ErrNotStarted)
	}
	if !m.started {
		return domain.ErrNotStarted
	}
	return nil
}

// Started reports whether the subsystem is up and the driver healthy.
func (m *Manager) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// RSSI returns the driver's last sampled value. Meaningful only while
// connected; a stale value from a prior session is returned otherwise.
func (m *Manager) RSSI() int16 {
	return m.drv.RSSI()
}

// startScan is the scan coordinator's submission seam.
func (m *Manager) startScan(params domain.ScanParameters) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.readyLocked(); err != nil {
		return err
	}
	return m.drv.Scan(params, m.chans.GetActive())
}

// pump is the single consumer of the driver event stream. Scan and data
// frames bypass the session lock; everything else mutates machine state.
func (m *Manager) pump(events <-chan domain.DriverEvent) {
	defer close(m.pumpDone)
	for ev := range events {
		switch ev := ev.(type) {
		case domain.EvScanResult:
			m.scans.HandleResult(ev.BSS)
		case domain.EvScanDone:
			m.scans.HandleDone()
		case domain.EvFrameReceived:
			m.gateway.HandleInbound(ev.Frame, ev.ChecksumVerified)
		case domain.EvDriverFailure:
			m.handleDriverFailure(ev.Cause)
		default:
			m.mu.Lock()
			if m.started {
				m.handleSessionEventLocked(ev)
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) handleSessionEventLocked(ev domain.DriverEvent) {
	switch ev := ev.(type) {
	case domain.EvAssociated:
		m.handleAssociatedLocked(ev)
	case domain.EvAuthTimeout:
		m.failAttemptLocked(domain.DisconnectAuthTimeout)
	case domain.EvNoBSSFound:
		m.failAttemptLocked(domain.DisconnectNoBSSIDFound)
	case domain.EvMICFailure:
		m.handleMICFailureLocked()
	case domain.EvDeauthenticated:
		m.handleDeauthenticatedLocked(ev)
	case domain.EvAPStarted:
		m.handleAPStartedLocked()
	case domain.EvAPStartFailed:
		m.handleAPStartFailedLocked(ev)
	case domain.EvAPStopped:
		m.handleAPStoppedLocked()
	case domain.EvStationJoined:
		m.handleAPStationLocked(domain.StatusAPStaAdded, ev.MAC)
	case domain.EvStationLeft:
		m.handleAPStationLocked(domain.StatusAPStaRemoved, ev.MAC)
	default:
		slog.Debug("unhandled driver event", "event", fmt.Sprintf("%T", ev))
	}
}

// handleDriverFailure tears the whole subsystem down. A fresh Start is
// required afterwards.
func (m *Manager) handleDriverFailure(cause string) {
	driverFailures.Inc()
	m.mu.Lock()
	m.wipeStationLocked()
	m.wipeAPLocked()
	m.station.state = stationIdle
	m.ap.state = apDown
	m.started = false
	m.failed = true
	m.dispatch.Post(domain.StatusIndication{Kind: domain.StatusError, Err: cause})
	m.mu.Unlock()

	m.scans.Abort()
	slog.Error("driver lost", "cause", cause)
}
