// Package sim is an in-process radio for development and tests. It plays
// back a scripted BSS environment and mirrors the event timing of the
// real firmware: submission calls return immediately, outcomes arrive on
// the event channel.
package sim

import (
	"fmt"
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

// Behavior scripts the outcome of a connection attempt against one SSID.
type Behavior int

const (
	// BehaviorAssociate completes the attempt successfully.
	BehaviorAssociate Behavior = iota
	// BehaviorAuthTimeout lets authentication time out.
	BehaviorAuthTimeout
	// BehaviorSilent accepts the attempt and never resolves it. Scripted
	// runs use Inject to decide the outcome.
	BehaviorSilent
)

// Network is one simulated BSS plus its scripted connect behavior.
type Network struct {
	BSS      domain.BSSDescriptor
	Behavior Behavior
}

// Driver implements ports.Driver against the scripted environment.
type Driver struct {
	mu       sync.Mutex
	networks []Network
	mac      domain.MACAddress

	started   bool
	apFail    string // non-empty: fail AP starts with this cause
	rssi      int16
	channels  domain.ChannelList
	events    chan domain.DriverEvent
	transmits [][]byte

	target *SettingStore
}

var _ ports.Driver = (*Driver)(nil)

// NewDriver creates a radio over the given environment.
func NewDriver(networks []Network) *Driver {
	return &Driver{
		networks: networks,
		mac:      domain.MACAddress{0x02, 0x5b, 0x00, 0xda, 0x1a, 0x01},
		rssi:     -127,
		target:   NewSettingStore(),
	}
}

// SetAPFailure scripts access-point start failures.
func (d *Driver) SetAPFailure(cause string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.apFail = cause
}

func (d *Driver) Start(params domain.StartParameters) (domain.MACAddress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return domain.MACAddress{}, fmt.Errorf("sim: already started")
	}
	if !params.MAC.IsZero() {
		d.mac = params.MAC
	}
	d.started = true
	d.events = make(chan domain.DriverEvent, 256)
	return d.mac, nil
}

func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return nil
	}
	d.started = false
	close(d.events)
	return nil
}

func (d *Driver) Connect(target domain.CommonConnectParameters) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return fmt.Errorf("sim: not started")
	}

	for _, nw := range d.networks {
		if nw.BSS.SSID != target.SSID {
			continue
		}
		if !target.BSSID.IsZero() && nw.BSS.BSSID != target.BSSID {
			continue
		}
		switch nw.Behavior {
		case BehaviorAuthTimeout:
			d.emitLocked(domain.EvAuthTimeout{})
		case BehaviorSilent:
		default:
			d.rssi = int16(nw.BSS.RSSI)
			d.emitLocked(domain.EvAssociated{BSSID: nw.BSS.BSSID, Channel: nw.BSS.Channel})
		}
		return nil
	}
	d.emitLocked(domain.EvNoBSSFound{})
	return nil
}

func (d *Driver) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return nil
}

// Scan streams every matching network in environment order, duplicates
// included, then the completion event.
func (d *Driver) Scan(params domain.ScanParameters, chans domain.ChannelList) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return fmt.Errorf("sim: not started")
	}

	for _, nw := range d.networks {
		if len(params.SSID) > 0 && nw.BSS.SSID != params.SSID {
			continue
		}
		if chans != nil && !chans.Contains(nw.BSS.Channel) {
			continue
		}
		d.emitLocked(domain.EvScanResult{BSS: nw.BSS})
	}
	d.emitLocked(domain.EvScanDone{})
	return nil
}

func (d *Driver) StartAP(common domain.CommonAPParameters, wpa *domain.WPAPSKAPParameters) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return fmt.Errorf("sim: not started")
	}
	if d.apFail != "" {
		d.emitLocked(domain.EvAPStartFailed{Cause: d.apFail})
		return nil
	}
	d.emitLocked(domain.EvAPStarted{})
	return nil
}

func (d *Driver) StopAP() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return nil
}

func (d *Driver) Transmit(frame []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return fmt.Errorf("sim: not started")
	}
	buf := make([]byte, len(frame))
	copy(buf, frame)
	d.transmits = append(d.transmits, buf)
	return nil
}

// TransmitCount reports frames handed to the transmit path.
func (d *Driver) TransmitCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.transmits)
}

func (d *Driver) RSSI() int16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rssi
}

func (d *Driver) SetChannels(list domain.ChannelList) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.channels = list.Clone()
	return nil
}

func (d *Driver) Events() <-chan domain.DriverEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.events
}

func (d *Driver) TargetSettings() ports.SettingStore {
	return d.target
}

// Inject feeds an arbitrary event into the stream, for scripted deauth,
// MIC failure, AP station churn and inbound frames.
func (d *Driver) Inject(ev domain.DriverEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.emitLocked(ev)
}

// Fail simulates radio loss: one fatal event, then the stream closes.
func (d *Driver) Fail(cause string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		return
	}
	d.emitLocked(domain.EvDriverFailure{Cause: cause})
	d.started = false
	close(d.events)
}

// emitLocked drops events when the buffer is full rather than blocking a
// submission call; the buffer is generous enough for any scripted run.
func (d *Driver) emitLocked(ev domain.DriverEvent) {
	select {
	case d.events <- ev:
	default:
	}
}
