package ports

import (
	"io"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// Driver is the radio control surface. One radio instance underlies the
// whole subsystem; callers serialize access to it.
type Driver interface {
	// Start brings the radio up and returns its effective MAC address.
	Start(params domain.StartParameters) (domain.MACAddress, error)
	// Stop tears the radio down. The event channel is closed afterwards.
	Stop() error

	// Connect submits a station connection attempt. The outcome arrives
	// asynchronously on the event channel.
	Connect(target domain.CommonConnectParameters) error
	// Disconnect aborts the current attempt or association, if any.
	Disconnect() error

	// Scan starts a BSS scan over the given channels. Results stream as
	// EvScanResult events, terminated by EvScanDone.
	Scan(params domain.ScanParameters, channels domain.ChannelList) error

	// StartAP brings up beaconing with the given configuration.
	StartAP(common domain.CommonAPParameters, wpa *domain.WPAPSKAPParameters) error
	// StopAP brings the access point down.
	StopAP() error

	// Transmit sends one Ethernet frame. Gating on connection state is
	// the caller's concern.
	Transmit(frame []byte) error

	// RSSI returns the last sampled signal strength in dBm. The value
	// is stale when not connected; no error is defined.
	RSSI() int16

	// SetChannels installs the active channel list used for connecting
	// and scanning.
	SetChannels(list domain.ChannelList) error

	// Events is the single asynchronous notification stream. Closed on
	// Stop or on fatal driver failure (after an EvDriverFailure).
	Events() <-chan domain.DriverEvent

	// TargetSettings exposes the driver's numeric setting store for the
	// ioctl pass-through ranges.
	TargetSettings() SettingStore
}

// Supplicant is the 802.1X/EAP handshake engine. Credentials are injected
// before a connect and cleared on disconnect; handshake results come back
// through the driver event stream.
type Supplicant interface {
	InstallCredential(cred domain.Credential) error
	ClearCredential()
}

// CertStore resolves opaque certificate/private-key references to byte
// streams. The core never parses the material.
type CertStore interface {
	Open(ref domain.CertRef) (io.ReadCloser, error)
}

// SettingStore is a numeric-keyed get/set store backing the ioctl
// pass-through ranges.
type SettingStore interface {
	Get(id uint32) (uint32, error)
	Set(id uint32, value uint32) error
}

// SurveyRecorder persists scan sightings. Optional; a nil recorder
// disables the tee without affecting the result stream.
type SurveyRecorder interface {
	RecordSighting(bss domain.BSSDescriptor) error
	Close() error
}
