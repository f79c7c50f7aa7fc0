package domain

// StatusKind enumerates the public status vocabulary. The values cover
// both roles; per-role state machines decide which ones they emit.
type StatusKind int

const (
	StatusStopped StatusKind = iota
	StatusStarted
	StatusError
	StatusDisconnected
	StatusConnecting
	StatusConnected
	StatusConnectionFailure
	StatusAPUp
	StatusAPDown
	StatusAPStaAdded
	StatusAPStaRemoved
)

var statusNames = map[StatusKind]string{
	StatusStopped:           "stopped",
	StatusStarted:           "started",
	StatusError:             "error",
	StatusDisconnected:      "disconnected",
	StatusConnecting:        "connecting",
	StatusConnected:         "connected",
	StatusConnectionFailure: "connection_failure",
	StatusAPUp:              "ap_up",
	StatusAPDown:            "ap_down",
	StatusAPStaAdded:        "ap_sta_added",
	StatusAPStaRemoved:      "ap_sta_removed",
}

func (k StatusKind) String() string {
	if name, ok := statusNames[k]; ok {
		return name
	}
	return "unknown"
}

// DisconnectReason qualifies StatusDisconnected.
type DisconnectReason int

const (
	DisconnectUnknown DisconnectReason = iota
	DisconnectNoBSSIDFound
	DisconnectAuthTimeout
	DisconnectMICFailure
)

func (r DisconnectReason) String() string {
	switch r {
	case DisconnectNoBSSIDFound:
		return "no_bssid_found"
	case DisconnectAuthTimeout:
		return "auth_timeout"
	case DisconnectMICFailure:
		return "mic_failure"
	default:
		return "unknown"
	}
}

// StatusIndication is one entry of the totally ordered status stream
// delivered to every registered subscriber. Only the fields relevant to
// Kind are populated.
type StatusIndication struct {
	Kind StatusKind

	// MAC carries the driver address for StatusStarted and the station
	// address for the AP sta-added/removed events.
	MAC MACAddress

	// BSSID and Channel accompany StatusConnected.
	BSSID   MACAddress
	Channel Channel

	// Reason accompanies StatusDisconnected.
	Reason DisconnectReason

	// Err carries a description for StatusError and
	// StatusConnectionFailure.
	Err string
}
