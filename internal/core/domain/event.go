package domain

// DriverEvent is an asynchronous notification from the radio/supplicant
// side. The session manager's event pump is the single consumer; events
// arrive in driver order and are never reordered by the core.
type DriverEvent interface {
	driverEvent()
}

// EvAssociated reports a completed association and key exchange.
type EvAssociated struct {
	BSSID   MACAddress
	Channel Channel
}

// EvAuthTimeout reports an authentication timeout during a connection
// attempt. Timeout detection lives in the driver/supplicant, not here.
type EvAuthTimeout struct{}

// EvNoBSSFound reports that no BSS matched the connect target.
type EvNoBSSFound struct{}

// EvMICFailure reports a message-integrity-check failure on an
// established link.
type EvMICFailure struct{}

// EvDeauthenticated reports a deauthentication frame from the peer.
type EvDeauthenticated struct {
	Reason uint16 // 802.11 reason code, informational only
}

// EvScanResult delivers one discovered BSS of the in-flight scan.
type EvScanResult struct {
	BSS BSSDescriptor
}

// EvScanDone terminates the in-flight scan's result stream.
type EvScanDone struct{}

// EvAPStarted confirms the access point is beaconing.
type EvAPStarted struct{}

// EvAPStartFailed reports that the access point could not be brought up.
type EvAPStartFailed struct {
	Cause string
}

// EvAPStopped confirms the access point is down.
type EvAPStopped struct{}

// EvStationJoined reports a station association while the AP is up.
type EvStationJoined struct {
	MAC MACAddress
}

// EvStationLeft reports a station disassociation while the AP is up.
type EvStationLeft struct {
	MAC MACAddress
}

// EvFrameReceived delivers an inbound Ethernet frame. The driver has
// already filtered to the connected BSS.
type EvFrameReceived struct {
	Frame            []byte
	ChecksumVerified bool
}

// EvDriverFailure reports loss of the radio. Fatal: the subsystem tears
// down every session and requires a fresh Init.
type EvDriverFailure struct {
	Cause string
}

func (EvAssociated) driverEvent()      {}
func (EvAuthTimeout) driverEvent()     {}
func (EvNoBSSFound) driverEvent()      {}
func (EvMICFailure) driverEvent()      {}
func (EvDeauthenticated) driverEvent() {}
func (EvScanResult) driverEvent()      {}
func (EvScanDone) driverEvent()        {}
func (EvAPStarted) driverEvent()       {}
func (EvAPStartFailed) driverEvent()   {}
func (EvAPStopped) driverEvent()       {}
func (EvStationJoined) driverEvent()   {}
func (EvStationLeft) driverEvent()     {}
func (EvFrameReceived) driverEvent()   {}
func (EvDriverFailure) driverEvent()   {}
