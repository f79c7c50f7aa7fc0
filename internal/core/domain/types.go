package domain

import (
	"fmt"
	"strings"
)

// Limits shared by connect parameter validation. They mirror the wire
// format of the radio firmware and must not be raised without a firmware
// change.
const (
	MaxSSIDLength       = 32
	MaxUsernameLength   = 64
	MaxPassphraseLength = 64
	MaxDomainLength     = 64
	MinPassphraseLength = 8
	PSKLength           = 32
)

// MACAddress is a 48-bit hardware address. The zero value means
// "unspecified" (any BSSID on connect, hardware-programmed address on
// start).
type MACAddress [6]byte

// BroadcastAddress is the all-ones MAC.
var BroadcastAddress = MACAddress{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

// IsZero reports whether the address is the unspecified address.
func (m MACAddress) IsZero() bool {
	return m == MACAddress{}
}

func (m MACAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// SSID is a network name, 1..32 bytes. Arbitrary bytes are legal per
// 802.11; printability is not assumed anywhere in the core.
type SSID string

// Validate checks the 802.11 length constraints.
func (s SSID) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty ssid", ErrInvalidParam)
	}
	if len(s) > MaxSSIDLength {
		return fmt.Errorf("%w: ssid longer than %d bytes", ErrInvalidParam, MaxSSIDLength)
	}
	return nil
}

// Channel is an IEEE 802.11 channel number (2.4 GHz and 5 GHz bands share
// the same number space here, as in the radio firmware).
type Channel uint8

// ChannelList is an ordered set of channels. A nil list means "driver
// default".
type ChannelList []Channel

// Contains reports whether ch is in the list.
func (l ChannelList) Contains(ch Channel) bool {
	for _, c := range l {
		if c == ch {
			return true
		}
	}
	return false
}

// Intersect returns the channels of l also present in other, preserving
// l's order.
func (l ChannelList) Intersect(other ChannelList) ChannelList {
	var out ChannelList
	for _, c := range l {
		if other.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns an independent copy so that requested and active views are
// never aliased.
func (l ChannelList) Clone() ChannelList {
	if l == nil {
		return nil
	}
	out := make(ChannelList, len(l))
	copy(out, l)
	return out
}

func (l ChannelList) String() string {
	parts := make([]string, len(l))
	for i, c := range l {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}

// RegulatoryDomain selects a channel-allow table. Only list filtering is
// done here; domain detection belongs to the driver.
type RegulatoryDomain string

const (
	DomainWorld RegulatoryDomain = "world"
	DomainFCC   RegulatoryDomain = "fcc"
	DomainETSI  RegulatoryDomain = "etsi"
	DomainTELEC RegulatoryDomain = "telec"
)

// RateMask is a bit field of 802.11 rates.
type RateMask uint32

// Basic 802.11b/g rate bits, lowest rates first.
const (
	Rate1Mbit RateMask = 1 << iota
	Rate2Mbit
	Rate5_5Mbit
	Rate11Mbit
	Rate6Mbit
	Rate9Mbit
	Rate12Mbit
	Rate18Mbit
	Rate24Mbit
	Rate36Mbit
	Rate48Mbit
	Rate54Mbit
)

// RateMaskAll covers every defined rate bit.
const RateMaskAll = Rate54Mbit<<1 - 1

// CipherSuite is a bit field of supported pairwise/group ciphers.
type CipherSuite uint8

const (
	CipherNone    CipherSuite = 0x00
	CipherWEP64   CipherSuite = 0x01
	CipherWEP128  CipherSuite = 0x02
	CipherTKIP    CipherSuite = 0x04
	CipherAESCCMP CipherSuite = 0x08
)

// AuthenticationSuite is a bit field of supported authentication suites.
type AuthenticationSuite uint8

const (
	AuthSuiteNone         AuthenticationSuite = 0x00
	AuthSuiteSharedSecret AuthenticationSuite = 0x01
	AuthSuitePSK          AuthenticationSuite = 0x02
	AuthSuite8021X        AuthenticationSuite = 0x04
	AuthSuiteUseWPA       AuthenticationSuite = 0x08
	AuthSuiteUseWPA2      AuthenticationSuite = 0x10
)

// OperationalMode distinguishes infrastructure from ad hoc BSSs in scan
// results.
type OperationalMode uint8

const (
	ModeInfrastructure OperationalMode = iota
	ModeIBSS
)

// DeviceType tags the hardware family for device-specific start
// parameters.
type DeviceType string

const (
	DeviceODINW26X DeviceType = "odin-w26x"
)

// TxPowerSettings holds the ODIN-W26X transmission power levels in dBm.
type TxPowerSettings struct {
	LowTxPowerLevel    int8
	MediumTxPowerLevel int8
	MaxTxPowerLevel    int8
}

// DeviceSpecific is a tagged variant of hardware-family start parameters.
// Exactly the fields of the named family are meaningful.
type DeviceSpecific struct {
	Type     DeviceType
	ODINW26X *TxPowerSettings
}

// StartParameters configure the driver at subsystem init.
type StartParameters struct {
	// MAC overrides the hardware-programmed address when non-zero.
	MAC            MACAddress
	Disable80211d  bool
	DeviceSpecific DeviceSpecific
}

// CommonConnectParameters are shared by every station connect variant.
type CommonConnectParameters struct {
	// BSSID restricts the connection to one AP when non-zero.
	BSSID MACAddress
	SSID  SSID
}

// WEPKey is a single WEP key slot; empty slots are legal as long as the
// active slot is populated.
type WEPKey []byte

// WEPConnectParameters carry the four WEP key slots and the active
// transmission key index (0-3).
type WEPConnectParameters struct {
	Keys  [4]WEPKey
	TxKey uint32
}

// WPAPSKConnectParameters carry a pre-derived 32-byte WPA key.
type WPAPSKConnectParameters struct {
	PSK [PSKLength]byte
}

// EnterpriseMode selects the 802.1X authentication method.
type EnterpriseMode uint8

const (
	EnterpriseLEAP EnterpriseMode = iota
	EnterprisePEAP
	EnterpriseEAPTLS
)

// CertRef is an opaque reference into the certificate store. The core
// never parses the material behind it.
type CertRef string

// EnterpriseConnectParameters carry 802.1X credentials. Certificate and
// private key stay behind opaque store references.
type EnterpriseConnectParameters struct {
	AuthMode          EnterpriseMode
	Username          string
	Passphrase        string
	Domain            string
	ClientCertificate CertRef
	ClientPrivateKey  CertRef
}

// CommonAPParameters are shared by every access-point start variant.
type CommonAPParameters struct {
	SSID       SSID
	Channel    Channel
	BasicRates RateMask
}

// WPAPSKAPParameters configure WPA/RSN for an access point. A zero cipher
// field suppresses the corresponding information element.
type WPAPSKAPParameters struct {
	RSNCiphers       CipherSuite
	WPACiphers       CipherSuite
	PSK              [PSKLength]byte
	GTKRekeyInterval uint32 // seconds
}

// ScanParameters select what to scan for. A zero-length SSID means
// broadcast scan.
type ScanParameters struct {
	SSID SSID
}

// BSSDescriptor is one scan result entry, passed through in driver
// discovery order without dedup.
type BSSDescriptor struct {
	BSSID           MACAddress
	SSID            SSID
	Channel         Channel
	OperationalMode OperationalMode
	RSSI            int32

	AuthenticationSuites AuthenticationSuite
	UnicastCiphers       CipherSuite
	GroupCipher          CipherSuite

	BasicRateSet     RateMask
	SupportedRateSet RateMask
	BeaconPeriod     uint32 // ms
	DTIMPeriod       uint32 // beacon intervals
	CountryCode      [3]byte
	Flags            uint32
}

// PacketIndication is an inbound Ethernet frame handed to the data-path
// subscriber.
type PacketIndication struct {
	Frame            []byte
	EtherType        uint16
	ChecksumVerified bool
}
