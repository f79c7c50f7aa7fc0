// Package packet gates outbound frames on station connection state and
// forwards inbound frames to the data-path subscriber.
package packet

import (
	"log/slog"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

const minEthernetFrame = 14 // header only; the radio pads on air

var (
	framesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_frames_sent_total",
		Help: "Frames handed to the driver transmit path",
	})
	framesGated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_frames_gated_total",
		Help: "Outbound frames dropped because the station was not connected",
	})
	framesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wland_frames_received_total",
		Help: "Inbound frames by checksum verification result",
	}, []string{"checksum"})
	framesRunt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_frames_runt_total",
		Help: "Inbound frames shorter than an Ethernet header",
	})
)

// Transmitter is the driver's send path.
type Transmitter func(frame []byte) error

// ConnectedFunc reports whether the station session is Connected.
type ConnectedFunc func() bool

// Deliver hands the indication to the registered packet consumer.
type Deliver func(pkt domain.PacketIndication)

// Gateway is the data-path seam between the host stack and the radio.
type Gateway struct {
	transmit  Transmitter
	connected ConnectedFunc
	deliver   Deliver
}

// NewGateway wires the three seams.
func NewGateway(transmit Transmitter, connected ConnectedFunc, deliver Deliver) *Gateway {
	return &Gateway{transmit: transmit, connected: connected, deliver: deliver}
}

// Send forwards one outbound Ethernet frame. Fire and forget: frames sent
// while not connected are dropped silently, mirroring the radio firmware
// contract.
func (g *Gateway) Send(frame []byte) {
	if !g.connected() {
		framesGated.Inc()
		return
	}
	if err := g.transmit(frame); err != nil {
		// Transmit failures are not surfaced either; the caller has no
		// error channel on this path.
		slog.Debug("transmit failed", "len", len(frame), "error", err)
		return
	}
	framesSent.Inc()
}

// HandleInbound delivers a received frame to the packet subscriber. The
// driver already filtered to the connected BSS, so no gating applies.
// Runt frames are dropped before delivery.
func (g *Gateway) HandleInbound(frame []byte, checksumVerified bool) {
	if len(frame) < minEthernetFrame {
		framesRunt.Inc()
		return
	}

	ind := domain.PacketIndication{
		Frame:            frame,
		ChecksumVerified: checksumVerified,
	}

	pkt := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.NoCopy)
	if eth, ok := pkt.LinkLayer().(*layers.Ethernet); ok {
		ind.EtherType = uint16(eth.EthernetType)
	}

	if checksumVerified {
		framesReceived.WithLabelValues("verified").Inc()
	} else {
		framesReceived.WithLabelValues("unverified").Inc()
	}
	g.deliver(ind)
}
