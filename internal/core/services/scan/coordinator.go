// Package scan owns the single in-flight BSS scan and streams its results
// to the requester.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcalzada-xor/wland/internal/core/domain"
	"github.com/lcalzada-xor/wland/internal/core/ports"
)

var (
	scansStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_scans_started_total",
		Help: "Accepted scan requests",
	})
	scansRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_scans_rejected_total",
		Help: "Scan requests rejected because one was already in flight",
	})
	scanResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wland_scan_results_total",
		Help: "BSS descriptors delivered to scan requesters",
	})
)

// Indication receives one scan result. The descriptor is nil exactly once
// per scan, on the terminating isLast call; callers must not dereference
// it then.
type Indication func(bss *domain.BSSDescriptor, isLast bool)

// Starter submits the scan to the driver; injected by the session manager
// so the coordinator never touches the radio directly.
type Starter func(params domain.ScanParameters) error

// Coordinator serializes scans: at most one is active system-wide. Scan
// activity is independent of connection activity and never changes
// session state.
type Coordinator struct {
	mu       sync.Mutex
	start    Starter
	recorder ports.SurveyRecorder

	// deliverMu serializes callback delivery with stream termination, so
	// an Abort racing a straggling result can never put a result after
	// the terminal indication. Begin never takes it; requesters may start
	// a new scan from inside their own stream.
	deliverMu sync.Mutex

	active bool
	cb     Indication
	span   trace.Span
}

// NewCoordinator creates a coordinator. recorder may be nil.
func NewCoordinator(start Starter, recorder ports.SurveyRecorder) *Coordinator {
	return &Coordinator{start: start, recorder: recorder}
}

// Begin accepts the scan if none is in flight and submits it to the
// driver. Results stream through HandleResult/HandleDone on the event
// pump.
func (c *Coordinator) Begin(ctx context.Context, params domain.ScanParameters, cb Indication) error {
	if len(params.SSID) > domain.MaxSSIDLength {
		return fmt.Errorf("%w: ssid longer than %d bytes", domain.ErrInvalidParam, domain.MaxSSIDLength)
	}
	if cb == nil {
		return fmt.Errorf("%w: nil scan indication callback", domain.ErrInvalidParam)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		scansRejected.Inc()
		return domain.ErrScanBusy
	}

	if err := c.start(params); err != nil {
		return err
	}

	_, span := otel.Tracer("wland/scan").Start(ctx, "scan",
		trace.WithAttributes(attribute.String("ssid", string(params.SSID))))

	c.active = true
	c.cb = cb
	c.span = span
	scansStarted.Inc()
	return nil
}

// Active reports whether a scan is in flight.
func (c *Coordinator) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// HandleResult forwards one discovered BSS to the requester, in driver
// discovery order. Duplicate BSSIDs pass through as received.
func (c *Coordinator) HandleResult(bss domain.BSSDescriptor) {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	cb := c.cb
	active := c.active
	c.mu.Unlock()
	if !active {
		return // stale result after completion, drop
	}

	scanResults.Inc()
	if c.recorder != nil {
		if err := c.recorder.RecordSighting(bss); err != nil {
			slog.Debug("survey record failed", "bssid", bss.BSSID, "error", err)
		}
	}
	cb(&bss, false)
}

// HandleDone terminates the stream with the single isLast indication.
// Always called exactly once per accepted scan, results or not.
func (c *Coordinator) HandleDone() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	cb := c.cb
	active := c.active
	span := c.span
	c.active = false
	c.cb = nil
	c.span = nil
	c.mu.Unlock()
	if !active {
		return
	}

	if span != nil {
		span.End()
	}
	cb(nil, true)
}

// Abort terminates an in-flight scan when the driver is lost or stopped.
// The requester still receives its terminal indication.
func (c *Coordinator) Abort() {
	c.HandleDone()
}
