package scan

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

type collector struct {
	results []domain.BSSDescriptor
	lasts   int
}

func (c *collector) indication(bss *domain.BSSDescriptor, isLast bool) {
	if isLast {
		c.lasts++
		if bss != nil {
			panic("terminal indication carries a descriptor")
		}
		return
	}
	c.results = append(c.results, *bss)
}

func descriptor(i byte) domain.BSSDescriptor {
	return domain.BSSDescriptor{
		BSSID:   domain.MACAddress{0x00, 0x11, 0x22, 0x33, 0x44, i},
		SSID:    domain.SSID(fmt.Sprintf("net-%d", i)),
		Channel: domain.Channel(i),
		RSSI:    -40 - int32(i),
	}
}

func TestScanStreamsResultsInOrder(t *testing.T) {
	var col collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, col.indication))
	assert.True(t, c.Active())

	c.HandleResult(descriptor(1))
	c.HandleResult(descriptor(2))
	c.HandleResult(descriptor(1)) // duplicates pass through undeduplicated
	c.HandleDone()

	require.Len(t, col.results, 3)
	assert.Equal(t, descriptor(1), col.results[0])
	assert.Equal(t, descriptor(2), col.results[1])
	assert.Equal(t, descriptor(1), col.results[2])
	assert.Equal(t, 1, col.lasts)
	assert.False(t, c.Active())
}

func TestEmptyScanStillTerminates(t *testing.T) {
	var col collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{SSID: "nothing-here"}, col.indication))
	c.HandleDone()

	assert.Empty(t, col.results)
	assert.Equal(t, 1, col.lasts)
}

// A second request during an active scan is rejected without disturbing
// the running stream.
func TestConcurrentScanRejected(t *testing.T) {
	var first, second collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, first.indication))
	err := c.Begin(context.Background(), domain.ScanParameters{}, second.indication)
	assert.ErrorIs(t, err, domain.ErrScanBusy)

	c.HandleResult(descriptor(1))
	c.HandleDone()

	assert.Len(t, first.results, 1)
	assert.Equal(t, 1, first.lasts)
	assert.Empty(t, second.results)
	assert.Zero(t, second.lasts)

	// The slot is free again afterwards.
	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, second.indication))
	c.HandleDone()
	assert.Equal(t, 1, second.lasts)
}

func TestScanSubmitErrorKeepsSlotFree(t *testing.T) {
	var col collector
	submitErr := fmt.Errorf("radio rejected scan")
	c := NewCoordinator(func(domain.ScanParameters) error { return submitErr }, nil)

	err := c.Begin(context.Background(), domain.ScanParameters{}, col.indication)
	assert.ErrorIs(t, err, submitErr)
	assert.False(t, c.Active())
	assert.Zero(t, col.lasts, "a rejected scan has no stream to terminate")
}

func TestScanSSIDTooLong(t *testing.T) {
	var col collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)
	long := domain.SSID(make([]byte, domain.MaxSSIDLength+1))

	err := c.Begin(context.Background(), domain.ScanParameters{SSID: long}, col.indication)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
}

func TestScanNilCallbackRejected(t *testing.T) {
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)

	err := c.Begin(context.Background(), domain.ScanParameters{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParam)
	assert.False(t, c.Active(), "a rejected request must not occupy the slot")
}

func TestStaleResultsDropped(t *testing.T) {
	var col collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, col.indication))
	c.HandleDone()
	c.HandleResult(descriptor(9))
	c.HandleDone()

	assert.Empty(t, col.results)
	assert.Equal(t, 1, col.lasts, "completion fires once per accepted scan")
}

// An abort racing a straggling result must never place a result after the
// terminal indication.
func TestAbortRacingResultKeepsTerminalLast(t *testing.T) {
	for i := 0; i < 500; i++ {
		var mu sync.Mutex
		var seq []bool // isLast per delivery
		c := NewCoordinator(func(domain.ScanParameters) error { return nil }, nil)
		require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, func(_ *domain.BSSDescriptor, isLast bool) {
			mu.Lock()
			seq = append(seq, isLast)
			mu.Unlock()
		}))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.HandleResult(descriptor(1))
		}()
		go func() {
			defer wg.Done()
			c.Abort()
		}()
		wg.Wait()

		mu.Lock()
		terminated := false
		for _, isLast := range seq {
			assert.False(t, terminated, "delivery after the terminal indication")
			terminated = isLast
		}
		assert.True(t, terminated)
		mu.Unlock()
	}
}

type recordingRecorder struct {
	sightings []domain.BSSDescriptor
	fail      bool
}

func (r *recordingRecorder) RecordSighting(bss domain.BSSDescriptor) error {
	if r.fail {
		return fmt.Errorf("store unavailable")
	}
	r.sightings = append(r.sightings, bss)
	return nil
}

func (r *recordingRecorder) Close() error { return nil }

func TestSurveyTee(t *testing.T) {
	var col collector
	rec := &recordingRecorder{}
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, rec)

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, col.indication))
	c.HandleResult(descriptor(1))
	c.HandleResult(descriptor(2))
	c.HandleDone()

	assert.Len(t, rec.sightings, 2)
	assert.Len(t, col.results, 2)
}

// Survey persistence is best effort; a failing store never disturbs the
// requester's stream.
func TestSurveyFailureDoesNotBlockStream(t *testing.T) {
	var col collector
	c := NewCoordinator(func(domain.ScanParameters) error { return nil }, &recordingRecorder{fail: true})

	require.NoError(t, c.Begin(context.Background(), domain.ScanParameters{}, col.indication))
	c.HandleResult(descriptor(1))
	c.HandleDone()

	assert.Len(t, col.results, 1)
	assert.Equal(t, 1, col.lasts)
}
