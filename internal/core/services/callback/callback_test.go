package callback

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

func TestStatusDispatchOrder(t *testing.T) {
	r := NewRegistry()

	var order []string
	r.RegisterStatus(func(domain.StatusIndication) { order = append(order, "first") })
	r.RegisterStatus(func(domain.StatusIndication) { order = append(order, "second") })
	r.RegisterStatus(func(domain.StatusIndication) { order = append(order, "third") })

	r.DispatchStatus(domain.StatusIndication{Kind: domain.StatusStarted})
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDeregisterStatus(t *testing.T) {
	r := NewRegistry()

	var got []string
	id1 := r.RegisterStatus(func(domain.StatusIndication) { got = append(got, "a") })
	r.RegisterStatus(func(domain.StatusIndication) { got = append(got, "b") })

	r.DeregisterStatus(id1)
	r.DispatchStatus(domain.StatusIndication{Kind: domain.StatusStarted})
	assert.Equal(t, []string{"b"}, got)

	// Unknown and already-removed handles are no-ops.
	r.DeregisterStatus(id1)
	r.DeregisterStatus(SubscriptionID("nonsense"))
	r.DispatchStatus(domain.StatusIndication{Kind: domain.StatusStopped})
	assert.Equal(t, []string{"b", "b"}, got)
}

func TestSubscriptionIDsUnique(t *testing.T) {
	r := NewRegistry()
	fn := func(domain.StatusIndication) {}
	assert.NotEqual(t, r.RegisterStatus(fn), r.RegisterStatus(fn),
		"the same function registered twice gets distinct handles")
}

func TestPacketIndicationLastWins(t *testing.T) {
	r := NewRegistry()

	var first, second int
	r.RegisterPacketIndication(func(domain.PacketIndication) { first++ })
	r.RegisterPacketIndication(func(domain.PacketIndication) { second++ })

	r.DispatchPacket(domain.PacketIndication{})
	assert.Zero(t, first)
	assert.Equal(t, 1, second)

	// nil clears the consumer; dispatch becomes a no-op.
	r.RegisterPacketIndication(nil)
	r.DispatchPacket(domain.PacketIndication{})
	assert.Equal(t, 1, second)
}

func TestDispatcherPreservesEmissionOrder(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)
	go d.Run()

	var mu sync.Mutex
	var kinds []domain.StatusKind
	r.RegisterStatus(func(ind domain.StatusIndication) {
		mu.Lock()
		kinds = append(kinds, ind.Kind)
		mu.Unlock()
	})

	want := []domain.StatusKind{
		domain.StatusStarted,
		domain.StatusConnecting,
		domain.StatusConnected,
		domain.StatusDisconnected,
		domain.StatusStopped,
	}
	for _, k := range want {
		d.Post(domain.StatusIndication{Kind: k})
	}
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, kinds)
}

// Every subscriber observes the same global order even when emitters race.
func TestDispatcherSingleGlobalOrder(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)
	go d.Run()

	const emitters = 8
	const perEmitter = 50

	var mu sync.Mutex
	var a, b []domain.Channel
	r.RegisterStatus(func(ind domain.StatusIndication) {
		mu.Lock()
		a = append(a, ind.Channel)
		mu.Unlock()
	})
	r.RegisterStatus(func(ind domain.StatusIndication) {
		mu.Lock()
		b = append(b, ind.Channel)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < emitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perEmitter; j++ {
				d.Post(domain.StatusIndication{Kind: domain.StatusConnecting, Channel: domain.Channel(j)})
			}
		}()
	}
	wg.Wait()
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, a, emitters*perEmitter)
	assert.Equal(t, a, b)
}

func TestDispatcherCloseDrainsBacklog(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)

	var mu sync.Mutex
	var count int
	r.RegisterStatus(func(domain.StatusIndication) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	// Queue up a backlog before the run loop even starts.
	for i := 0; i < 100; i++ {
		d.Post(domain.StatusIndication{Kind: domain.StatusConnecting})
	}
	go d.Run()
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 100, count)
}

func TestDispatcherPostAfterClose(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r)

	var count int
	r.RegisterStatus(func(domain.StatusIndication) { count++ })

	go d.Run()
	d.Close()
	d.Post(domain.StatusIndication{Kind: domain.StatusStarted})
	d.Close() // idempotent

	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, count)
}
