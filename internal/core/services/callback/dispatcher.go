package callback

import (
	"sync"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

// Dispatcher decouples status emission from subscriber invocation: the
// state machines post indications into an unbounded queue under their own
// lock, and a single goroutine drains it in order. Every subscriber
// therefore observes one global order, and callbacks never run with core
// locks held.
type Dispatcher struct {
	registry *Registry

	mu     sync.Mutex
	cond   *sync.Cond
	queue  []domain.StatusIndication
	closed bool
	done   chan struct{}
}

// NewDispatcher creates a dispatcher over the given registry. Run must be
// started before indications flow.
func NewDispatcher(registry *Registry) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		done:     make(chan struct{}),
	}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Registry returns the subscriber registry backing this dispatcher.
func (d *Dispatcher) Registry() *Registry { return d.registry }

// Post enqueues indications. Never blocks, so it is safe to call while
// holding state-machine locks; queue order is emission order.
func (d *Dispatcher) Post(inds ...domain.StatusIndication) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.queue = append(d.queue, inds...)
	d.cond.Signal()
}

// Run drains the queue until Close, then delivers what remains and exits.
// Exactly one Run goroutine may exist per dispatcher.
func (d *Dispatcher) Run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		for len(d.queue) == 0 && !d.closed {
			d.cond.Wait()
		}
		batch := d.queue
		d.queue = nil
		closed := d.closed
		d.mu.Unlock()

		for _, ind := range batch {
			d.registry.DispatchStatus(ind)
		}
		if closed && len(batch) == 0 {
			return
		}
	}
}

// Close stops accepting indications and lets Run finish delivering the
// backlog. Blocks until the queue is fully drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.cond.Signal()
	d.mu.Unlock()
	<-d.done
}
