// Package callback manages status and packet-indication subscribers and
// dispatches indications to them in a deterministic order.
package callback

import (
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lcalzada-xor/wland/internal/core/domain"
)

var statusDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wland_status_indications_total",
	Help: "Status indications dispatched to subscribers, by kind",
}, []string{"kind"})

// StatusFunc receives one status indication. It must not call back into
// the public API; that contract is not enforced structurally.
type StatusFunc func(ind domain.StatusIndication)

// PacketFunc receives one inbound data frame.
type PacketFunc func(pkt domain.PacketIndication)

// SubscriptionID identifies one status subscription. The C layer's
// (function pointer, context) pair collapses into this handle; closures
// carry the context.
type SubscriptionID string

type subscription struct {
	id SubscriptionID
	fn StatusFunc
}

// Registry is the multi-subscriber mapping for status callbacks plus the
// single packet-indication consumer.
type Registry struct {
	mu     sync.RWMutex
	subs   []subscription // insertion order == dispatch order
	packet PacketFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterStatus adds a subscriber and returns its handle. Dispatch order
// across subscribers is registration order.
func (r *Registry) RegisterStatus(fn StatusFunc) SubscriptionID {
	id := SubscriptionID(uuid.NewString())
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return id
}

// DeregisterStatus removes a subscriber. Unknown handles are a no-op;
// remaining subscribers keep their relative order.
func (r *Registry) DeregisterStatus(id SubscriptionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, sub := range r.subs {
		if sub.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// RegisterPacketIndication installs the data-path consumer. A single
// subscription is supported; the last registration wins, and nil clears
// it.
func (r *Registry) RegisterPacketIndication(fn PacketFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packet = fn
}

// DispatchStatus invokes every status subscriber in registration order.
// Runs on the dispatch goroutine; callers never hold core locks here.
func (r *Registry) DispatchStatus(ind domain.StatusIndication) {
	r.mu.RLock()
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	r.mu.RUnlock()

	statusDispatched.WithLabelValues(ind.Kind.String()).Inc()
	for _, sub := range subs {
		sub.fn(ind)
	}
}

// DispatchPacket hands an inbound frame to the packet consumer, if any.
func (r *Registry) DispatchPacket(pkt domain.PacketIndication) {
	r.mu.RLock()
	fn := r.packet
	r.mu.RUnlock()
	if fn != nil {
		fn(pkt)
	}
}
