// Package event implements the in-process domain event dispatcher.
//
// Publishing is synchronous and cheap: the event goes onto a bounded queue
// (or is dropped when the queue is full). Delivery happens on worker
// goroutines, so the publisher's success or failure is decided before any
// subscriber runs, and a subscriber's outcome never reaches the publisher.
//
// Delivery is at-most-once and best-effort: there is no persistence, no
// retry and no dead-letter path. A subscriber error or panic is logged
// and the event is considered handled.
package event

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

// Handler consumes delivered events. A non-nil error is logged by the
// dispatcher and otherwise ignored.
type Handler interface {
	HandleEvent(ctx context.Context, e domain.Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, e domain.Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, e domain.Event) error {
	return f(ctx, e)
}

// Dispatcher fans events out to the handlers subscribed to each event kind.
// Each subscriber receives its own delivery; delivery order across
// subscribers is unspecified.
type Dispatcher struct {
	log     *slog.Logger
	queue   chan domain.Event
	workers int

	mu     sync.RWMutex
	subs   map[domain.EventKind][]Handler
	closed bool

	startOnce sync.Once
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher with the given queue capacity and
// worker count. Values below 1 are clamped to 1.
func NewDispatcher(log *slog.Logger, queueSize, workers int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		log:     log.With("component", "event_dispatcher"),
		queue:   make(chan domain.Event, queueSize),
		workers: workers,
		subs:    make(map[domain.EventKind][]Handler),
	}
}

// Subscribe registers a handler for an event kind. Must be called before
// Start; subscriptions made after Start are not guaranteed to be seen by
// in-flight deliveries.
func (d *Dispatcher) Subscribe(kind domain.EventKind, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs[kind] = append(d.subs[kind], h)
}

// Start launches the worker goroutines. The workers stop when ctx is
// cancelled or when Close has been called and the queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		for i := 0; i < d.workers; i++ {
			d.wg.Add(1)
			go d.run(ctx)
		}
	})
}

// Publish enqueues an event for asynchronous delivery. It never blocks:
// when the queue is full the event is dropped and logged, keeping the
// at-most-once contract explicit.
func (d *Dispatcher) Publish(e domain.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("event dropped: dispatcher closed", slog.String("kind", string(e.Kind())))
		return
	}

	select {
	case d.queue <- e:
	default:
		d.log.Warn("event dropped: queue full", slog.String("kind", string(e.Kind())))
	}
}

// Close stops accepting events and waits for the workers to finish the
// events already queued.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-d.queue:
			if !ok {
				return
			}
			d.deliver(ctx, e)
		}
	}
}

// deliver hands the event to every subscriber of its kind, isolating the
// publisher (and the other subscribers) from errors and panics.
func (d *Dispatcher) deliver(ctx context.Context, e domain.Event) {
	d.mu.RLock()
	handlers := d.subs[e.Kind()]
	d.mu.RUnlock()

	for _, h := range handlers {
		d.deliverOne(ctx, h, e)
	}
}

func (d *Dispatcher) deliverOne(ctx context.Context, h Handler, e domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("event handler panicked",
				slog.String("kind", string(e.Kind())),
				slog.Any("panic", r),
			)
		}
	}()

	if err := h.HandleEvent(ctx, e); err != nil {
		d.log.Error("event handler failed",
			slog.String("kind", string(e.Kind())),
			slog.Any("error", err),
		)
	}
}
