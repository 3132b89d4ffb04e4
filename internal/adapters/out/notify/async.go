// Package notify holds ports.Notifier implementations that do not talk to
// an external system: a log-only notifier and a bounded asynchronous queue
// that decouples request handling from slow delivery.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"preclear/internal/core/ports"
)

// DefaultQueueSize is used when a non-positive size is configured.
const DefaultQueueSize = 256

var (
	ErrQueueFull   = errors.New("notification queue is full")
	ErrQueueClosed = errors.New("notification queue is closed")
	ErrRunning     = errors.New("notification worker is already running")
)

// QueueMetrics observes the queue. Implementations must be safe for
// concurrent use.
type QueueMetrics interface {
	NotificationQueued()
	NotificationDropped()
	NotificationDelivered()
	NotificationFailed()
}

type nopQueueMetrics struct{}

func (nopQueueMetrics) NotificationQueued()    {}
func (nopQueueMetrics) NotificationDropped()   {}
func (nopQueueMetrics) NotificationDelivered() {}
func (nopQueueMetrics) NotificationFailed()    {}

// AsyncNotifier accepts notifications without blocking and hands them to
// the delegate from a single worker goroutine started by Run. When the
// queue is full the notification is dropped.
type AsyncNotifier struct {
	delegate ports.Notifier
	queue    chan ports.Notification

	// mu orders enqueues against shutdown: once closed is set under the
	// write lock, every accepted notification is already in queue.
	mu      sync.RWMutex
	closed  bool
	running bool

	metrics QueueMetrics
	logger  *slog.Logger
	timeout time.Duration
}

type AsyncOption func(*AsyncNotifier)

func WithQueueMetrics(m QueueMetrics) AsyncOption {
	return func(n *AsyncNotifier) {
		if m != nil {
			n.metrics = m
		}
	}
}

// WithDeliveryTimeout bounds each delegate call. Zero disables the bound.
func WithDeliveryTimeout(d time.Duration) AsyncOption {
	return func(n *AsyncNotifier) {
		n.timeout = d
	}
}

func NewAsyncNotifier(delegate ports.Notifier, size int, logger *slog.Logger, opts ...AsyncOption) *AsyncNotifier {
	if size <= 0 {
		size = DefaultQueueSize
	}
	n := &AsyncNotifier{
		delegate: delegate,
		queue:    make(chan ports.Notification, size),
		metrics:  nopQueueMetrics{},
		logger:   logger.With("component", "notification_queue"),
		timeout:  5 * time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify enqueues n. It returns ErrQueueFull when the queue has no room and
// ErrQueueClosed once Run has begun shutting down.
func (a *AsyncNotifier) Notify(ctx context.Context, n ports.Notification) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrQueueClosed
	}

	select {
	case a.queue <- n:
		a.metrics.NotificationQueued()
		return nil
	default:
		a.metrics.NotificationDropped()
		a.logger.WarnContext(ctx, "Notification dropped, queue is full",
			"notification_id", n.ID.String(),
			"shipment_id", n.ShipmentID.Int64(),
			"recipient_role", string(n.RecipientRole),
		)
		return ErrQueueFull
	}
}

// Run delivers queued notifications until ctx is cancelled, then drains
// whatever is still queued with a fresh context and returns. Run may be
// called once; later calls return ErrRunning or ErrQueueClosed.
func (a *AsyncNotifier) Run(ctx context.Context) error {
	a.mu.Lock()
	switch {
	case a.closed:
		a.mu.Unlock()
		return ErrQueueClosed
	case a.running:
		a.mu.Unlock()
		return ErrRunning
	}
	a.running = true
	a.mu.Unlock()

	a.logger.InfoContext(ctx, "Notification worker started", "capacity", cap(a.queue))
	for {
		select {
		case n := <-a.queue:
			a.deliver(ctx, n)
		case <-ctx.Done():
			a.mu.Lock()
			a.closed = true
			a.mu.Unlock()

			a.drain()
			a.logger.InfoContext(context.Background(), "Notification worker stopped")
			return nil
		}
	}
}

func (a *AsyncNotifier) drain() {
	for {
		select {
		case n := <-a.queue:
			a.deliver(context.Background(), n)
		default:
			return
		}
	}
}

func (a *AsyncNotifier) deliver(ctx context.Context, n ports.Notification) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if err := a.delegate.Notify(ctx, n); err != nil {
		a.metrics.NotificationFailed()
		a.logger.ErrorContext(ctx, "Notification delivery failed",
			"notification_id", n.ID.String(),
			"shipment_id", n.ShipmentID.Int64(),
			"error", err,
		)
		return
	}
	a.metrics.NotificationDelivered()
}
