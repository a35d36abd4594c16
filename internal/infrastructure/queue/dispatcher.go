package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/frontdesk/visitor-pass/internal/api/metrics"
	"github.com/frontdesk/visitor-pass/internal/core/domain"
	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	sendTimeout    = 30 * time.Second
)

// Dispatcher delivers notifications off the request path. Messages are
// routed to a fixed set of workers by consistent hashing on the recipient,
// so messages to one recipient are delivered in order.
type Dispatcher struct {
	workers []chan domain.Message
	sender  ports.MessageSender
	log     zerolog.Logger

	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

var _ ports.Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// buffering up to buffer messages. Non-positive values use the defaults.
func NewDispatcher(numWorkers, buffer int, sender ports.MessageSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.Message, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Message, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close has drained their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues msg without blocking. When the worker's buffer is full
// the message is dropped and logged.
func (d *Dispatcher) Notify(_ context.Context, msg domain.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("channel", string(msg.Channel)).Msg("dispatcher closed, notification dropped")
		metrics.NotificationsTotal.WithLabelValues(string(msg.Channel), "dropped").Inc()
		return
	}

	idx := d.shardIndex(msg.To)
	select {
	case d.workers[idx] <- msg:
		metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.log.Warn().
			Str("channel", string(msg.Channel)).
			Int("worker_id", idx).
			Msg("notification queue full, message dropped")
		metrics.NotificationsTotal.WithLabelValues(string(msg.Channel), "dropped").Inc()
	}
}

// Close stops accepting messages and waits for queued ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Message) {
	defer d.wg.Done()
	depth := metrics.NotifyQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			d.deliver(ctx, id, msg)
		}
	}
}

// deliver sends one message. Failures are logged and counted, never retried.
func (d *Dispatcher) deliver(ctx context.Context, id int, msg domain.Message) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(sendCtx, msg)
	metrics.NotificationDuration.WithLabelValues(string(msg.Channel)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(msg.Channel), "failed").Inc()
		d.log.Error().Err(err).
			Str("channel", string(msg.Channel)).
			Str("subject", msg.Subject).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(string(msg.Channel), "sent").Inc()
	d.log.Debug().Str("channel", string(msg.Channel)).Int("worker_id", id).Msg("notification sent")
}
