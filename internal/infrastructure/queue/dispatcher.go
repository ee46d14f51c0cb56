package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fieldworks/agrifield-api/internal/api/metrics"
	"github.com/fieldworks/agrifield-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes outbound SMS to a fixed set of workers using consistent
// hashing on the recipient number, so sends to one phone stay ordered.
type Dispatcher struct {
	workers   []chan ports.SMSMessage
	deliverer ports.SMSDeliverer
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, deliverer ports.SMSDeliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.SMSMessage, numWorkers),
		deliverer: deliverer,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.SMSMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its number.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg ports.SMSMessage) {
	i := d.shardIndex(msg.Number)
	d.workers[i] <- msg
	metrics.SMSQueueDepth.WithLabelValues(workerLabel(i)).Set(float64(len(d.workers[i])))
}

// EnqueueBatch enqueues multiple messages preserving per-number ordering.
func (d *Dispatcher) EnqueueBatch(msgs []ports.SMSMessage) {
	for _, m := range msgs {
		d.Enqueue(m)
	}
}

// shardIndex maps a phone number deterministically to a worker index.
func (d *Dispatcher) shardIndex(number string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(number))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.SMSMessage) {
	label := workerLabel(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.SMSQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.deliverer.Deliver(ctx, msg); err != nil {
				d.log.Error().Err(err).
					Str("number", msg.Number).
					Int("worker_id", id).
					Msg("sms delivery failed")
			}
		}
	}
}

func workerLabel(id int) string {
	return strconv.Itoa(id)
}
