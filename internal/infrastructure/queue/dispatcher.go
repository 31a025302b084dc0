package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AlertSender delivers a single donor alert.
type AlertSender interface {
	SendDonorAlert(ctx context.Context, alert ports.DonorAlert) error
}

// Dispatcher fans donor alerts out to a fixed set of workers, sharded by
// recipient address so alerts to the same donor are delivered in order.
type Dispatcher struct {
	workers []chan ports.DonorAlert
	sender  AlertSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender AlertSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.DonorAlert, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.DonorAlert, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an alert to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(alert ports.DonorAlert) {
	d.workers[d.shardIndex(alert.Email)] <- alert
}

// shardIndex maps a recipient address deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.DonorAlert) {
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.SendDonorAlert(ctx, alert); err != nil {
				d.log.Error().Err(err).
					Str("post_id", alert.PostID).
					Int("worker_id", id).
					Msg("donor alert delivery failed")
			}
		}
	}
}
