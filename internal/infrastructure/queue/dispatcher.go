package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/pkg/metrics"
)

const (
	defaultWorkers = 2
	channelBuffer  = 256
	persistTimeout = 5 * time.Second
)

// Publisher forwards a persisted activity entry to a message broker.
type Publisher interface {
	Publish(ctx context.Context, a *domain.Activity) error
}

// Dispatcher records audit entries off the request path. Entries are routed
// to a fixed set of workers by hashing the entity id, so the entries of one
// entity are written in the order they were recorded.
type Dispatcher struct {
	workers   []chan domain.Activity
	store     ports.ActivityRepository
	publisher Publisher
	log       zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers workers, each buffering
// up to buffer entries. publisher may be nil.
func NewDispatcher(numWorkers, buffer int, store ports.ActivityRepository, publisher Publisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = channelBuffer
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Activity, numWorkers),
		store:     store,
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has closed
// their channel and they have drained it.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Record enqueues a without blocking. When the worker's buffer is full or
// the dispatcher has stopped, the entry is dropped.
func (d *Dispatcher) Record(a domain.Activity) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.ActivityDroppedTotal.Inc()
		return
	}

	idx := d.shardIndex(a.EntityID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("action", a.Action).
			Str("entity_type", a.EntityType).
			Str("entity_id", a.EntityID).
			Int("worker_id", idx).
			Msg("activity buffer full, entry dropped")
	}
}

// Stop closes the worker channels and waits for the buffered entries to be
// written, or for ctx to expire.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	depth := metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id))

	for a := range ch {
		depth.Set(float64(len(ch)))
		start := time.Now()
		status := "ok"
		if err := d.process(ctx, &a); err != nil {
			status = "error"
			d.log.Error().Err(err).
				Str("action", a.Action).
				Str("entity_id", a.EntityID).
				Int("worker_id", id).
				Msg("activity persistence failed")
		}
		metrics.ActivityProcessingDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
	}
}

// process stores the entry and then publishes it. A publish failure is
// logged but does not fail the entry, since the store is the record.
func (d *Dispatcher) process(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	if err := d.store.Insert(ctx, a); err != nil {
		return err
	}
	if d.publisher == nil {
		return nil
	}
	if err := d.publisher.Publish(ctx, a); err != nil {
		metrics.ActivityPublishErrorsTotal.Inc()
		d.log.Warn().Err(err).Str("activity_id", a.ID).Msg("activity publish failed")
	}
	return nil
}
