package notify

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/nibzard/doable-go/internal/board"
)

// Default dispatcher sizing.
const (
	DefaultWorkers   = 2
	DefaultQueueSize = 16
)

// DispatcherOptions configures a Dispatcher.
type DispatcherOptions struct {
	// Workers bounds how many sinks receive a snapshot concurrently.
	// Zero or less uses DefaultWorkers.
	Workers int
	// QueueSize bounds pending snapshots. When the queue is full the
	// oldest pending snapshot is dropped; only the latest board matters.
	QueueSize int
	Logger    *log.Logger
}

// Stats counts dispatcher activity.
type Stats struct {
	Published  uint64
	Delivered  uint64
	Coalesced  uint64
	SinkErrors uint64
}

// Dispatcher delivers snapshots to sinks on a background goroutine.
// Snapshots reach every sink in publish order; each snapshot is delivered
// to all sinks before the next one starts.
type Dispatcher struct {
	sinks     []Sink
	logger    *log.Logger
	semaphore chan struct{}
	queue     chan board.Board

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool

	published  atomic.Uint64
	delivered  atomic.Uint64
	coalesced  atomic.Uint64
	sinkErrors atomic.Uint64
}

// NewDispatcher starts a dispatcher for sinks. Close must be called to
// stop it.
func NewDispatcher(ctx context.Context, opts DispatcherOptions, sinks ...Sink) *Dispatcher {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	d := &Dispatcher{
		sinks:     append([]Sink(nil), sinks...),
		logger:    logger,
		semaphore: make(chan struct{}, workers),
		queue:     make(chan board.Board, queueSize),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Publish queues b for delivery without blocking. It has the shape of a
// board.ChangeFunc so it can be passed to board.WithOnChange directly.
func (d *Dispatcher) Publish(b board.Board) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.published.Add(1)
	for {
		select {
		case d.queue <- b:
			return
		default:
		}
		// Full: drop the oldest pending snapshot.
		select {
		case <-d.queue:
			d.coalesced.Add(1)
		default:
		}
	}
}

// Close stops accepting snapshots, delivers the ones already queued and
// waits for the delivery goroutine to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
	d.cancel()
}

// Abort cancels in-flight deliveries and then closes the dispatcher.
func (d *Dispatcher) Abort() {
	d.cancel()
	d.Close()
}

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Published:  d.published.Load(),
		Delivered:  d.delivered.Load(),
		Coalesced:  d.coalesced.Load(),
		SinkErrors: d.sinkErrors.Load(),
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for b := range d.queue {
		d.deliver(b)
	}
}

func (d *Dispatcher) deliver(b board.Board) {
	var wg sync.WaitGroup
	for i, sink := range d.sinks {
		select {
		case d.semaphore <- struct{}{}:
		case <-d.ctx.Done():
			wg.Wait()
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-d.semaphore }()
			if err := d.notify(sink, b); err != nil {
				d.sinkErrors.Add(1)
				d.logger.Error("notify sink failed", "sink", i, "sink_type", fmt.Sprintf("%T", sink), "err", err)
			}
		}()
	}
	wg.Wait()
	d.delivered.Add(1)
}

func (d *Dispatcher) notify(sink Sink, b board.Board) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.Notify(d.ctx, b)
}
