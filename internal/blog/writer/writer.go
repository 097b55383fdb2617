// Package writer persists records in the background.
//
// Delivery is at-most-once and best-effort: a record is written by exactly one
// attempt or not at all, and the outcome is only visible through Status.
package writer

import (
	"context"
	"sync"
	"time"

	"github.com/hackdb/hackdb/backend/go-services/internal/blog"
	"github.com/hackdb/hackdb/backend/go-services/internal/blog/repository"
	"github.com/hackdb/hackdb/backend/go-services/pkg/logger"
	"github.com/hackdb/hackdb/backend/go-services/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Options tune the writer. Zero values fall back to defaults.
type Options struct {
	QueueSize    int
	Workers      int
	WriteTimeout time.Duration
	// StatusTimeout bounds each status store call; Submit runs on the request path.
	StatusTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = 1024
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 30 * time.Second
	}
	if o.StatusTimeout <= 0 {
		o.StatusTimeout = 100 * time.Millisecond
	}
	return o
}

// Writer drains submitted records into a Repository.
type Writer struct {
	repo     repository.Repository
	statuses StatusStore
	opts     Options
	queue    *queue
	wg       sync.WaitGroup
	start    sync.Once
	stop     sync.Once
}

func New(repo repository.Repository, statuses StatusStore, opts Options) *Writer {
	opts = opts.withDefaults()
	return &Writer{
		repo:     repo,
		statuses: statuses,
		opts:     opts,
		queue:    newQueue(opts.QueueSize),
	}
}

// Start launches the workers. ctx bounds every write; Stop drains the queue.
func (w *Writer) Start(ctx context.Context) {
	w.start.Do(func() {
		for i := 0; i < w.opts.Workers; i++ {
			w.wg.Add(1)
			go w.run(ctx)
		}
	})
}

// Stop refuses new records and waits until queued ones are processed.
func (w *Writer) Stop() {
	w.stop.Do(func() {
		w.queue.close()
		w.wg.Wait()
	})
}

// Submit queues rec without blocking. It reports false when the record was
// dropped; the drop is logged and recorded as a failed status.
func (w *Writer) Submit(ctx context.Context, rec *blog.Record) bool {
	w.setStatus(ctx, rec.ID, StatePending, "")

	ok, closed := w.queue.tryEnqueue(rec)
	if !ok {
		reason := "queue full"
		label := "queue_full"
		if closed {
			reason = "writer stopped"
			label = "closed"
		}
		logger.Errorf("record %s dropped: %s", rec.ID.Hex(), reason)
		metrics.RecordsFailed.WithLabelValues(label).Inc()
		w.setStatus(ctx, rec.ID, StateFailed, reason)
		return false
	}
	metrics.RecordsSubmitted.Inc()
	metrics.WriterQueueDepth.Inc()
	return true
}

// Status returns the last known outcome for the record id.
func (w *Writer) Status(ctx context.Context, id primitive.ObjectID) (*Status, error) {
	return w.statuses.Get(ctx, id)
}

// Pending returns the number of queued records.
func (w *Writer) Pending() int {
	return w.queue.size()
}

func (w *Writer) run(ctx context.Context) {
	defer w.wg.Done()
	for rec := range w.queue.records() {
		w.queue.markDequeued()
		metrics.WriterQueueDepth.Dec()
		w.persist(ctx, rec)
	}
}

func (w *Writer) persist(ctx context.Context, rec *blog.Record) {
	ctx, cancel := context.WithTimeout(ctx, w.opts.WriteTimeout)
	defer cancel()

	if err := w.repo.Insert(ctx, rec); err != nil {
		logger.Errorf("save record %s: %v", rec.ID.Hex(), err)
		metrics.RecordsFailed.WithLabelValues("store").Inc()
		w.setStatus(ctx, rec.ID, StateFailed, err.Error())
		return
	}
	logger.Debugf("saved record id=%s blog=%q num=%v", rec.ID.Hex(), rec.Blog, rec.Num)
	metrics.RecordsSaved.Inc()
	w.setStatus(ctx, rec.ID, StateSaved, "")
}

func (w *Writer) setStatus(ctx context.Context, id primitive.ObjectID, state State, msg string) {
	s := Status{ID: id.Hex(), State: state, Error: msg, UpdatedAt: time.Now().UTC()}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opts.StatusTimeout)
	defer cancel()
	if err := w.statuses.Set(ctx, s); err != nil {
		logger.Warnf("record %s: status %s not stored: %v", s.ID, state, err)
	}
}
