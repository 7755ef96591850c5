// Package worker runs document parses as background jobs. Upload handling
// submits and returns immediately; job state is polled by ID. Parses of
// different documents share nothing, so workers need no coordination
// beyond the queue.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akpradhn/nitiArthik/internal/logging"
	"github.com/akpradhn/nitiArthik/internal/models"
	"github.com/akpradhn/nitiArthik/internal/store"
)

// ErrQueueFull is returned by Submit when the job queue has no room.
// Callers should surface it as backpressure, not retry in a loop.
var ErrQueueFull = errors.New("parse queue is full")

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool is closed")

// Parser is the parse entry point the pool drives. Implemented by the
// extraction orchestrator.
type Parser interface {
	Parse(ctx context.Context, data []byte, meta models.DocumentMeta) models.ParseOutcome
}

// Job is the observable state of one submitted document.
type Job struct {
	ID          string
	Meta        models.DocumentMeta
	Status      models.ParseStatus
	Outcome     *models.ParseOutcome
	SubmittedAt time.Time
}

type submission struct {
	id   string
	data []byte
	meta models.DocumentMeta
}

// Pool owns the queue and the worker goroutines.
type Pool struct {
	parser  Parser
	store   store.Store
	queue   chan submission
	workers int
	log     logging.Logger

	mu     sync.Mutex
	jobs   map[string]*Job
	closed bool

	wg sync.WaitGroup
}

// NewPool builds a pool with the given worker count and queue capacity.
// Call Start before submitting.
func NewPool(parser Parser, st store.Store, workers, queueSize int, log logging.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	return &Pool{
		parser:  parser,
		store:   st,
		queue:   make(chan submission, queueSize),
		workers: workers,
		log:     log,
		jobs:    make(map[string]*Job),
	}
}

// Start launches the workers. ctx cancellation stops them after the job
// in hand finishes.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Submit enqueues a document and returns its job ID without waiting for
// the parse. The pool keeps its own copy of nothing: data ownership
// transfers to the job.
func (p *Pool) Submit(data []byte, meta models.DocumentMeta) (string, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return "", ErrClosed
	}
	id := uuid.NewString()
	p.jobs[id] = &Job{
		ID:          id,
		Meta:        meta,
		Status:      models.StatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	p.mu.Unlock()

	select {
	case p.queue <- submission{id: id, data: data, meta: meta}:
		p.log.Debug("job queued",
			logging.Field{Key: "job", Value: id},
			logging.Field{Key: "file", Value: meta.FileName})
		return id, nil
	default:
		p.mu.Lock()
		delete(p.jobs, id)
		p.mu.Unlock()
		return "", ErrQueueFull
	}
}

// Job returns a snapshot of the job's current state.
func (p *Pool) Job(id string) (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	j, ok := p.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Close stops intake, drains the queue and waits for the workers.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.queue)
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, n int) {
	defer p.wg.Done()
	log := p.log.WithField("worker", n)

	for {
		select {
		case <-ctx.Done():
			return
		case sub, ok := <-p.queue:
			if !ok {
				return
			}
			p.process(ctx, sub, log)
		}
	}
}

func (p *Pool) process(ctx context.Context, sub submission, log logging.Logger) {
	p.setStatus(sub.id, models.StatusProcessing, nil)
	log.Info("parsing document",
		logging.Field{Key: "job", Value: sub.id},
		logging.Field{Key: "file", Value: sub.meta.FileName})

	outcome := p.parser.Parse(ctx, sub.data, sub.meta)

	if err := p.store.SaveOutcome(sub.id, sub.meta, outcome); err != nil {
		log.WithError(err).Error("failed to persist outcome",
			logging.Field{Key: "job", Value: sub.id})
		failed := outcome
		failed.Status = models.StatusFailed
		failed.ErrorDetail = "persisting outcome: " + err.Error()
		p.setStatus(sub.id, models.StatusFailed, &failed)
		return
	}

	p.setStatus(sub.id, outcome.Status, &outcome)
}

func (p *Pool) setStatus(id string, status models.ParseStatus, outcome *models.ParseOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if j, ok := p.jobs[id]; ok {
		j.Status = status
		j.Outcome = outcome
	}
}
