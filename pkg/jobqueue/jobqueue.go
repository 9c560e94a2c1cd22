// Package jobqueue is an in-process, at-least-once job runner: a
// bounded buffer, N consumer goroutines, a per-job retry budget and a
// rescue hook fired once the budget is exhausted.
package jobqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull  = errors.New("job queue is full")
	ErrNotStarted = errors.New("job queue has not started")
	ErrInvalidJob = errors.New("job is missing a file id")
)

// Job is the tagged fan-out request payload. Mirror narrows the run
// to a single named mirror when set.
type Job struct {
	ID     string
	FileID string
	Mirror string
}

// Handler consumes one job. A non-nil error from Handle redelivers
// the job until the retry budget runs out, then Rescue fires.
type Handler interface {
	Handle(ctx context.Context, job Job) error
	Rescue(ctx context.Context, job Job, cause error)
}

type Config struct {
	Workers    int
	Buffer     int
	MaxRetries int
	RetryDelay time.Duration
}

type Queue struct {
	logger  *zap.SugaredLogger
	cfg     Config
	handler Handler
	jobq    chan Job
	wg      *sync.WaitGroup
	// 0 - stopped
	// 1 - started
	started int32
}

func New(logger *zap.SugaredLogger, cfg Config) *Queue {
	return &Queue{
		logger: logger,
		cfg:    cfg,
		jobq:   make(chan Job, cfg.Buffer),
		wg:     new(sync.WaitGroup),
	}
}

func (q *Queue) Start(h Handler) {
	q.handler = h
	atomic.StoreInt32(&q.started, 1)

	for n := 0; n < q.cfg.Workers; n++ {
		q.wg.Add(1)
		go q.consume()
	}
	q.logger.Debugf("job queue has started with %d workers", q.cfg.Workers)
}

func (q *Queue) Stop() {
	atomic.StoreInt32(&q.started, 0)
	close(q.jobq)
	q.wg.Wait()
}

// Enqueue never blocks: a full buffer is an error the caller decides
// how to handle.
func (q *Queue) Enqueue(job Job) error {
	if atomic.LoadInt32(&q.started) == 0 {
		return ErrNotStarted
	}
	if job.FileID == "" {
		return ErrInvalidJob
	}
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	select {
	case q.jobq <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Queue) consume() {
	defer q.wg.Done()

	for job := range q.jobq {
		q.process(job)
	}
}

func (q *Queue) process(job Job) {
	ctx := context.Background()

	var lastErr error
	for try := 1; try <= q.cfg.MaxRetries; try++ {
		err := q.handler.Handle(ctx, job)
		if err == nil {
			return
		}

		lastErr = err
		q.logger.Errorf("job %s failed (try %d/%d): %s", job.ID, try, q.cfg.MaxRetries, err.Error())

		if try < q.cfg.MaxRetries {
			time.Sleep(q.cfg.RetryDelay)
		}
	}

	q.handler.Rescue(ctx, job, lastErr)
}
