package fanout

import (
	"context"
	"time"

	"hostly/mirrorbox/internal/repository"
	"hostly/mirrorbox/pkg/jobqueue"

	"go.uber.org/zap"
)

type Enqueuer interface {
	Enqueue(job jobqueue.Job) error
}

// Sweeper is the reconciliation loop for the non-transactional
// admit-then-enqueue gap: files stuck in pending past the cutoff get
// their fan-out job re-enqueued. Re-running is safe because attempts
// are idempotent.
type Sweeper struct {
	logger    *zap.SugaredLogger
	files     repository.Files
	queue     Enqueuer
	every     time.Duration
	olderThan time.Duration
	stop      chan struct{}
	done      chan struct{}
}

func NewSweeper(logger *zap.SugaredLogger,
	files repository.Files,
	queue Enqueuer,
	every time.Duration,
	olderThan time.Duration) *Sweeper {
	return &Sweeper{
		logger:    logger,
		files:     files,
		queue:     queue,
		every:     every,
		olderThan: olderThan,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.loop()
	s.logger.Debugf("sweeper has started: every %s, cutoff %s", s.every, s.olderThan)
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) loop() {
	defer close(s.done)

	t := time.NewTicker(s.every)
	defer t.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.Sweep(context.Background())
		}
	}
}

func (s *Sweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.olderThan)

	files, err := s.files.ListStuckPending(ctx, cutoff)
	if err != nil {
		s.logger.Errorf("sweep: could not list stuck files: %s", err.Error())
		return
	}

	for _, f := range files {
		if err := s.queue.Enqueue(jobqueue.Job{FileID: f.ID}); err != nil {
			s.logger.Errorf("sweep: could not re-enqueue file %s: %s", f.ID, err.Error())
			continue
		}
		s.logger.Infof("sweep: re-enqueued stuck file %s", f.ID)
	}
}
