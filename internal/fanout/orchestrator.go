package fanout

import (
	"context"
	"fmt"
	"time"

	"hostly/mirrorbox/internal/entities"
	"hostly/mirrorbox/internal/repository"
	"hostly/mirrorbox/internal/storage"
	"hostly/mirrorbox/pkg/apierrors"
	"hostly/mirrorbox/pkg/dealer"
	"hostly/mirrorbox/pkg/jobqueue"
	"hostly/mirrorbox/pkg/metrics"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Worker is the delegated-upload worker surface; WorkerClient is the
// HTTP implementation.
type Worker interface {
	Mirror(ctx context.Context, inp *WorkerRequest) (*WorkerResponse, error)
}

type Config struct {
	MaxTries      int
	WorkerTimeout time.Duration
	BackoffBase   time.Duration
	ReadURLTTL    time.Duration
}

// Orchestrator consumes one "mirror this file" job: it fans the file
// out to every target mirror under the pool's concurrency cap and
// reconciles the aggregate file status from per-mirror outcomes.
type Orchestrator struct {
	logger   *zap.SugaredLogger
	files    repository.Files
	mirrors  repository.Mirrors
	attempts repository.Attempts
	gateway  storage.Gateway
	worker   Worker
	pool     *dealer.Dealer
	cfg      *Config
}

func New(logger *zap.SugaredLogger,
	files repository.Files,
	mirrors repository.Mirrors,
	attempts repository.Attempts,
	gateway storage.Gateway,
	worker Worker,
	pool *dealer.Dealer,
	cfg *Config) *Orchestrator {
	return &Orchestrator{
		logger:   logger,
		files:    files,
		mirrors:  mirrors,
		attempts: attempts,
		gateway:  gateway,
		worker:   worker,
		pool:     pool,
		cfg:      cfg,
	}
}

func (o *Orchestrator) Handle(ctx context.Context, job jobqueue.Job) error {

	f, err := o.files.Get(ctx, job.FileID)
	if err != nil {
		return apierrors.WrapInternal(err, "Orchestrator.Handle.files.Get")
	}
	if f == nil {
		// A job for a file that was never admitted signals a bug
		// upstream. Surfaced to the job runner's retry policy.
		return apierrors.Infrastructure("file %s not found", job.FileID)
	}

	if err := o.files.UpdateStatus(ctx, f.ID, entities.FileStatusProcessing); err != nil {
		return apierrors.WrapInternal(err, "Orchestrator.Handle.UpdateStatus")
	}

	targets, err := o.targets(ctx, job)
	if err != nil {
		return err
	}

	jobs := make([]*dealer.Job, 0, len(targets))
	for _, m := range targets {
		m := m
		jobs = append(jobs, o.pool.Run(func() *dealer.JobResult {
			return dealer.NewJobResult(nil, o.processMirror(ctx, f, m))
		}))
	}

	// One mirror's exhaustion never cancels the others: every target
	// is awaited before the aggregate status is recomputed.
	var firstErr error
	for _, j := range jobs {
		if res := j.Wait(); res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}

	attempts, err := o.attempts.ListByFile(ctx, f.ID)
	if err != nil {
		return apierrors.WrapInternal(err, "Orchestrator.Handle.ListByFile")
	}

	if status, ok := Reconcile(attempts); ok {
		if err := o.files.UpdateStatus(ctx, f.ID, status); err != nil {
			return apierrors.WrapInternal(err, "Orchestrator.Handle.UpdateStatus")
		}
		o.logger.Debugf("file %s reconciled to %s", f.ID, status)
	}

	return firstErr
}

// Rescue runs when the job runner's own retries are exhausted. It
// guarantees no file is left indefinitely in processing.
func (o *Orchestrator) Rescue(ctx context.Context, job jobqueue.Job, cause error) {

	reason := "job retries exhausted"
	if cause != nil {
		reason = fmt.Sprintf("job retries exhausted: %s", cause.Error())
	}

	f, err := o.files.Get(ctx, job.FileID)
	if err != nil {
		o.logger.Errorf("rescue: could not load file %s: %s", job.FileID, err.Error())
		return
	}
	if f == nil {
		o.logger.Errorf("rescue: file %s not found", job.FileID)
		return
	}

	if err := o.attempts.FailNonTerminal(ctx, f.ID, reason); err != nil {
		o.logger.Errorf("rescue: could not fail attempts of file %s: %s", f.ID, err.Error())
	}
	if err := o.files.UpdateStatus(ctx, f.ID, entities.FileStatusFailed); err != nil {
		o.logger.Errorf("rescue: could not fail file %s: %s", f.ID, err.Error())
	}

	o.logger.Warnf("file %s rescued to failed: %s", f.ID, reason)
}

func (o *Orchestrator) targets(ctx context.Context, job jobqueue.Job) ([]*entities.Mirror, error) {
	// A named mirror narrows the run to a manual re-run of one target.
	if job.Mirror != "" {
		m, err := o.mirrors.GetByName(ctx, job.Mirror)
		if err != nil {
			return nil, apierrors.WrapInternal(err, "Orchestrator.targets.GetByName")
		}
		if m == nil {
			return nil, apierrors.Infrastructure("mirror %s not found", job.Mirror)
		}
		return []*entities.Mirror{m}, nil
	}

	targets, err := o.mirrors.GetEnabled(ctx)
	if err != nil {
		return nil, apierrors.WrapInternal(err, "Orchestrator.targets.GetEnabled")
	}

	return targets, nil
}

type outcome int

const (
	outcomeRetryable outcome = iota
	outcomeTerminal
	outcomeSuccess
)

type tryResult struct {
	outcome outcome
	resp    *WorkerResponse
	err     error
}

func (o *Orchestrator) processMirror(ctx context.Context, f *entities.File, m *entities.Mirror) error {

	att, err := o.attempts.Get(ctx, f.ID, m.ID)
	if err != nil {
		return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Get")
	}

	// Done is terminal: safe to re-run the whole job.
	if att != nil && att.Status == entities.AttemptStatusDone {
		return nil
	}

	if cap, ok := m.Config.MaxFileSize(); ok && f.Size > cap {
		// Silently excluded, not counted as failed.
		o.logger.Debugf("mirror %s skipped for file %s: size %d exceeds cap %d", m.Name, f.ID, f.Size, cap)
		return nil
	}

	if att == nil {
		now := time.Now().UTC()
		att = &entities.MirrorAttempt{
			ID:         uuid.NewString(),
			FileID:     f.ID,
			MirrorID:   m.ID,
			MirrorName: m.Name,
			Status:     entities.AttemptStatusQueued,
			Metadata:   map[string]interface{}{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		created, err := o.attempts.Create(ctx, att)
		if err != nil {
			return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Create")
		}
		if !created {
			// Lost the race against a concurrent redelivery.
			att, err = o.attempts.Get(ctx, f.ID, m.ID)
			if err != nil {
				return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Get")
			}
			if att == nil {
				return apierrors.Infrastructure("attempt for file %s mirror %s vanished", f.ID, m.ID)
			}
			if att.Status == entities.AttemptStatusDone {
				return nil
			}
		}
	}

	if att.Metadata == nil {
		att.Metadata = map[string]interface{}{}
	}
	att.Status = entities.AttemptStatusUploading

	var lastErr error
	for try := 0; try < o.cfg.MaxTries; try++ {
		if try > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(o.cfg.BackoffBase << (try - 1)):
			}
			if ctx.Err() != nil {
				lastErr = ctx.Err()
				break
			}
		}

		att.Attempts++
		if err := o.attempts.Update(ctx, att); err != nil {
			return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Update")
		}

		res := o.tryMirror(ctx, f, m, att)
		switch res.outcome {
		case outcomeSuccess:
			att.Status = entities.AttemptStatusDone
			att.URL = res.resp.DownloadURL
			att.ExpiresAt = res.resp.ExpiresAt
			for k, v := range res.resp.Metadata {
				att.Metadata[k] = v
			}
			if err := o.attempts.Update(ctx, att); err != nil {
				return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Update")
			}

			metrics.MirrorAttemptsTotal.WithLabelValues(m.Name, "done").Inc()
			o.logger.Debugf("mirror %s done for file %s after %d tries", m.Name, f.ID, att.Attempts)
			return nil

		case outcomeTerminal:
			// The worker explicitly reported failure: not retried.
			att.Status = entities.AttemptStatusFailed
			att.Metadata["error"] = res.resp.Error
			for k, v := range res.resp.Metadata {
				att.Metadata[k] = v
			}
			if err := o.attempts.Update(ctx, att); err != nil {
				return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Update")
			}

			metrics.MirrorAttemptsTotal.WithLabelValues(m.Name, "failed").Inc()
			o.logger.Warnf("mirror %s terminally failed for file %s: %s", m.Name, f.ID, res.resp.Error)
			return nil

		default:
			lastErr = res.err
			o.logger.Warnf("mirror %s try %d failed for file %s: %s", m.Name, att.Attempts, f.ID, res.err.Error())
		}
	}

	att.Status = entities.AttemptStatusFailed
	if lastErr != nil {
		att.Metadata["error"] = lastErr.Error()
	}
	if err := o.attempts.Update(ctx, att); err != nil {
		return apierrors.WrapInternal(err, "Orchestrator.processMirror.attempts.Update")
	}

	metrics.MirrorAttemptsTotal.WithLabelValues(m.Name, "failed").Inc()
	return nil
}

func (o *Orchestrator) tryMirror(ctx context.Context, f *entities.File, m *entities.Mirror, att *entities.MirrorAttempt) tryResult {

	readURL, err := o.gateway.IssueReadCredential(ctx, f.StorageKey, o.cfg.ReadURLTTL)
	if err != nil {
		return tryResult{outcome: outcomeRetryable, err: err}
	}

	cctx, cancel := context.WithTimeout(ctx, o.cfg.WorkerTimeout)
	defer cancel()

	start := time.Now()
	resp, err := o.worker.Mirror(cctx, &WorkerRequest{
		JobID:         att.ID,
		FileID:        f.ID,
		FileURL:       readURL,
		Filename:      f.Filename,
		Size:          f.Size,
		Service:       m.Name,
		ServiceConfig: m.Config,
	})
	metrics.WorkerCallDuration.WithLabelValues(m.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("worker call timed out after %s", o.cfg.WorkerTimeout)
		}
		return tryResult{outcome: outcomeRetryable, err: err}
	}

	if !resp.Success {
		return tryResult{outcome: outcomeTerminal, resp: resp}
	}

	return tryResult{outcome: outcomeSuccess, resp: resp}
}

// Reconcile derives the file status from the multiset of terminal
// attempt statuses, independent of arrival order: any done attempt
// completes the file, failures alone fail it. ok=false means some
// attempt is still in flight and the status is left unchanged.
func Reconcile(attempts []*entities.MirrorAttempt) (entities.FileStatus, bool) {
	var done, failed int
	for _, a := range attempts {
		switch a.Status {
		case entities.AttemptStatusDone:
			done++
		case entities.AttemptStatusFailed:
			failed++
		default:
			return "", false
		}
	}

	if failed > 0 && done == 0 {
		return entities.FileStatusFailed, true
	}

	return entities.FileStatusCompleted, true
}
