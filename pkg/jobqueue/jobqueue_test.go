package jobqueue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu       sync.Mutex
	handled  []Job
	rescued  []Job
	failures int

	done chan struct{}
}

func (h *recordingHandler) Handle(_ context.Context, job Job) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.handled = append(h.handled, job)
	if h.failures > 0 {
		h.failures--
		return errors.New("boom")
	}

	if h.done != nil {
		close(h.done)
		h.done = nil
	}
	return nil
}

func (h *recordingHandler) Rescue(_ context.Context, job Job, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rescued = append(h.rescued, job)
	if h.done != nil {
		close(h.done)
		h.done = nil
	}
}

func newQueue(h Handler, buffer int) *Queue {
	q := New(zap.NewNop().Sugar(), Config{
		Workers:    2,
		Buffer:     buffer,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	q.Start(h)
	return q
}

func TestDeliversJob(t *testing.T) {
	h := &recordingHandler{done: make(chan struct{})}
	done := h.done

	q := newQueue(h, 4)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{FileID: "f1"}))
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.handled, 1)
	require.Equal(t, "f1", h.handled[0].FileID)
	require.NotEmpty(t, h.handled[0].ID)
	require.Empty(t, h.rescued)
}

func TestRetriesThenSucceeds(t *testing.T) {
	h := &recordingHandler{failures: 2, done: make(chan struct{})}
	done := h.done

	q := newQueue(h, 4)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{FileID: "f1"}))
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.handled, 3)
	require.Empty(t, h.rescued)
}

func TestRescuesAfterBudgetExhausted(t *testing.T) {
	h := &recordingHandler{failures: 100, done: make(chan struct{})}
	done := h.done

	q := newQueue(h, 4)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{FileID: "f1"}))
	<-done

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.handled, 3)
	require.Len(t, h.rescued, 1)
	require.Equal(t, "f1", h.rescued[0].FileID)
}

func TestEnqueueValidatesAtBoundary(t *testing.T) {
	h := &recordingHandler{}

	q := newQueue(h, 4)
	defer q.Stop()

	require.ErrorIs(t, q.Enqueue(Job{}), ErrInvalidJob)
}

func TestEnqueueFailsWhenFull(t *testing.T) {
	// Zero workers: nothing drains the buffer.
	h := &recordingHandler{}
	q := New(zap.NewNop().Sugar(), Config{Workers: 0, Buffer: 1, MaxRetries: 1})
	q.Start(h)

	require.NoError(t, q.Enqueue(Job{FileID: "f1"}))
	require.ErrorIs(t, q.Enqueue(Job{FileID: "f2"}), ErrQueueFull)
}

func TestEnqueueFailsWhenStopped(t *testing.T) {
	q := New(zap.NewNop().Sugar(), Config{Workers: 1, Buffer: 1, MaxRetries: 1})
	require.ErrorIs(t, q.Enqueue(Job{FileID: "f1"}), ErrNotStarted)
}
