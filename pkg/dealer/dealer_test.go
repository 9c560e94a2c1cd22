package dealer

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const maxWorkers = 5

func TestCanStartStop(t *testing.T) {

	d := New(zap.NewNop().Sugar(), maxWorkers)
	d.Start()
	d.Stop()
}

func TestCanExecuteJobsAndReceiveOutput(t *testing.T) {
	t.Parallel()

	d := New(zap.NewNop().Sugar(), maxWorkers)
	d.Start()

	for i := 0; i < 50; i++ {
		j := d.Run(func() *JobResult {
			return NewJobResult("out", nil)
		})

		res := j.Wait()
		require.NoError(t, res.Err)
		require.Equal(t, "out", res.Out.(string))
	}

	d.Stop()
}

func TestCanExecuteJobsAsyncAndReadErrors(t *testing.T) {
	t.Parallel()

	d := New(zap.NewNop().Sugar(), maxWorkers)
	d.Start()

	wg := new(sync.WaitGroup)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			j := d.Run(func() *JobResult {
				return NewJobResult(nil, errors.New("err"))
			})
			res := j.Wait()
			wg.Done()
			require.Error(t, res.Err)
		}()
	}

	wg.Wait()
	d.Stop()
}

func TestNeverExceedsConcurrencyCap(t *testing.T) {
	t.Parallel()

	d := New(zap.NewNop().Sugar(), maxWorkers)
	d.Start()

	var inflight, peak int32

	jobs := make([]*Job, 0, 50)
	for i := 0; i < 50; i++ {
		jobs = append(jobs, d.Run(func() *JobResult {
			n := atomic.AddInt32(&inflight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond * 10)
			atomic.AddInt32(&inflight, -1)
			return NewJobResult(nil, nil)
		}))
	}

	for _, j := range jobs {
		require.NoError(t, j.Wait().Err)
	}
	d.Stop()

	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(maxWorkers))
}
