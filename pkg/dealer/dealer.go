// Package dealer bounds concurrent work with a semaphore: at most
// maxWorkers submitted jobs run at a time, the rest queue up.
package dealer

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

type Dealer struct {
	sem    chan struct{}
	jobq   chan *Job
	logger *zap.SugaredLogger
	wg     *sync.WaitGroup
	// 0 - stopped
	// 1 - started
	started    int32
	maxWorkers int
}

func New(logger *zap.SugaredLogger, maxWorkers int) *Dealer {
	return &Dealer{
		started:    0,
		logger:     logger,
		maxWorkers: maxWorkers,
		sem:        make(chan struct{}, maxWorkers),
		jobq:       make(chan *Job, maxWorkers),
		wg:         new(sync.WaitGroup),
	}
}

func (d *Dealer) Start() {
	atomic.StoreInt32(&d.started, 1)
	go d.dispatch()
	d.logger.Debugf("dealer has started with %d slots", d.maxWorkers)
}

func (d *Dealer) Stop() {
	atomic.StoreInt32(&d.started, 0)
	d.wg.Wait()
	close(d.jobq)
}

// Run submits f and returns a handle to wait for its result.
func (d *Dealer) Run(f JobFunc) *Job {
	if atomic.LoadInt32(&d.started) == 0 {
		panic("dealer has not started yet!")
	}
	j := newJob(f)
	d.jobq <- j
	return j
}

func (d *Dealer) dispatch() {
	for j := range d.jobq {
		d.acquire()
		d.wg.Add(1)
		go func(j *Job) {
			defer func() {
				d.wg.Done()
				d.release()
			}()
			j.resultch <- j.f()
		}(j)
	}
}

func (d *Dealer) acquire() {
	d.sem <- struct{}{}
}

func (d *Dealer) release() {
	<-d.sem
}
