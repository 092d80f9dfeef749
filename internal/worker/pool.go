// Package worker implements the buffered worker pool that decouples the
// socket event loop from slow I/O: death documents batch into Mongo and
// webhook notifications fire without blocking a match event.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/database"
	"github.com/jorgeberrex/mars-api/internal/models"
)

var (
	deathsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_deaths_ingested_total",
		Help: "Total number of death documents enqueued",
	})

	deathsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_deaths_failed_total",
		Help: "Total number of death documents that failed to insert",
	})

	tasksExecuted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_worker_tasks_total",
		Help: "Total number of async tasks executed",
	})

	tasksFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_worker_tasks_failed_total",
		Help: "Total number of async tasks that returned an error",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mars_worker_queue_depth",
		Help: "Current depth of the worker queue",
	})

	batchInsertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mars_death_insert_duration_seconds",
		Help:    "Duration of batched death inserts",
		Buckets: prometheus.DefBuckets,
	})

	jobsLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mars_worker_jobs_load_shed_total",
		Help: "Total number of jobs dropped because the pool was shutting down",
	})
)

// Job is one unit of async work: either a death document destined for the
// batch inserter or an arbitrary task such as a webhook send.
type Job struct {
	Death *models.Death
	Task  func(context.Context) error
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	DB            *database.Database
	Logger        *zap.SugaredLogger
}

// Pool manages the worker goroutines for async processing.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 10000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("Worker pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop drains the queue and waits for in-flight batches to flush.
func (p *Pool) Stop() {
	p.logger.Info("Stopping worker pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

// EnqueueDeath queues a death document for batched insertion. Returns
// false when the pool has stopped accepting work.
func (p *Pool) EnqueueDeath(death *models.Death) bool {
	if p.enqueue(Job{Death: death}) {
		deathsIngested.Inc()
		return true
	}
	return false
}

// Submit queues an arbitrary task, typically a webhook send.
func (p *Pool) Submit(task func(context.Context) error) bool {
	return p.enqueue(Job{Task: task})
}

func (p *Pool) enqueue(job Job) (ok bool) {
	// Protect against sending on closed channel during shutdown.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("Failed to enqueue job (pool stopped)", "error", r)
			ok = false
		}
	}()

	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		jobsLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

// worker accumulates deaths into batches and runs tasks inline.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]models.Death, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := p.config.DB.InsertDeaths(ctx, batch)
		cancel()
		if err != nil {
			p.logger.Errorw("Death batch insert failed", "worker", id, "batchSize", len(batch), "error", err)
			deathsFailed.Add(float64(len(batch)))
		}
		batchInsertDuration.Observe(time.Since(start).Seconds())
		batch = batch[:0]
	}

	for {
		select {
		case job, open := <-p.jobQueue:
			if !open {
				flush()
				return
			}
			if job.Death != nil {
				batch = append(batch, *job.Death)
				if len(batch) >= p.config.BatchSize {
					flush()
				}
			}
			if job.Task != nil {
				p.runTask(id, job.Task)
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (p *Pool) runTask(worker int, task func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorw("Async task panicked", "worker", worker, "error", r)
			tasksFailed.Inc()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasksExecuted.Inc()
	if err := task(ctx); err != nil {
		tasksFailed.Inc()
		p.logger.Warnw("Async task failed", "worker", worker, "error", err)
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
