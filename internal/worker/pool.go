package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueStockCheck = "jobs:stock_check"
	QueueEmail      = "jobs:email"

	JobStockCheck    = "stock_check"
	JobPurchaseOrder = "purchase_order_email"

	// MaxAttempts is how many times a job is tried before it is moved to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Processor handles the payload of one job type. A returned error causes
// the job to be retried.
type Processor interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueStockCheck asks the pool to re-evaluate alerts for the touched rows.
func (d *Dispatcher) EnqueueStockCheck(ctx context.Context, payload StockCheckPayload) error {
	return d.enqueue(ctx, QueueStockCheck, JobStockCheck, payload)
}

// EnqueuePurchaseOrder pushes a purchase-order email job.
func (d *Dispatcher) EnqueuePurchaseOrder(ctx context.Context, payload PurchaseOrderPayload) error {
	return d.enqueue(ctx, QueueEmail, JobPurchaseOrder, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// Pool consumes the job queues and routes each job to its Processor.
type Pool struct {
	rdb        *redis.Client
	processors map[string]Processor
	queues     []string
}

func NewPool(rdb *redis.Client) *Pool {
	return &Pool{
		rdb:        rdb,
		processors: make(map[string]Processor),
		queues:     []string{QueueStockCheck, QueueEmail},
	}
}

// Register binds a job type to its processor. Call before Start.
func (p *Pool) Register(jobType string, proc Processor) {
	p.processors[jobType] = proc
}

// Start launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop, waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.ProcessOne(ctx, result[0], result[1])
		}
	}
}

// ProcessOne runs a single raw job taken from queue. Failures are pushed back
// onto the queue until MaxAttempts, then moved to the DLQ.
func (p *Pool) ProcessOne(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, p.rdb, queue, "unknown", json.RawMessage(`null`), "malformed job: "+err.Error(), 0)
		return
	}

	proc, ok := p.processors[job.Type]
	if !ok {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, "no processor registered", job.Attempts)
		return
	}

	log.Debug().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts+1).Msg("processing job")
	err := proc.Process(ctx, job.Payload)
	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= MaxAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	log.Warn().Err(err).Str("type", job.Type).Int("attempts", job.Attempts).Msg("job failed, requeueing")
	if pushErr := push(ctx, p.rdb, queue, job); pushErr != nil {
		log.Error().Err(pushErr).Str("queue", queue).Msg("failed to requeue job")
	}
}
