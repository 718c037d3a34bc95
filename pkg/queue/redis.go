package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"CryptoIntel/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Mode int

const (
	ModeProducerConsumer Mode = iota
	ModeProducerOnly
	ModeConsumerOnly
)

func (m Mode) String() string {
	switch m {
	case ModeProducerOnly:
		return "producer-only"
	case ModeConsumerOnly:
		return "consumer-only"
	default:
		return "producer-consumer"
	}
}

const requeueTimeout = 5 * time.Second

// RedisQueue is a list backed work queue with delayed retries in a sorted set
// and a dead letter list.
type RedisQueue struct {
	logger    *logger.Logger
	config    Config
	client    *redis.Client
	mode      Mode
	keyPrefix string
	now       func() time.Time

	mu      sync.RWMutex
	jobs    map[string]Job
	running bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

type Option func(*RedisQueue)

func WithKeyPrefix(prefix string) Option {
	return func(r *RedisQueue) {
		if prefix != "" {
			r.keyPrefix = prefix
		}
	}
}

func NewRedisQueue(lgr *logger.Logger, cfg Config, client *redis.Client, mode Mode, opts ...Option) *RedisQueue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 10 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if lgr == nil {
		lgr = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &RedisQueue{
		logger:    lgr,
		config:    cfg,
		client:    client,
		mode:      mode,
		keyPrefix: "cryptointel:queue",
		now:       time.Now,
		jobs:      make(map[string]Job),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a job. Ignored on producer-only queues.
func (r *RedisQueue) Register(job Job) {
	if r.mode == ModeProducerOnly {
		r.logger.Warn("job registration ignored in producer-only mode", logger.String("job", job.Name()))
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.Type()]; ok {
		r.logger.Warn("job already registered", logger.String("job", job.Name()))
		return
	}
	r.jobs[job.Type()] = job
	r.logger.Info("job registered", logger.String("job", job.Name()), logger.String("type", job.Type()))
}

// Start pings Redis and, unless producer-only, launches the workers and the retry mover.
func (r *RedisQueue) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("queue already running")
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(r.ctx, 5*time.Second)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}

	r.mu.Lock()
	r.running = true
	r.mu.Unlock()

	if r.mode == ModeProducerOnly {
		r.logger.Info("redis queue publisher started", logger.String("prefix", r.keyPrefix))
		return nil
	}
	for i := 0; i < r.config.Workers; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
	r.wg.Add(1)
	go r.retryLoop()
	r.logger.Info("redis queue started",
		logger.Int("workers", r.config.Workers),
		logger.String("mode", r.mode.String()),
		logger.String("prefix", r.keyPrefix))
	return nil
}

// Stop cancels the workers and waits for them until ctx expires.
func (r *RedisQueue) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.mu.Unlock()
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for queue workers: %w", ctx.Err())
	case <-done:
		r.logger.Info("redis queue stopped")
		return nil
	}
}

// Enqueue pushes payload, JSON encoded, onto the queue.
func (r *RedisQueue) Enqueue(ctx context.Context, msgType string, payload interface{}) error {
	r.mu.RLock()
	running := r.running
	_, known := r.jobs[msgType]
	r.mu.RUnlock()
	if !running {
		return fmt.Errorf("queue not running")
	}
	if r.mode != ModeProducerOnly && !known {
		return fmt.Errorf("no job registered for type: %s", msgType)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	data, err := json.Marshal(Message{
		ID:        uuid.NewString(),
		Type:      msgType,
		Payload:   raw,
		Timestamp: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := r.client.LPush(ctx, r.queueKey(), string(data)).Err(); err != nil {
		return fmt.Errorf("lpush: %w", err)
	}
	return nil
}

func (r *RedisQueue) worker(id int) {
	defer r.wg.Done()
	for r.ctx.Err() == nil {
		res, err := r.client.BRPop(r.ctx, r.config.PollInterval, r.queueKey()).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || r.ctx.Err() != nil {
				continue
			}
			r.logger.Error("brpop error", logger.Int("worker_id", id), logger.Error(err))
			select {
			case <-r.ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if len(res) < 2 {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
			r.logger.Error("unmarshal message", logger.Error(err))
			continue
		}
		r.process(r.ctx, msg)
	}
}

func (r *RedisQueue) process(ctx context.Context, msg Message) {
	r.mu.RLock()
	job, ok := r.jobs[msg.Type]
	r.mu.RUnlock()
	if !ok {
		r.logger.Error("no job found", logger.String("type", msg.Type), logger.String("id", msg.ID))
		return
	}

	start := time.Now()
	err := job.Handle(ctx, msg.Payload)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		r.logger.Warn("message cancelled, requeueing", logger.String("id", msg.ID), logger.Duration("elapsed", time.Since(start)))
		r.requeue(msg)
		return
	}
	r.logger.Error("message processing error",
		logger.String("id", msg.ID),
		logger.String("job", job.Name()),
		logger.Int("attempt", msg.Attempts+1),
		logger.Error(err))

	msg.Attempts++
	if msg.Attempts <= r.config.RetryLimit {
		r.scheduleRetry(ctx, msg, r.now().Add(r.config.RetryDelay))
		return
	}
	r.logger.Error("max retries reached", logger.String("id", msg.ID), logger.String("job", job.Name()))
	r.deadLetter(ctx, msg)
}

// requeue puts an interrupted message back at the consuming end of the list so it is taken
// first on the next start. The worker context is already done here.
func (r *RedisQueue) requeue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("marshal requeue", logger.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requeueTimeout)
	defer cancel()
	if err := r.client.RPush(ctx, r.queueKey(), string(data)).Err(); err != nil {
		r.logger.Error("rpush requeue", logger.String("id", msg.ID), logger.Error(err))
	}
}

func (r *RedisQueue) scheduleRetry(ctx context.Context, msg Message, at time.Time) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("marshal retry", logger.Error(err))
		return
	}
	if err := r.client.ZAdd(ctx, r.retryKey(), redis.Z{Score: float64(at.Unix()), Member: string(data)}).Err(); err != nil {
		r.logger.Error("zadd retry", logger.Error(err))
	}
}

func (r *RedisQueue) deadLetter(ctx context.Context, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		r.logger.Error("marshal dlq", logger.Error(err))
		return
	}
	if err := r.client.LPush(ctx, r.deadLetterKey(), string(data)).Err(); err != nil {
		r.logger.Error("lpush dlq", logger.Error(err))
	}
}

func (r *RedisQueue) retryLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.moveDueRetries(r.ctx)
		}
	}
}

// moveRetryScript moves one retry member back to the main list only if this caller removed it,
// so instances sharing the keys never requeue the same message twice.
var moveRetryScript = redis.NewScript(`
if redis.call('ZREM', KEYS[1], ARGV[1]) == 1 then
	redis.call('LPUSH', KEYS[2], ARGV[1])
	return 1
end
return 0
`)

// moveDueRetries puts retries whose time has come back on the main list and reports how many it moved.
func (r *RedisQueue) moveDueRetries(ctx context.Context) int {
	due, err := r.client.ZRangeByScore(ctx, r.retryKey(), &redis.ZRangeBy{
		Min: "0",
		Max: strconv.FormatInt(r.now().Unix(), 10),
	}).Result()
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("fetch retry messages", logger.Error(err))
		}
		return 0
	}
	moved := 0
	for _, data := range due {
		n, err := moveRetryScript.Run(ctx, r.client, []string{r.retryKey(), r.queueKey()}, data).Int()
		if err != nil {
			if ctx.Err() != nil {
				return moved
			}
			r.logger.Error("move retry to queue", logger.Error(err))
			continue
		}
		moved += n
	}
	return moved
}

func (r *RedisQueue) queueKey() string      { return r.keyPrefix + ":messages" }
func (r *RedisQueue) retryKey() string      { return r.keyPrefix + ":retry" }
func (r *RedisQueue) deadLetterKey() string { return r.keyPrefix + ":dlq" }

var _ Publisher = (*RedisQueue)(nil)
