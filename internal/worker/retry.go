package worker

// retry.go: failed jobs wait in a Redis sorted set scored by their due time.
// A ticker moves due jobs back onto their queue. While the mail breaker is
// open nothing is released, so a dead SMTP server does not burn attempts.

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"salelog/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	delayedPrefix     = "delayed:"
	retryTickInterval = 10 * time.Second
	retryBatchSize    = 10
)

// RetryScheduler holds failed jobs until their backoff expires.
type RetryScheduler struct {
	rdb *redis.Client
	cb  *infra.CircuitBreaker
	now func() time.Time
}

// NewRetryScheduler creates a scheduler. cb may be nil.
func NewRetryScheduler(rdb *redis.Client, cb *infra.CircuitBreaker) *RetryScheduler {
	return &RetryScheduler{rdb: rdb, cb: cb, now: time.Now}
}

// Backoff returns the wait before the given attempt is retried:
// 30s, 2m, 8m, capped at 30m.
func Backoff(attempts int) time.Duration {
	d := 30 * time.Second
	for i := 1; i < attempts; i++ {
		d *= 4
		if d >= 30*time.Minute {
			return 30 * time.Minute
		}
	}
	return d
}

// Schedule parks job until its backoff has elapsed.
func (s *RetryScheduler) Schedule(ctx context.Context, queue string, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	due := s.now().Add(Backoff(job.Attempts))
	return s.rdb.ZAdd(ctx, delayedPrefix+queue, redis.Z{Score: float64(due.Unix()), Member: data}).Err()
}

// Start ticks until ctx is cancelled, releasing due jobs on every tick.
func (s *RetryScheduler) Start(ctx context.Context, queues ...string) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()
		log.Info().Msg("retry scheduler started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry scheduler shutting down")
				return
			case <-ticker.C:
				for _, q := range queues {
					if _, err := s.Release(ctx, q); err != nil {
						log.Error().Err(err).Str("queue", q).Msg("retry release failed")
					}
				}
			}
		}
	}()
}

// Release moves due jobs of queue back onto it and reports how many moved.
func (s *RetryScheduler) Release(ctx context.Context, queue string) (int, error) {
	if s.cb != nil && s.cb.State() == infra.CBOpen {
		log.Debug().Str("queue", queue).Msg("circuit breaker is open, holding retries")
		return 0, nil
	}

	key := delayedPrefix + queue
	due, err := s.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(s.now().Unix(), 10),
		Count: retryBatchSize,
	}).Result()
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, member := range due {
		// ZRem first so two schedulers never release the same job twice.
		n, err := s.rdb.ZRem(ctx, key, member).Result()
		if err != nil {
			return moved, err
		}
		if n == 0 {
			continue
		}
		if err := s.rdb.LPush(ctx, queue, member).Err(); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// Pending returns how many jobs are waiting for a retry.
func (s *RetryScheduler) Pending(ctx context.Context, queue string) (int64, error) {
	return s.rdb.ZCard(ctx, delayedPrefix+queue).Result()
}
