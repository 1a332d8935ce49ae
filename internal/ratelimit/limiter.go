package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Token-bucket settings. The fingerprint bucket is generous; the IP bucket is
// a stricter fallback consulted only when the fingerprint bucket is drained,
// so shared-NAT users are not punished for one noisy neighbour.
const (
	capacity   = 10
	ipCapacity = 2
	refillRate = 1 // tokens per second
	timeWindow = 30 * time.Second
)

type Limiter struct {
	rdb *redis.Client
}

func NewLimiter(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

// Allow consumes one token from the client's fingerprint bucket, falling back
// to the per-IP bucket. First sight of a key initializes the bucket full and
// admits the request. Redis errors fail open: a broken limiter should not
// take rating submissions down with it.
func (l *Limiter) Allow(ctx context.Context, userFingerprint, clientIP string) bool {
	ok, err := l.takeToken(ctx, "token_bucket:FP:"+userFingerprint, capacity)
	if err != nil {
		return true
	}
	if ok {
		return true
	}

	ok, err = l.takeToken(ctx, "token_bucket:IP:"+clientIP, ipCapacity)
	if err != nil {
		return true
	}
	return ok
}

func (l *Limiter) takeToken(ctx context.Context, key string, bucketCapacity int) (bool, error) {
	refillKey := key + ":last_refill"

	tokens, err := l.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		if err := l.rdb.SetEx(ctx, key, bucketCapacity, timeWindow).Err(); err != nil {
			return false, err
		}
		if err := l.rdb.Set(ctx, refillKey, time.Now().UnixMilli(), 0).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	count, convErr := strconv.Atoi(tokens)
	if convErr != nil {
		count = bucketCapacity
	}

	lastRefill := time.Now().UnixMilli()
	if raw, err := l.rdb.Get(ctx, refillKey).Result(); err == nil {
		if ms, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
			lastRefill = ms
		}
	}

	elapsed := float64(time.Now().UnixMilli()-lastRefill) / 1000
	count += int(elapsed * refillRate)
	if count > bucketCapacity {
		count = bucketCapacity
	}

	if err := l.rdb.Set(ctx, key, count, 0).Err(); err != nil {
		return false, err
	}
	if err := l.rdb.Set(ctx, refillKey, time.Now().UnixMilli(), 0).Err(); err != nil {
		return false, err
	}

	if count > 0 {
		if err := l.rdb.Decr(ctx, key).Err(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
