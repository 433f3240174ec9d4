package turnlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTurnInFlight is returned when a session already has a turn running.
var ErrTurnInFlight = fmt.Errorf("a turn is already in flight for this session")

// TurnLock serializes turns per session so a client cannot interleave two
// model invocations on the same conversation. Backed by redis SET NX with
// a TTL so a crashed worker cannot wedge a session forever.
type TurnLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *TurnLock {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &TurnLock{rdb: rdb, ttl: ttl}
}

func key(sessionID string) string {
	return "coach:turnlock:" + sessionID
}

// Acquire takes the lock for sessionID or returns ErrTurnInFlight.
func (t *TurnLock) Acquire(ctx context.Context, sessionID string) error {
	ok, err := t.rdb.SetNX(ctx, key(sessionID), "1", t.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire turn lock: %w", err)
	}
	if !ok {
		return ErrTurnInFlight
	}
	return nil
}

// Release frees the lock. Safe to call even if the TTL already expired.
func (t *TurnLock) Release(ctx context.Context, sessionID string) {
	t.rdb.Del(ctx, key(sessionID))
}
