package services

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CooldownStore persists per-conversation result cooldowns. The window is an
// expiry timestamp checked at call time, not an in-process timer, so it
// survives restarts and never depends on process uptime.
type CooldownStore interface {
	// Start atomically begins the cooldown for a conversation. It returns
	// false without touching the window if a cooldown is already active,
	// which doubles as the gate against two simultaneous submissions.
	Start(ctx context.Context, chatID string, window time.Duration) (bool, error)
	// Active reports whether the conversation's cooldown is still running.
	Active(ctx context.Context, chatID string) (bool, error)
}

const cooldownKeyPrefix = "result:cooldown:"

// RedisCooldownStore keeps cooldown windows as SET NX keys with a TTL. The
// value is the expiry unix timestamp, which is only there for inspection;
// liveness comes from the key's TTL.
type RedisCooldownStore struct {
	client *redis.Client
}

func NewRedisCooldownStore(client *redis.Client) *RedisCooldownStore {
	return &RedisCooldownStore{client: client}
}

func (s *RedisCooldownStore) Start(ctx context.Context, chatID string, window time.Duration) (bool, error) {
	expiry := strconv.FormatInt(time.Now().Add(window).Unix(), 10)
	return s.client.SetNX(ctx, cooldownKeyPrefix+chatID, expiry, window).Result()
}

func (s *RedisCooldownStore) Active(ctx context.Context, chatID string) (bool, error) {
	n, err := s.client.Exists(ctx, cooldownKeyPrefix+chatID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
