package repository

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/household-market/internal/utils"
)

// TokenBlacklist holds access tokens revoked before their natural expiry.
// Entries only need to live until the token's own exp claim: after that the
// signature check rejects the token anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, raw string, exp time.Time) error
	IsRevoked(ctx context.Context, raw string) (bool, error)
}

// MemoryBlacklist is a process-local revocation set.  Memory stays bounded
// because Sweep drops every entry whose expiry has passed.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time // token hash -> expiry
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

// Revoke records raw until exp.  Tokens that are already expired are not stored.
func (b *MemoryBlacklist) Revoke(_ context.Context, raw string, exp time.Time) error {
	if !exp.After(b.now()) {
		return nil
	}
	b.mu.Lock()
	b.entries[utils.HashToken(raw)] = exp
	b.mu.Unlock()
	return nil
}

// IsRevoked reports whether raw is in the set and not yet expired.
func (b *MemoryBlacklist) IsRevoked(_ context.Context, raw string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.entries[utils.HashToken(raw)]
	return ok && b.now().Before(exp), nil
}

// Sweep evicts entries that expired at or before now and returns how many
// were removed.
func (b *MemoryBlacklist) Sweep(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	removed := 0
	for k, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held.
func (b *MemoryBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Run sweeps every interval until ctx is cancelled.  Sweeps that evict
// something are logged at debug with the remaining size.
func (b *MemoryBlacklist) Run(ctx context.Context, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := b.Sweep(b.now()); n > 0 {
				log.WithFields(logrus.Fields{"evicted": n, "remaining": b.Len()}).Debug("revocation sweep")
			}
		}
	}
}

// RedisBlacklist shares the revocation set between instances.  Each entry
// is a key whose TTL equals the token's remaining lifetime, so Redis does
// the eviction.
type RedisBlacklist struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisBlacklist(rdb *redis.Client, prefix string) *RedisBlacklist {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RedisBlacklist{rdb: rdb, prefix: prefix}
}

func (b *RedisBlacklist) key(raw string) string {
	return b.prefix + ":" + utils.HashToken(raw)
}

func (b *RedisBlacklist) Revoke(ctx context.Context, raw string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, b.key(raw), 1, ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, raw string) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.key(raw)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
