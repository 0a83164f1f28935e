package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:"

// Deleting the key is guarded by the holder token, so a replica whose lock
// already expired cannot release a lock now held by someone else.
const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

var releaseLock = redis.NewScript(releaseLockScript)

// Lock is a best-effort distributed lock. It is held for at most the TTL it
// was acquired with; holders must finish or renew before then.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

func acquireLock(ctx context.Context, client *redis.Client, name string, ttl time.Duration) (*Lock, error) {
	lock := &Lock{
		client: client,
		key:    lockKeyPrefix + name,
		token:  uuid.NewString(),
	}
	ok, err := client.SetNX(ctx, lock.key, lock.token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return lock, nil
}

// Release frees the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return releaseLock.Run(ctx, l.client, []string{l.key}, l.token).Err()
}
