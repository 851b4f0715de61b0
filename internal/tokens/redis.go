package tokens

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore создаёт хранилище токенов поверх Redis из URL
// (например, redis://:pass@host:6379/0). Если prefix пустой —
// используется "console:sess:". TTL ключа продлевается при каждой записи,
// поэтому живая сессия не истекает, а брошенная — удаляется сама.
func NewRedisStore(redisURL, prefix string, ttl time.Duration) (Store, error) {
	if prefix == "" {
		prefix = "console:sess:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisStore{rdb: rdb, prefix: prefix, ttl: ttl}, nil
}

func (s *redisStore) key(sid string) string { return s.prefix + sid }

// Храним как Redis Hash с полями: at (access), rt (refresh).
func (s *redisStore) Pair(ctx context.Context, sid string) (Pair, error) {
	m, err := s.rdb.HGetAll(ctx, s.key(sid)).Result()
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: m["at"], Refresh: m["rt"]}, nil
}

func (s *redisStore) SaveAccess(ctx context.Context, sid, token string) error {
	return s.setFields(ctx, sid, map[string]string{"at": token})
}

func (s *redisStore) SaveRefresh(ctx context.Context, sid, token string) error {
	return s.setFields(ctx, sid, map[string]string{"rt": token})
}

func (s *redisStore) SavePair(ctx context.Context, sid string, p Pair) error {
	return s.setFields(ctx, sid, map[string]string{"at": p.Access, "rt": p.Refresh})
}

func (s *redisStore) setFields(ctx context.Context, sid string, kv map[string]string) error {
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.key(sid), kv)
	pipe.Expire(ctx, s.key(sid), s.ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (s *redisStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, s.key(sid)).Err()
}

func (s *redisStore) Close() error { return s.rdb.Close() }
