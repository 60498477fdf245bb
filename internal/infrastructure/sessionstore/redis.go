package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
)

var _ ports.SessionStore = (*RedisStore)(nil)

// Campos del hash de sesión.
const (
	fieldAccess   = "access_token"
	fieldRefresh  = "refresh_token"
	fieldUsername = "username"
)

// RedisStore sesión en un hash de Redis, compartible entre procesos de la misma máquina
// o de un equipo de terminales. Clear es un único DEL.
type RedisStore struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisStore construye el store. ttl <= 0 = sin expiración.
func NewRedisStore(rdb *redis.Client, key string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, key: key, ttl: ttl}
}

// Set reemplaza el hash completo en una transacción MULTI/EXEC.
func (r *RedisStore) Set(ctx context.Context, access, refresh, username string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		pipe.HSet(ctx, r.key, map[string]interface{}{
			fieldAccess:   access,
			fieldRefresh:  refresh,
			fieldUsername: username,
		})
		if r.ttl > 0 {
			pipe.Expire(ctx, r.key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sessionstore: redis set: %w", err)
	}
	return nil
}

// setAccessIfExists escribe el access token solo si el hash existe: un refresh que
// termina después de Clear no deja una sesión a medias.
var setAccessIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
end
return 0
`)

func (r *RedisStore) SetAccessToken(ctx context.Context, access string) error {
	err := setAccessIfExists.Run(ctx, r.rdb, []string{r.key}, fieldAccess, access).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("sessionstore: redis set access: %w", err)
	}
	return nil
}

func (r *RedisStore) AccessToken(ctx context.Context) (string, error) {
	return r.get(ctx, fieldAccess)
}

func (r *RedisStore) RefreshToken(ctx context.Context) (string, error) {
	return r.get(ctx, fieldRefresh)
}

func (r *RedisStore) Username(ctx context.Context) (string, error) {
	return r.get(ctx, fieldUsername)
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("sessionstore: redis clear: %w", err)
	}
	return nil
}

func (r *RedisStore) get(ctx context.Context, field string) (string, error) {
	v, err := r.rdb.HGet(ctx, r.key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sessionstore: redis get %s: %w", field, err)
	}
	return v, nil
}
