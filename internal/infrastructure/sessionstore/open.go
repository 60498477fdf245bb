package sessionstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/estoque-cliente/internal/application/ports"
	"github.com/jhoicas/estoque-cliente/pkg/config"
)

// Open construye el store configurado. closeFn libera recursos (conexión Redis); siempre es no nil.
func Open(ctx context.Context, cfg config.SessionConfig) (store ports.SessionStore, closeFn func() error, err error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.SessionBackendMemory:
		return NewMemoryStore(), noop, nil
	case config.SessionBackendFile:
		fs, err := NewFileStore(cfg.FilePath)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil
	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noop, fmt.Errorf("sessionstore: conectar a redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisStore(rdb, cfg.RedisPrefix, 0), rdb.Close, nil
	default:
		return nil, noop, fmt.Errorf("sessionstore: backend desconocido %q", cfg.Backend)
	}
}
