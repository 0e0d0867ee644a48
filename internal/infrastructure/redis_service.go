package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"foodgram-service/internal/config"
	"foodgram-service/internal/infrastructure/logger"
)

// RedisService is the shared cache tier. A nil client means redis is
// disabled; every call then behaves like a miss or a no-op.
type RedisService struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisService(cfg config.RedisConfig, baseLog *logger.Logger) *RedisService {
	log := baseLog.With("component", "RedisService")
	if !cfg.Enabled {
		log.Info("redis disabled")
		return &RedisService{log: log}
	}

	var opt *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Warn("invalid redis url, redis disabled", "error", err)
			return &RedisService{log: log}
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	}

	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis connection failed, redis disabled", "addr", opt.Addr, "error", err)
		_ = client.Close()
		return &RedisService{log: log}
	}

	log.Info("connected to redis", "addr", opt.Addr)
	return &RedisService{client: client, log: log}
}

// NewRedisServiceWithClient wraps an existing client.
func NewRedisServiceWithClient(client *redis.Client, baseLog *logger.Logger) *RedisService {
	return &RedisService{client: client, log: baseLog.With("component", "RedisService")}
}

func (r *RedisService) Enabled() bool {
	return r.client != nil
}

// GetJSON decodes the value under key into dest. It reports false on a miss.
func (r *RedisService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if r.client == nil {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, ttl).Err()
}

func (r *RedisService) DeleteKey(ctx context.Context, keys ...string) error {
	if r.client == nil || len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisService) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
