// internal/events/emitter.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/redis/go-redis/v9"
)

// Event names published by the slotting core.
const (
	AnalysisCompleted         = "slotting.analysis.completed"
	RecommendationImplemented = "slotting.recommendation.implemented"
)

// Emitter is a fire-and-forget notification port. Emit failures are the
// caller's to log, never to propagate: a lost event must not fail an analysis.
type Emitter interface {
	Emit(ctx context.Context, name string, payload any) error
}

type redisEmitter struct {
	client *redis.Client
	prefix string
}

type noopEmitter struct{}

// NewEmitter returns a redis pub/sub emitter, or a noop emitter when events
// are disabled.
func NewEmitter(cfg config.EventsConfig, cacheCfg config.CacheConfig) (Emitter, error) {
	if !cfg.Enabled {
		return &noopEmitter{}, nil
	}

	opts, err := buildRedisOptions(cacheCfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.ChannelPrefix
	if prefix == "" {
		prefix = "slotting"
	}

	return &redisEmitter{client: client, prefix: prefix}, nil
}

// NewNoopEmitter returns an emitter that drops everything.
func NewNoopEmitter() Emitter {
	return &noopEmitter{}
}

func (e *redisEmitter) Emit(ctx context.Context, name string, payload any) error {
	body, err := json.Marshal(map[string]any{
		"event":      name,
		"payload":    payload,
		"emitted_at": time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode event %s: %w", name, err)
	}

	channel := e.prefix + ":" + name
	if err := e.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", name, err)
	}
	return nil
}

func (n *noopEmitter) Emit(ctx context.Context, name string, payload any) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
