package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kocayazbey/Ayazlogistics-sub003/internal/config"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/domain"
	"github.com/kocayazbey/Ayazlogistics-sub003/internal/slotting"
	"github.com/redis/go-redis/v9"
)

const (
	analysisKeyPrefix    = "slotting:analysis"
	analysisScanBatchLen = 100
)

// AnalysisCache caches slotting analyses per (warehouse, options). Analyses
// are deterministic on an unchanged snapshot, which makes them safe to cache
// for the configured TTL.
type AnalysisCache interface {
	GetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions) (*domain.SlottingAnalysis, bool, error)
	SetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions, analysis *domain.SlottingAnalysis) error
	InvalidateWarehouse(ctx context.Context, warehouseID string) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

// NewAnalysisCache returns a redis-backed cache, or a noop cache when caching
// is disabled.
func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{client: client, ttl: ttl}, nil
}

// NewNoopAnalysisCache returns a cache that never hits.
func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) GetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions) (*domain.SlottingAnalysis, bool, error) {
	key := buildAnalysisKey(warehouseID, opts)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var analysis domain.SlottingAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}

	return &analysis, true, nil
}

func (c *redisAnalysisCache) SetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions, analysis *domain.SlottingAnalysis) error {
	key := buildAnalysisKey(warehouseID, opts)
	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateWarehouse(ctx context.Context, warehouseID string) error {
	prefix := fmt.Sprintf("%s:%s:", analysisKeyPrefix, strings.TrimSpace(warehouseID))
	return deleteKeysWithPrefix(ctx, c.client, prefix, analysisScanBatchLen)
}

func (n *noopAnalysisCache) GetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions) (*domain.SlottingAnalysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) SetAnalysis(ctx context.Context, warehouseID string, opts slotting.AnalyzeOptions, analysis *domain.SlottingAnalysis) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateWarehouse(ctx context.Context, warehouseID string) error {
	return nil
}

func buildAnalysisKey(warehouseID string, opts slotting.AnalyzeOptions) string {
	raw := fmt.Sprintf("dead=%t|min_velocity=%.4f|horizon=%d",
		opts.IncludeDeadStock, opts.MinVelocityThreshold, opts.AnalysisHorizonDays)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", analysisKeyPrefix, strings.TrimSpace(warehouseID), hex.EncodeToString(sum[:]))
}
