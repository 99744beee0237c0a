package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang-stock-news-digest/internal/aggregator/dto"

	"github.com/redis/go-redis/v9"
)

// ErrInvalidTrade marks a trade rejected before it reaches Redis.
var ErrInvalidTrade = errors.New("invalid trade")

// TopTradedRepository ranks assets by traded volume.
type TopTradedRepository interface {
	GetTopTraded(ctx context.Context, limit int) ([]dto.TopTradedAsset, error)
	RecordTrade(ctx context.Context, assetName string, quantity float64) error
}

type topTradedRepository struct {
	redisClient *redis.Client
	key         string
}

// NewTopTradedRepository stores volumes in the Redis sorted set key.
func NewTopTradedRepository(redisClient *redis.Client, key string) TopTradedRepository {
	return &topTradedRepository{redisClient: redisClient, key: key}
}

// GetTopTraded returns up to limit assets, highest volume first.
func (r *topTradedRepository) GetTopTraded(ctx context.Context, limit int) ([]dto.TopTradedAsset, error) {
	if limit <= 0 {
		return []dto.TopTradedAsset{}, nil
	}

	members, err := r.redisClient.ZRevRangeWithScores(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read top traded assets: %w", err)
	}

	assets := make([]dto.TopTradedAsset, 0, len(members))
	for _, m := range members {
		name, ok := m.Member.(string)
		if !ok || name == "" {
			continue
		}
		assets = append(assets, dto.TopTradedAsset{AssetName: name, Volume: m.Score})
	}
	return assets, nil
}

// RecordTrade adds quantity to the asset's traded volume.
func (r *topTradedRepository) RecordTrade(ctx context.Context, assetName string, quantity float64) error {
	name := strings.ToUpper(strings.TrimSpace(assetName))
	if name == "" {
		return fmt.Errorf("%w: asset name is required", ErrInvalidTrade)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidTrade)
	}
	if err := r.redisClient.ZIncrBy(ctx, r.key, quantity, name).Err(); err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}
	return nil
}
