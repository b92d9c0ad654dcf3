package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/flightdash/config"
	"github.com/Domenick1991/flightdash/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: time.Duration(cfg.FlightsTTLSecs) * time.Second,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.FlightRecord, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var records []domain.FlightRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, records []domain.FlightRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

func flightsKey() string {
	return "cache:flights"
}
