package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const dashboardStatsKey = "dashboard:stats"

type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	GetCachedDashboardStats(dest interface{}) error
	CacheDashboardStats(stats interface{}, ttl time.Duration) error
	InvalidateDashboardStats() error
}

type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

func NewRedisService(client *redis.Client) InterfaceRedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set stores a value as JSON with the given expiration.
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, data, expiration).Err()
}

// Get reads a JSON value into dest. Returns redis.Nil when the key is absent.
func (s *RedisService) Get(key string, dest interface{}) error {
	data, err := s.Client.Get(s.Ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

func (s *RedisService) GetCachedDashboardStats(dest interface{}) error {
	return s.Get(dashboardStatsKey, dest)
}

func (s *RedisService) CacheDashboardStats(stats interface{}, ttl time.Duration) error {
	return s.Set(dashboardStatsKey, stats, ttl)
}

func (s *RedisService) InvalidateDashboardStats() error {
	return s.Delete(dashboardStatsKey)
}
