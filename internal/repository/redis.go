package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rkbisoi/demo-loan-app-api/internal/models"
	"github.com/sirupsen/logrus"
)

// applicationsKey is the single key holding the serialized collection.
const applicationsKey = "applications"

// RedisStore keeps the whole application collection as one JSON value in
// Redis. Same load/save contract as the file store.
type RedisStore struct {
	client *redis.Client
	key    string
	log    *logrus.Logger
}

// NewRedisStore initializes a Redis-backed store
func NewRedisStore(client *redis.Client, log *logrus.Logger) *RedisStore {
	return &RedisStore{client: client, key: applicationsKey, log: log}
}

// LoadAll reads the full collection. An absent key is an empty collection;
// an unreachable server or corrupt value is logged and treated as empty.
func (s *RedisStore) LoadAll(ctx context.Context) []models.ApplicationRecord {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Errorf("Failed to load applications from redis: %v", err)
		}
		return nil
	}

	var records []models.ApplicationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Errorf("Failed to parse applications stored in redis: %v", err)
		return nil
	}
	return records
}

// SaveAll overwrites the persisted collection with the given records.
func (s *RedisStore) SaveAll(ctx context.Context, records []models.ApplicationRecord) error {
	if records == nil {
		records = []models.ApplicationRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode applications: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save applications to redis: %w", err)
	}
	return nil
}
