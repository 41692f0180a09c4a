package game

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

// RedisTableTracker stores table snapshots in redis so a restarted
// process can reload its tables.
type RedisTableTracker struct {
	rdclient *redis.Client
}

func NewRedisTableTracker(redisURL string, redisPW string, redisDB int) *RedisTableTracker {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisTableTracker{
		rdclient: rdclient,
	}
}

func (r *RedisTableTracker) Save(tableID string, snapshot *TableSnapshot) error {
	data, err := jsoniter.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.rdclient.Set(context.Background(), r.key(tableID), data, 0).Err()
}

func (r *RedisTableTracker) Load(tableID string) (*TableSnapshot, error) {
	data, err := r.rdclient.Get(context.Background(), r.key(tableID)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("Table state for table %s is not found", tableID)
	} else if err != nil {
		return nil, err
	}
	snapshot := &TableSnapshot{}
	if err := jsoniter.Unmarshal([]byte(data), snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *RedisTableTracker) Remove(tableID string) error {
	return r.rdclient.Del(context.Background(), r.key(tableID)).Err()
}

func (r *RedisTableTracker) key(tableID string) string {
	return fmt.Sprintf("table:%s", tableID)
}
