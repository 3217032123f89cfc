package daily

import (
	"context"
	"encoding/json"
	"time"

	models "github.com/glkeru/loyalty/daily/internal/models"
	redis "github.com/redis/go-redis/v9"
)

const statusKey = "daily:status"

// Кэш статуса в Redis, общий для всех инстансов
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(ctx context.Context, addr string, user string, pwd string, ttl time.Duration) (serv *CacheService, err error) {
	db := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    pwd,
		Username:    user,
		DB:          0,
		MaxRetries:  5,
		DialTimeout: 10 * time.Second,
	})
	err = db.Ping(ctx).Err()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewCacheServiceFromClient(db, ttl), nil
}

func NewCacheServiceFromClient(client *redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{client, ttl}
}

func (c *CacheService) GetStatus(ctx context.Context) (status models.Status, err error) {
	val, err := c.client.Get(ctx, statusKey).Bytes()
	if err == redis.Nil {
		return status, models.ErrNotFound
	} else if err != nil {
		return status, err
	}
	err = json.Unmarshal(val, &status)
	if err != nil {
		return status, err
	}
	return status, nil
}

func (c *CacheService) SetStatus(ctx context.Context, status models.Status) error {
	val, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statusKey, val, c.ttl).Err()
}

func (c *CacheService) InvalidateStatus(ctx context.Context) error {
	return c.client.Del(ctx, statusKey).Err()
}

func (c *CacheService) Close() error {
	return c.client.Close()
}
