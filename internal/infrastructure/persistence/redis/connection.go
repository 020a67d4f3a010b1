package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openmarket/marketplace-service/internal/config"
)

type Connection struct {
	client *redis.Client
}

func NewConnection(cfg config.RedisConfig) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 50,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &Connection{client: client}, nil
}

func (c *Connection) Close() error {
	return c.client.Close()
}

func (c *Connection) GetClient() *redis.Client {
	return c.client
}
