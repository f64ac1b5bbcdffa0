package cache

import (
	"context"
	"time"

	"campus-transport/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

func Connect(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("redis_connect_failed", "Redis ping failed", "", "", err.Error())
		return nil, err
	}

	logger.Info("redis_connected", "Connected to Redis successfully", "", "")
	return rdb, nil
}
