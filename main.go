package main

import (
	"fmt"
	"log"

	cmdAdmin "campus-transport/cmd/admin-service"
	cmdFleet "campus-transport/cmd/fleet-service"
	"campus-transport/internal/common/auth"
	"campus-transport/internal/common/cache"
	"campus-transport/internal/common/config"
	"campus-transport/internal/common/db"
	"campus-transport/internal/common/metrics"
	"campus-transport/internal/common/mq"
	"campus-transport/internal/fleet/rmq"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	cfg.Print()

	auth.SetSecret(cfg.Auth.JWTSecret)

	pg, err := db.NewPostgres(
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pg.Close()

	if err := pg.RunMigrations("migrations"); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	rdb, err := cache.Connect(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Fatalf("redis error: %v", err)
	}
	defer rdb.Close()

	rabbit, err := mq.NewRabbitMQ(
		cfg.RabbitMQ.Host, cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("rabbitmq error: %v", err)
	}
	defer rabbit.Close()
	mqClient := rmq.NewClient(rabbit, rmq.TripExchange)

	collector := metrics.NewCollector()
	collector.Serve(fmt.Sprintf(":%d", cfg.Services.MetricsPort))

	go cmdAdmin.Run(cfg, pg.Pool)
	cmdFleet.Run(cfg, pg.Pool, rdb, mqClient, collector)
}
