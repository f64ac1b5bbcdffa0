package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}
	Redis struct {
		Addr     string
		Password string
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Auth struct {
		JWTSecret string
	}
	Services struct {
		FleetServicePort int
		AdminServicePort int
		MetricsPort      int
	}
	Fleet struct {
		// Fallback coordinate reported for vehicles with no live location,
		// stored lon/lat like everything else.
		FallbackLon   float64
		FallbackLat   float64
		SnapshotTTLMs int
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return def
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.User = getEnv("DB_USER", "transport_user")
	cfg.Database.Password = getEnv("DB_PASSWORD", "transport_pass")
	cfg.Database.Name = getEnv("DB_NAME", "transport_db")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")

	cfg.RabbitMQ.Host = getEnv("RABBITMQ_HOST", "localhost")
	cfg.RabbitMQ.Port = getEnvInt("RABBITMQ_PORT", 5672)
	cfg.RabbitMQ.User = getEnv("RABBITMQ_USER", "guest")
	cfg.RabbitMQ.Password = getEnv("RABBITMQ_PASSWORD", "guest")

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", "change-me-in-production")

	cfg.Services.FleetServicePort = getEnvInt("FLEET_SERVICE_PORT", 3000)
	cfg.Services.AdminServicePort = getEnvInt("ADMIN_SERVICE_PORT", 3001)
	cfg.Services.MetricsPort = getEnvInt("METRICS_PORT", 9090)

	// Default fallback point is the campus main gate.
	cfg.Fleet.FallbackLon = getEnvFloat("FLEET_FALLBACK_LON", 92.1647)
	cfg.Fleet.FallbackLat = getEnvFloat("FLEET_FALLBACK_LAT", 22.6125)
	cfg.Fleet.SnapshotTTLMs = getEnvInt("FLEET_SNAPSHOT_TTL_MS", 5000)

	return cfg, nil
}

func (c *Config) Print() {
	fmt.Printf("📦 Database: %s@%s:%d/%s\n", c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name)
	fmt.Printf("🗄️ Redis: %s\n", c.Redis.Addr)
	fmt.Printf("🐇 RabbitMQ: amqp://%s@%s:%d\n", c.RabbitMQ.User, c.RabbitMQ.Host, c.RabbitMQ.Port)
	fmt.Printf("🧩 Services → fleet:%d | admin:%d | metrics:%d\n",
		c.Services.FleetServicePort, c.Services.AdminServicePort, c.Services.MetricsPort)
}
