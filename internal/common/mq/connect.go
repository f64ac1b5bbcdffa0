package mq

import (
	"fmt"
	"time"

	"campus-transport/internal/common/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const dialAttempts = 5

type RabbitMQ struct {
	Conn *amqp.Connection
	Chan *amqp.Channel
	URL  string
}

func NewRabbitMQ(host string, port int, user, password string) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		URL: fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port),
	}
	if err := rmq.connect(); err != nil {
		return nil, err
	}
	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(r.URL)
		if err == nil {
			ch, chErr := conn.Channel()
			if chErr != nil {
				conn.Close()
				return fmt.Errorf("failed to open channel: %w", chErr)
			}
			r.Conn = conn
			r.Chan = ch
			logger.Info("mq_connected", "Connected to RabbitMQ", "", "")
			return nil
		}
		logger.Warn("mq_dial_retry",
			fmt.Sprintf("RabbitMQ dial attempt %d of %d failed", attempt, dialAttempts), "", "", err.Error())
		time.Sleep(time.Duration(attempt) * 2 * time.Second)
	}
	return fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", dialAttempts, err)
}

func (r *RabbitMQ) Close() {
	if r.Chan != nil {
		_ = r.Chan.Close()
	}
	if r.Conn != nil {
		_ = r.Conn.Close()
	}
	logger.Info("mq_connection_closed", "RabbitMQ connection closed", "", "")
}
