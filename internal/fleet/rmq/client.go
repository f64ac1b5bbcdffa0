package rmq

import (
	"campus-transport/internal/common/mq"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	TripExchange     = "trip_topic"
	LocationExchange = "fleet_location"
)

type Client struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	Exchange string
}

// NewClient wraps an established RabbitMQ connection with the fleet exchange.
func NewClient(rmq *mq.RabbitMQ, exchange string) *Client {
	return &Client{
		Conn:     rmq.Conn,
		Channel:  rmq.Chan,
		Exchange: exchange,
	}
}
