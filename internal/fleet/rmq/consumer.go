package rmq

import (
	"encoding/json"
	"fmt"

	"campus-transport/internal/common/logger"
)

// ConsumeLocationUpdates binds a queue to the location fanout exchange and
// invokes handler for every decoded message. Used by the live feed to push
// updates to websocket subscribers.
func (c *Client) ConsumeLocationUpdates(queueName string, handler func(msg LocationMessage)) error {
	ch := c.Channel

	if err := ch.ExchangeDeclare(
		LocationExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		q.Name,
		"",
		LocationExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	deliveries, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	go func() {
		for d := range deliveries {
			var msg LocationMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logger.Warn("consume_location_decode", "Failed to decode location message", "", "", err.Error())
				continue
			}
			handler(msg)
		}
	}()

	return nil
}
