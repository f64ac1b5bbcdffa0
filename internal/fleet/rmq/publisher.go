package rmq

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-transport/internal/common/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

func (c *Client) PublishTripStatus(ctx context.Context, msg TripStatusMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("publish_trip_status", "Failed to marshal trip status message", "", msg.TripID, err.Error())
		return err
	}

	routingKey := fmt.Sprintf("trip.status.%s", msg.TripID)

	if err := c.Channel.ExchangeDeclare(
		c.Exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		logger.Error("publish_trip_status", "Failed to declare exchange", "", msg.TripID, err.Error())
		return err
	}

	if err := c.Channel.PublishWithContext(
		ctx,
		c.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		logger.Error("publish_trip_status", "Failed to publish trip status", "", msg.TripID, err.Error())
		return err
	}

	logger.Info("publish_trip_status", fmt.Sprintf("Trip status %s published", msg.Status), "", msg.TripID)
	return nil
}

func (c *Client) PublishLocation(ctx context.Context, msg LocationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		logger.Error("publish_location", "Failed to marshal location message", "", msg.TripID, err.Error())
		return err
	}

	if err := c.Channel.ExchangeDeclare(
		LocationExchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		logger.Error("publish_location", "Failed to declare exchange", "", msg.TripID, err.Error())
		return err
	}

	if err := c.Channel.PublishWithContext(
		ctx,
		LocationExchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		logger.Error("publish_location", "Failed to publish location update", "", msg.TripID, err.Error())
		return err
	}

	return nil
}
