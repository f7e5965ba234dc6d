package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/muhammadheryan/mfg-stock/model"
	"github.com/muhammadheryan/mfg-stock/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StockMovementHandler processes one decoded stock movement event.
type StockMovementHandler func(ctx context.Context, msg model.StockMovementMessage) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	handler StockMovementHandler
}

func NewConsumer(host string, port int, user, password string, handler StockMovementHandler) (*Consumer, error) {
	conn, channel, err := dial(host, port, user, password)
	if err != nil {
		return nil, err
	}
	return &Consumer{conn: conn, channel: channel, handler: handler}, nil
}

// Start consumes until ctx is cancelled or the channel closes. It returns once consuming has begun.
func (c *Consumer) Start(ctx context.Context) error {
	// one message at a time
	if err := c.channel.Qos(1, 0, false); err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		StockAlertsQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Warn("[Consumer] delivery channel closed")
					return
				}
				c.handle(ctx, msg)
			}
		}
	}()

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg amqp091.Delivery) {
	action := dispatch(ctx, msg.Body, msg.Redelivered, c.handler)
	switch action {
	case actionAck:
		_ = msg.Ack(false)
	case actionRequeue:
		_ = msg.Nack(false, true)
	default:
		_ = msg.Nack(false, false)
	}
}

type deliveryAction int

const (
	actionAck deliveryAction = iota
	actionRequeue
	actionDrop
)

// dispatch decodes body and runs handler. Undecodable bodies are acked and dropped; a failed
// handler is requeued once and dropped on redelivery.
func dispatch(ctx context.Context, body []byte, redelivered bool, handler StockMovementHandler) deliveryAction {
	var event model.StockMovementMessage
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("[Consumer] unmarshal stock event", zap.Error(err))
		return actionAck
	}

	if err := handler(ctx, event); err != nil {
		logger.Error("[Consumer] handle stock event",
			zap.String("event_id", event.EventID),
			zap.Bool("redelivered", redelivered),
			zap.Error(err))
		if redelivered {
			return actionDrop
		}
		return actionRequeue
	}
	return actionAck
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
