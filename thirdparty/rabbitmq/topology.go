package rabbitmq

import (
	"fmt"
	"strings"

	"github.com/rabbitmq/amqp091-go"
)

const (
	StockEventsExchange = "stock_events"
	StockAlertsQueue    = "stock_alerts_queue"
	stockRoutingPattern = "stock.#"
)

// RoutingKey returns the routing key a stock action is published under, e.g. "stock.commit".
func RoutingKey(action string) string {
	return "stock." + strings.ToLower(action)
}

func dial(host string, port int, user, password string) (*amqp091.Connection, *amqp091.Channel, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/", user, password, host, port)
	conn, err := amqp091.Dial(dsn)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, channel, nil
}

func declareTopology(channel *amqp091.Channel) error {
	err := channel.ExchangeDeclare(
		StockEventsExchange, // name
		"topic",             // type
		true,                // durable
		false,               // auto-delete
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return err
	}

	_, err = channel.QueueDeclare(
		StockAlertsQueue, // name
		true,             // durable
		false,            // auto-delete
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return err
	}

	return channel.QueueBind(
		StockAlertsQueue,    // queue name
		stockRoutingPattern, // routing key
		StockEventsExchange, // exchange
		false,               // no-wait
		nil,                 // arguments
	)
}
