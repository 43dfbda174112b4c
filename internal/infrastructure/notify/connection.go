package notify

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/inventario-stock/pkg/logger"
)

const (
	// DefaultExchange exchange topic donde se publican las alertas.
	DefaultExchange = "inventory_alerts"
	exchangeType    = "topic"
)

// SetupConn abre la conexión y declara el exchange de alertas. Reintenta mientras el broker arranca.
func SetupConn(url, exchange string, attempts int, wait time.Duration, log *logger.Logger) (*amqp.Connection, *amqp.Channel, error) {
	if log == nil {
		log = logger.Nop()
	}
	if attempts < 1 {
		attempts = 1
	}
	var conn *amqp.Connection
	var err error

	for i := 0; i < attempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("no se pudo conectar a RabbitMQ")
		if i < attempts-1 {
			time.Sleep(wait)
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}

	return conn, ch, nil
}
