package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

var _ inventory.AlertNotifier = (*Publisher)(nil)

// AlertEvent cuerpo JSON publicado por cada alerta creada.
type AlertEvent struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	SKU          string    `json:"sku"`
	Type         string    `json:"type"`
	Message      string    `json:"message"`
	Threshold    *int      `json:"threshold"`
	CurrentStock int       `json:"currentStock"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewAlertEvent construye el evento a partir de la vista de la alerta.
func NewAlertEvent(a *entity.StockAlertView) AlertEvent {
	return AlertEvent{
		ID:           a.ID,
		ProductID:    a.ProductID,
		ProductName:  a.Product.Name,
		SKU:          a.Product.SKU,
		Type:         a.Type,
		Message:      a.Message,
		Threshold:    a.Threshold,
		CurrentStock: a.CurrentStock,
		CreatedAt:    a.CreatedAt,
	}
}

// RoutingKey alert.<tipo en minúsculas>.<productId>, p. ej. alert.low_stock.3f2a...
func RoutingKey(alertType, productID string) string {
	return fmt.Sprintf("alert.%s.%s", strings.ToLower(alertType), productID)
}

// Publisher publica alertas en un exchange topic de RabbitMQ.
// amqp.Channel no es seguro para publicaciones concurrentes: mu las serializa.
type Publisher struct {
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewPublisher construye el notificador sobre un canal ya configurado por SetupConn.
func NewPublisher(ch *amqp.Channel, exchange string) *Publisher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Publisher{ch: ch, exchange: exchange}
}

// AlertCreated publica la alerta como mensaje persistente.
func (p *Publisher) AlertCreated(ctx context.Context, alert *entity.StockAlertView) error {
	body, err := json.Marshal(NewAlertEvent(alert))
	if err != nil {
		return fmt.Errorf("serializar alerta: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		RoutingKey(alert.Type, alert.ProductID),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    alert.ID,
			Timestamp:    alert.CreatedAt,
			Type:         alert.Type,
			Body:         body,
		},
	)
}
