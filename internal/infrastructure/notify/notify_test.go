package notify_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/notify"
)

func sampleAlert() *entity.StockAlertView {
	threshold := 5
	return &entity.StockAlertView{
		StockAlert: entity.StockAlert{
			ID: uuid.NewString(), ProductID: "p1", Type: entity.AlertTypeLowStock,
			Message: "Producto Café (SKU-1) con stock bajo: 4 <= 5", Threshold: &threshold, CurrentStock: 4,
			CreatedAt: time.Now().UTC(),
		},
		Product: entity.ProductSummary{ID: "p1", Name: "Café", SKU: "SKU-1"},
	}
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "alert.low_stock.p1", notify.RoutingKey(entity.AlertTypeLowStock, "p1"))
	assert.Equal(t, "alert.out_of_stock.p2", notify.RoutingKey(entity.AlertTypeOutOfStock, "p2"))
}

func TestNewAlertEvent_JSON(t *testing.T) {
	body, err := json.Marshal(notify.NewAlertEvent(sampleAlert()))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "p1", got["productId"])
	assert.Equal(t, "SKU-1", got["sku"])
	assert.Equal(t, "LOW_STOCK", got["type"])
	assert.EqualValues(t, 5, got["threshold"])
}

func TestLogNotifier_NuncaFalla(t *testing.T) {
	n := notify.NewLogNotifier(nil)
	assert.NoError(t, n.AlertCreated(context.Background(), sampleAlert()))

	a := sampleAlert()
	a.Threshold = nil
	assert.NoError(t, n.AlertCreated(context.Background(), a))
}

func TestPublisher_AlertCreated(t *testing.T) {
	url := os.Getenv("TEST_AMQP_URL")
	if url == "" {
		t.Skip("TEST_AMQP_URL no definido, se omiten pruebas de RabbitMQ")
	}
	exchange := "inventory_alerts_test"
	conn, ch, err := notify.SetupConn(url, exchange, 1, 0, nil)
	if err != nil {
		t.Skipf("RabbitMQ no disponible: %v", err)
	}
	defer conn.Close()
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, "alert.low_stock.*", exchange, false, nil))
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	alert := sampleAlert()
	pub := notify.NewPublisher(ch, exchange)
	require.NoError(t, pub.AlertCreated(context.Background(), alert))

	select {
	case d := <-deliveries:
		assert.Equal(t, "application/json", d.ContentType)
		assert.Equal(t, "alert.low_stock.p1", d.RoutingKey)
		var ev notify.AlertEvent
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		assert.Equal(t, alert.ID, ev.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("no se recibió el mensaje publicado")
	}
}
