package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ inventory.AlertSummaryCache = (*AlertSummaryCache)(nil)

// DefaultSummaryKey clave del resumen de alertas en Redis.
const DefaultSummaryKey = "inventory:alerts:summary"

// AlertSummaryCache cache-aside del resumen de alertas sobre Redis (JSON con TTL).
type AlertSummaryCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewAlertSummaryCache construye la caché. ttl <= 0 usa 30 segundos.
func NewAlertSummaryCache(client *redis.Client, ttl time.Duration) *AlertSummaryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AlertSummaryCache{client: client, key: DefaultSummaryKey, ttl: ttl}
}

// NewClient crea el cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Get devuelve el resumen guardado; nil sin error si no hay entrada.
func (c *AlertSummaryCache) Get(ctx context.Context) (*repository.AlertCounts, error) {
	value, err := c.client.Get(ctx, c.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", c.key, err)
	}
	var counts repository.AlertCounts
	if err := json.Unmarshal(value, &counts); err != nil {
		// entrada corrupta: se trata como fallo de caché y se descarta
		_ = c.client.Del(ctx, c.key).Err()
		return nil, nil
	}
	return &counts, nil
}

// Set guarda el resumen con el TTL configurado.
func (c *AlertSummaryCache) Set(ctx context.Context, counts repository.AlertCounts) error {
	payload, err := json.Marshal(counts)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return nil
}

// Invalidate elimina el resumen guardado.
func (c *AlertSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", c.key, err)
	}
	return nil
}
