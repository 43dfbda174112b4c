package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	rules "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []*entity.StockAlertView
	err    error
	block  chan struct{} // si no es nil, AlertCreated espera a que se cierre
}

func (n *recordingNotifier) AlertCreated(ctx context.Context, a *entity.StockAlertView) error {
	if n.block != nil {
		select {
		case <-n.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return n.err
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.alerts))
	for _, a := range n.alerts {
		out = append(out, a.Type)
	}
	return out
}

type mapCache struct {
	mu            sync.Mutex
	counts        *repository.AlertCounts
	invalidations int
}

func (c *mapCache) Get(context.Context) (*repository.AlertCounts, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		return nil, nil
	}
	cp := *c.counts
	return &cp, nil
}

func (c *mapCache) Set(_ context.Context, counts repository.AlertCounts) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = &counts
	return nil
}

func (c *mapCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = nil
	c.invalidations++
	return nil
}

type fixture struct {
	store     *memory.Store
	inv       *inventory.InventoryUseCase
	movements *inventory.MovementUseCase
	alerts    *inventory.AlertUseCase
	notifier  *recordingNotifier
	cache     *mapCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	store.AddProduct(entity.Product{ID: "p1", Name: "Café", SKU: "SKU-1", Price: decimal.NewFromInt(12000), IsActive: true})
	store.AddProduct(entity.Product{ID: "p2", Name: "Té", SKU: "SKU-2", Price: decimal.NewFromInt(8000), IsActive: true})
	store.AddProduct(entity.Product{ID: "p3", Name: "Cacao", SKU: "SKU-3", Price: decimal.NewFromInt(5000), IsActive: false})

	notifier := &recordingNotifier{}
	cache := &mapCache{}
	movUC := inventory.NewMovementUseCase(store.Movements())
	alertUC := inventory.NewAlertUseCase(store.Alerts(), store.Stock(), store.Products(), notifier, cache, logger.Nop())
	invUC := inventory.NewInventoryUseCase(store.TxRunner(), store.Stock(), movUC, alertUC, logger.Nop())
	return &fixture{store: store, inv: invUC, movements: movUC, alerts: alertUC, notifier: notifier, cache: cache}
}

// notified espera las publicaciones en segundo plano y devuelve los tipos notificados.
func (f *fixture) notified(t *testing.T) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, f.alerts.WaitNotifications(ctx))
	return f.notifier.types()
}

func intPtr(v int) *int { return &v }

func delta(stock int) inventory.AdjustInput {
	return inventory.AdjustInput{Adjustment: rules.Relative{StockDelta: stock}}
}
