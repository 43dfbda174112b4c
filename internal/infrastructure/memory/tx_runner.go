package memory

import (
	"context"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn en exclusión mutua; si fn falla se restaura el estado previo.
type TxRunner struct {
	s *Store
}

// Run inicia la "transacción", ejecuta fn con repos atados a ella y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	snap := r.s.snapshot()
	r.s.mu.Unlock()

	repos := inventory.Repos{
		Stock:     &StockRepo{s: r.s, tx: true},
		Movements: &MovementRepo{s: r.s, tx: true},
		Alerts:    &AlertRepo{s: r.s, tx: true},
		Products:  &ProductRepo{s: r.s, tx: true},
	}
	err := fn(ctx, repos)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.s.mu.Lock()
		r.s.restore(snap)
		r.s.mu.Unlock()
		return err
	}
	return nil
}
