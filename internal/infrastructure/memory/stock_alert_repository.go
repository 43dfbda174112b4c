package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockAlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación en memoria de repository.StockAlertRepository. Reproduce el índice
// único parcial (product_id, type) WHERE NOT is_resolved.
type AlertRepo struct {
	s  *Store
	tx bool
}

func (r *AlertRepo) Create(_ context.Context, alert *entity.StockAlert) error {
	defer r.s.lockWrite(r.tx)()
	if err := r.s.hit(OpAlertCreate); err != nil {
		return err
	}
	if r.openExists(alert.ProductID, alert.Type) {
		return fmt.Errorf("%w: ya existe una alerta %s abierta para el producto %s", domain.ErrDuplicate, alert.Type, alert.ProductID)
	}
	r.insert(alert)
	return nil
}

func (r *AlertRepo) CreateIfAbsent(_ context.Context, alert *entity.StockAlert) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	if err := r.s.hit(OpAlertCreate); err != nil {
		return false, err
	}
	if r.openExists(alert.ProductID, alert.Type) {
		return false, nil
	}
	r.insert(alert)
	return true, nil
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.StockAlertView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	return r.view(row), nil
}

func (r *AlertRepo) List(_ context.Context, filter repository.AlertFilter) ([]*entity.StockAlertView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := paginate(r.matching(filter), filter.Limit, filter.Offset)
	out := make([]*entity.StockAlertView, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.view(row))
	}
	return out, nil
}

func (r *AlertRepo) Count(_ context.Context, filter repository.AlertFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matching(filter)), nil
}

func (r *AlertRepo) ListOpenByProduct(_ context.Context, productID string) ([]*entity.StockAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	open := false
	var out []*entity.StockAlert
	for _, row := range r.matching(repository.AlertFilter{ProductID: productID, IsResolved: &open}) {
		a := row.a
		out = append(out, &a)
	}
	return out, nil
}

func (r *AlertRepo) Resolve(_ context.Context, id, userID string, at time.Time) (*entity.StockAlert, error) {
	defer r.s.lockWrite(r.tx)()
	row, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	r.resolve(row, userID, at)
	a := row.a
	return &a, nil
}

func (r *AlertRepo) ResolveMany(_ context.Context, ids []string, userID string, at time.Time) (int, error) {
	defer r.s.lockWrite(r.tx)()
	n := 0
	for _, id := range ids {
		if row, ok := r.s.alerts[id]; ok && r.resolve(row, userID, at) {
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) Delete(_ context.Context, id string) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.alerts[id]; !ok {
		return false, nil
	}
	delete(r.s.alerts, id)
	return true, nil
}

func (r *AlertRepo) DeleteMany(_ context.Context, ids []string) (int, error) {
	defer r.s.lockWrite(r.tx)()
	n := 0
	for _, id := range ids {
		if _, ok := r.s.alerts[id]; ok {
			delete(r.s.alerts, id)
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) DeleteByProduct(_ context.Context, productID string) (int, error) {
	defer r.s.lockWrite(r.tx)()
	n := 0
	for id, row := range r.s.alerts {
		if row.a.ProductID == productID {
			delete(r.s.alerts, id)
			n++
		}
	}
	return n, nil
}

func (r *AlertRepo) Counts(_ context.Context) (repository.AlertCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpAlertCounts); err != nil {
		return repository.AlertCounts{}, err
	}
	c := repository.AlertCounts{ByType: map[string]int{}}
	for _, row := range r.s.alerts {
		c.Total++
		if row.a.IsResolved {
			c.Resolved++
			continue
		}
		c.Active++
		c.ByType[row.a.Type]++
	}
	return c, nil
}

// resolve devuelve true si la alerta pasó a resuelta. Requiere s.mu.
func (r *AlertRepo) resolve(row *alertRow, userID string, at time.Time) bool {
	if row.a.IsResolved {
		return false
	}
	row.a.IsResolved = true
	resolvedAt := at
	row.a.ResolvedAt = &resolvedAt
	row.a.ResolvedBy = userID
	row.a.UpdatedAt = at
	return true
}

func (r *AlertRepo) openExists(productID, alertType string) bool {
	for _, row := range r.s.alerts {
		if !row.a.IsResolved && row.a.ProductID == productID && row.a.Type == alertType {
			return true
		}
	}
	return false
}

func (r *AlertRepo) insert(alert *entity.StockAlert) {
	a := *alert
	a.Threshold = copyInt(alert.Threshold)
	r.s.alerts[a.ID] = &alertRow{a: a, seq: r.s.next()}
}

func (r *AlertRepo) view(row *alertRow) *entity.StockAlertView {
	return &entity.StockAlertView{StockAlert: row.a, Product: r.s.summary(row.a.ProductID)}
}

// matching filtra y ordena del más reciente al más antiguo. Requiere s.mu.
func (r *AlertRepo) matching(f repository.AlertFilter) []*alertRow {
	var rows []*alertRow
	for _, row := range r.s.alerts {
		a := &row.a
		switch {
		case f.ProductID != "" && a.ProductID != f.ProductID,
			f.Type != "" && a.Type != f.Type,
			f.IsResolved != nil && a.IsResolved != *f.IsResolved,
			f.From != nil && a.CreatedAt.Before(*f.From),
			f.To != nil && a.CreatedAt.After(*f.To):
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.a.CreatedAt.Equal(b.a.CreatedAt) {
			return a.a.CreatedAt.After(b.a.CreatedAt)
		}
		return a.seq > b.seq
	})
	return rows
}
