package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria de repository.StockMovementRepository.
type MovementRepo struct {
	s  *Store
	tx bool
}

func (r *MovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	defer r.s.lockWrite(r.tx)()
	if err := r.s.hit(OpMovementCreate); err != nil {
		return err
	}
	r.s.movements = append(r.s.movements, &movementRow{m: *movement, seq: r.s.next()})
	return nil
}

func (r *MovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := paginate(r.matching(filter), filter.Limit, filter.Offset)
	out := make([]*entity.StockMovementView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.StockMovementView{StockMovement: row.m, Product: r.s.summary(row.m.ProductID)})
	}
	return out, nil
}

func (r *MovementRepo) Count(_ context.Context, filter repository.MovementFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matching(filter)), nil
}

func (r *MovementRepo) Aggregate(_ context.Context, productID string, from, to *time.Time) ([]repository.MovementAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	type key struct{ product, typ string }
	index := make(map[key]int)
	var out []repository.MovementAggregate
	for _, row := range r.matching(repository.MovementFilter{ProductID: productID, From: from, To: to}) {
		k := key{row.m.ProductID, row.m.Type}
		i, ok := index[k]
		if !ok {
			p := r.s.summary(row.m.ProductID)
			out = append(out, repository.MovementAggregate{ProductID: p.ID, ProductName: p.Name, SKU: p.SKU, Type: row.m.Type})
			i = len(out) - 1
			index[k] = i
		}
		out[i].Count++
		out[i].Quantity += row.m.Quantity
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Type < out[j].Type
	})
	return out, nil
}

// matching filtra y ordena del más reciente al más antiguo. Requiere s.mu.
func (r *MovementRepo) matching(f repository.MovementFilter) []*movementRow {
	var rows []*movementRow
	for _, row := range r.s.movements {
		m := &row.m
		switch {
		case f.ProductID != "" && m.ProductID != f.ProductID,
			f.Type != "" && m.Type != f.Type,
			f.UserID != "" && m.UserID != f.UserID,
			f.From != nil && m.CreatedAt.Before(*f.From),
			f.To != nil && m.CreatedAt.After(*f.To):
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.m.CreatedAt.Equal(b.m.CreatedAt) {
			return a.m.CreatedAt.After(b.m.CreatedAt)
		}
		return a.seq > b.seq
	})
	return rows
}
