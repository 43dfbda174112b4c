package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de repository.StockRepository.
type StockRepo struct {
	s  *Store
	tx bool
}

func (r *StockRepo) Get(_ context.Context, productID string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.stock[productID]
	if !ok {
		return nil, nil
	}
	rec := copyRecord(row.rec)
	return &rec, nil
}

func (r *StockRepo) CreateIfAbsent(_ context.Context, record *entity.StockRecord) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.stock[record.ProductID]; ok {
		return false, nil
	}
	r.s.stock[record.ProductID] = &stockRow{rec: copyRecord(*record), seq: r.s.next()}
	return true, nil
}

// GetForUpdate no bloquea por fila: la exclusión la da el mutex de transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error) {
	return r.Get(ctx, productID)
}

func (r *StockRepo) Update(_ context.Context, record *entity.StockRecord) error {
	defer r.s.lockWrite(r.tx)()
	if err := r.s.hit(OpStockUpdate); err != nil {
		return err
	}
	row, ok := r.s.stock[record.ProductID]
	if !ok {
		return nil
	}
	row.rec = copyRecord(*record)
	row.seq = r.s.next()
	return nil
}

func (r *StockRepo) Delete(_ context.Context, productID string) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.stock[productID]; !ok {
		return false, nil
	}
	delete(r.s.stock, productID)
	return true, nil
}

func (r *StockRepo) List(_ context.Context, filter repository.StockFilter) ([]*entity.StockRecordView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	views := r.matching(filter)
	return paginate(views, filter.Limit, filter.Offset), nil
}

func (r *StockRepo) Count(_ context.Context, filter repository.StockFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.matching(filter)), nil
}

func (r *StockRepo) ListWithThresholds(_ context.Context) ([]*entity.StockRecordView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit(OpStockListThresholded); err != nil {
		return nil, err
	}
	return r.views(func(rec *entity.StockRecord) bool { return rec.HasThresholds() }), nil
}

func (r *StockRepo) ListOrphaned(_ context.Context) ([]*entity.StockRecordView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.views(func(rec *entity.StockRecord) bool {
		p, ok := r.s.products[rec.ProductID]
		return !ok || !p.Sellable()
	}), nil
}

// matching aplica el filtro y ordena por updatedAt DESC. Requiere s.mu.
func (r *StockRepo) matching(filter repository.StockFilter) []*entity.StockRecordView {
	return r.views(func(rec *entity.StockRecord) bool {
		if !filter.LowStockOnly {
			return true
		}
		t := rec.LowStockThreshold
		return t != nil && *t > 0 && rec.Stock <= *t
	})
}

func (r *StockRepo) views(keep func(*entity.StockRecord) bool) []*entity.StockRecordView {
	rows := make([]*stockRow, 0, len(r.s.stock))
	for _, row := range r.s.stock {
		if keep(&row.rec) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.rec.UpdatedAt.Equal(b.rec.UpdatedAt) {
			return a.rec.UpdatedAt.After(b.rec.UpdatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.StockRecordView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.StockRecordView{StockRecord: copyRecord(row.rec), Product: r.s.summary(row.rec.ProductID)})
	}
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
