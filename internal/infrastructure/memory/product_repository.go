package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct {
	s  *Store
	tx bool
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) ListWithoutStock(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for id, p := range r.s.products {
		if _, ok := r.s.stock[id]; ok || !p.Sellable() {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepo) UpdateStockQuantity(_ context.Context, productID string, quantity int) error {
	defer r.s.lockWrite(r.tx)()
	if err := r.s.hit(OpProductUpdateStock); err != nil {
		return err
	}
	if p, ok := r.s.products[productID]; ok {
		p.StockQuantity = quantity
	}
	return nil
}
