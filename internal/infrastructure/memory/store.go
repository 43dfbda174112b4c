// Package memory implementa los repositorios y el TxRunner en memoria. Solo se usa en tests:
// las transacciones se serializan con un mutex y un error restaura la instantánea previa.
package memory

import (
	"sync"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// Op operación en la que se puede inyectar un fallo.
type Op string

const (
	OpStockUpdate          Op = "stock.update"
	OpMovementCreate       Op = "movements.create"
	OpAlertCreate          Op = "alerts.create"
	OpProductUpdateStock   Op = "products.update_stock"
	OpAlertCounts          Op = "alerts.counts"
	OpStockListThresholded Op = "stock.list_with_thresholds"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex // serializa transacciones y escrituras fuera de tx
	mu   sync.Mutex // protege los datos

	seq       int64
	products  map[string]*entity.Product
	stock     map[string]*stockRow
	movements []*movementRow
	alerts    map[string]*alertRow

	failures map[Op]error
	calls    map[Op]int
}

type stockRow struct {
	rec entity.StockRecord
	seq int64
}

type movementRow struct {
	m   entity.StockMovement
	seq int64
}

type alertRow struct {
	a   entity.StockAlert
	seq int64
}

type snapshot struct {
	seq       int64
	products  map[string]*entity.Product
	stock     map[string]*stockRow
	movements []*movementRow
	alerts    map[string]*alertRow
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		stock:    make(map[string]*stockRow),
		alerts:   make(map[string]*alertRow),
		failures: make(map[Op]error),
		calls:    make(map[Op]int),
	}
}

// AddProduct inserta o reemplaza un producto del catálogo.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.products[p.ID] = &cp
}

// FailNext hace que la próxima llamada a op devuelva err.
func (s *Store) FailNext(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Calls cuántas veces se invocó op.
func (s *Store) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// Stock repositorio de stock fuera de transacción.
func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Alerts repositorio de alertas fuera de transacción.
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{s: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// TxRunner runner de transacciones sobre este almacén.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// hit registra la llamada y consume un fallo inyectado. Requiere s.mu.
func (s *Store) hit(op Op) error {
	s.calls[op]++
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// lockWrite bloquea para escritura. Fuera de tx también toma txMu (autocommit).
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

// snapshot copia el estado. Requiere s.mu.
func (s *Store) snapshot() snapshot {
	snap := snapshot{
		seq:       s.seq,
		products:  make(map[string]*entity.Product, len(s.products)),
		stock:     make(map[string]*stockRow, len(s.stock)),
		movements: make([]*movementRow, len(s.movements)),
		alerts:    make(map[string]*alertRow, len(s.alerts)),
	}
	for k, v := range s.products {
		cp := *v
		snap.products[k] = &cp
	}
	for k, v := range s.stock {
		cp := *v
		snap.stock[k] = &cp
	}
	copy(snap.movements, s.movements)
	for k, v := range s.alerts {
		cp := *v
		snap.alerts[k] = &cp
	}
	return snap
}

// restore vuelve a la instantánea. Requiere s.mu.
func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.products = snap.products
	s.stock = snap.stock
	s.movements = snap.movements
	s.alerts = snap.alerts
}

func (s *Store) summary(productID string) entity.ProductSummary {
	if p, ok := s.products[productID]; ok {
		return p.Summary()
	}
	return entity.ProductSummary{ID: productID}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func copyRecord(r entity.StockRecord) entity.StockRecord {
	r.LowStockThreshold = copyInt(r.LowStockThreshold)
	r.MaxStock = copyInt(r.MaxStock)
	return r
}
