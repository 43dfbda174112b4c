package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// MovementUseCase historial de movimientos: escritura solo dentro de la transacción del
// InventoryUseCase, lectura directa sobre el pool.
type MovementUseCase struct {
	repo repository.StockMovementRepository
	now  func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.StockMovementRepository) *MovementUseCase {
	return &MovementUseCase{repo: repo, now: time.Now}
}

// MovementQuery filtros del listado de movimientos.
type MovementQuery struct {
	ProductID string
	Type      string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// RecordInTx valida y registra un movimiento con el repositorio atado a la transacción del llamador.
// Asigna ID y fecha de creación.
func (uc *MovementUseCase) RecordInTx(ctx context.Context, repo repository.StockMovementRepository, m *entity.StockMovement) error {
	if err := inventory.ValidateMovement(m); err != nil {
		return err
	}
	m.ID = uuid.New().String()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = uc.now()
	}
	return repo.Create(ctx, m)
}

// FindAll lista movimientos (más recientes primero) con filtros y paginación.
func (uc *MovementUseCase) FindAll(ctx context.Context, q MovementQuery) (*Page[*entity.StockMovementView], error) {
	if q.Type != "" && !entity.IsValidMovementType(q.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, q.Type)
	}
	if err := checkRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	page, pageSize := NormalizePage(q.Page, q.PageSize)
	filter := repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      q.Type,
		UserID:    q.UserID,
		From:      q.StartDate,
		To:        q.EndDate,
		Limit:     pageSize,
		Offset:    offset(page, pageSize),
	}

	var (
		total int
		items []*entity.StockMovementView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.repo.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = uc.repo.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.StockMovementView{}
	}
	return &Page[*entity.StockMovementView]{Total: total, Page: page, PageSize: pageSize, Items: items}, nil
}

// FindByProduct historial de un producto.
func (uc *MovementUseCase) FindByProduct(ctx context.Context, productID string, page, pageSize int) (*Page[*entity.StockMovementView], error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	return uc.FindAll(ctx, MovementQuery{ProductID: productID, Page: page, PageSize: pageSize})
}

// GetSummary totales por tipo, global y por producto, opcionalmente acotados a un producto y rango de fechas.
func (uc *MovementUseCase) GetSummary(ctx context.Context, productID string, from, to *time.Time) (inventory.MovementSummary, error) {
	if err := checkRange(from, to); err != nil {
		return inventory.MovementSummary{}, err
	}
	rows, err := uc.repo.Aggregate(ctx, productID, from, to)
	if err != nil {
		return inventory.MovementSummary{}, err
	}
	return inventory.Summarize(rows), nil
}

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && from.After(*to) {
		return fmt.Errorf("%w: la fecha inicial es posterior a la final", domain.ErrInvalidInput)
	}
	return nil
}
