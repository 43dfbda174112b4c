package inventory

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

const (
	defaultStockReason   = "Ajuste manual"
	defaultReserveReason = "Ajuste de reserva"
)

// InventoryUseCase único escritor del registro de stock. Cada ajuste se ejecuta en una
// transacción con bloqueo de fila (SELECT FOR UPDATE): registro, movimientos y alertas
// se confirman o se descartan juntos.
type InventoryUseCase struct {
	txRunner  TxRunner
	stock     repository.StockRepository
	movements *MovementUseCase
	alerts    *AlertUseCase
	log       *logger.Logger
	now       func() time.Time
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	txRunner TxRunner,
	stock repository.StockRepository,
	movements *MovementUseCase,
	alerts *AlertUseCase,
	log *logger.Logger,
) *InventoryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryUseCase{
		txRunner:  txRunner,
		stock:     stock,
		movements: movements,
		alerts:    alerts,
		log:       log.Component("inventory"),
		now:       time.Now,
	}
}

// AdjustInput entrada de un ajuste. Adjustment nil solo es válido si cambia algún umbral.
type AdjustInput struct {
	Adjustment        inventory.Adjustment
	LowStockThreshold *int
	MaxStock          *int
	Reason            string
	ReferenceID       string
	ReferenceType     string
	UserID            string
	Notes             string
	SyncToProduct     bool // refleja el stock en products.stock_quantity
	RequireChange     bool // rechaza el ajuste si stock y reserva quedan igual
}

// DeleteResult resumen del registro eliminado.
type DeleteResult struct {
	Record        entity.StockRecord
	AlertsDeleted int
}

// SyncResult resultado de la sincronización con el catálogo.
type SyncResult struct {
	SyncedProducts int
	OrphanedCount  int
	Created        []*entity.StockRecordView
	Orphaned       []*entity.StockRecordView
}

// List listado paginado del stock, ordenado por última actualización.
// lowStockOnly conserva los registros con umbral > 0 y stock <= umbral.
func (uc *InventoryUseCase) List(ctx context.Context, page, pageSize int, lowStockOnly bool) (*Page[*entity.StockRecordView], error) {
	page, pageSize = NormalizePage(page, pageSize)
	filter := repository.StockFilter{LowStockOnly: lowStockOnly, Limit: pageSize, Offset: offset(page, pageSize)}

	var (
		total int
		items []*entity.StockRecordView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.stock.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = uc.stock.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.StockRecordView{}
	}
	return &Page[*entity.StockRecordView]{Total: total, Page: page, PageSize: pageSize, Items: items}, nil
}

// Adjust aplica un ajuste relativo o absoluto (y/o cambios de umbral) al stock de un producto.
// Crea el registro si no existe, registra los movimientos, re-evalúa las alertas y, tras el
// Commit, notifica las alertas nuevas. Cualquier error deshace la transacción completa.
func (uc *InventoryUseCase) Adjust(ctx context.Context, productID string, in AdjustInput) (*entity.StockRecordView, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if in.Adjustment == nil && in.LowStockThreshold == nil && in.MaxStock == nil {
		return nil, fmt.Errorf("%w: no se indicó ningún cambio", domain.ErrInvalidAdjustment)
	}
	if err := inventory.CheckThresholds(in.LowStockThreshold, in.MaxStock); err != nil {
		return nil, err
	}

	var (
		record   entity.StockRecord
		product  entity.ProductSummary
		created  []*entity.StockAlertView
		resolved int
	)
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		p, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if !p.Sellable() {
			return fmt.Errorf("%w: el producto %s está inactivo o eliminado", domain.ErrInvalidAdjustment, productID)
		}
		product = p.Summary()

		stamp := uc.now()
		if _, err := r.Stock.CreateIfAbsent(ctx, &entity.StockRecord{ProductID: productID, CreatedAt: stamp, UpdatedAt: stamp}); err != nil {
			return err
		}
		rec, err := r.Stock.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: registro de stock %s", domain.ErrNotFound, productID)
		}
		// La hora se toma con la fila bloqueada y nunca retrocede respecto al escritor
		// anterior: el historial ordenado por fecha sigue siendo reproducible.
		now := uc.now()
		if now.Before(rec.UpdatedAt) {
			now = rec.UpdatedAt
		}

		prevStock, prevReserved := rec.Stock, rec.Reserved
		newStock, newReserved := prevStock, prevReserved
		if in.Adjustment != nil {
			newStock, newReserved = in.Adjustment.Apply(prevStock, prevReserved)
		}
		if err := inventory.CheckInvariants(newStock, newReserved); err != nil {
			return err
		}
		if in.RequireChange && newStock == prevStock && newReserved == prevReserved {
			return fmt.Errorf("%w: el stock ya es %d, no hay movimiento que registrar", domain.ErrInvalidAdjustment, prevStock)
		}

		rec.Stock, rec.Reserved = newStock, newReserved
		if in.LowStockThreshold != nil {
			rec.LowStockThreshold = in.LowStockThreshold
		}
		if in.MaxStock != nil {
			rec.MaxStock = in.MaxStock
		}
		rec.UpdatedAt = now
		if err := r.Stock.Update(ctx, rec); err != nil {
			return err
		}

		if in.Adjustment != nil {
			for _, d := range inventory.PlanMovements(in.Adjustment, prevStock, prevReserved, newStock, newReserved) {
				m := &entity.StockMovement{
					ProductID:     productID,
					Type:          d.Type,
					Quantity:      d.Quantity,
					PreviousStock: d.PreviousStock,
					NewStock:      d.NewStock,
					Reason:        reasonFor(d.Type, in.Reason),
					ReferenceID:   in.ReferenceID,
					ReferenceType: in.ReferenceType,
					UserID:        in.UserID,
					Notes:         in.Notes,
					CreatedAt:     now,
				}
				if err := uc.movements.RecordInTx(ctx, r.Movements, m); err != nil {
					return err
				}
			}
		}

		created, resolved, err = uc.alerts.EvaluateInTx(ctx, r.Alerts, rec, product)
		if err != nil {
			return err
		}

		if in.SyncToProduct {
			if err := r.Products.UpdateStockQuantity(ctx, productID, rec.Stock); err != nil {
				return err
			}
		}
		record = *rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("product_id", productID).
		Int("stock", record.Stock).
		Int("reserved", record.Reserved).
		Int("alerts_created", len(created)).
		Int("alerts_resolved", resolved).
		Msg("stock ajustado")
	uc.alerts.afterWrite(ctx, created, resolved > 0)
	return &entity.StockRecordView{StockRecord: record, Product: product}, nil
}

// Delete elimina el registro de stock y sus alertas. El historial de movimientos se conserva.
func (uc *InventoryUseCase) Delete(ctx context.Context, productID string) (*DeleteResult, error) {
	var res DeleteResult
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		rec, err := r.Stock.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%w: registro de stock %s", domain.ErrNotFound, productID)
		}
		n, err := r.Alerts.DeleteByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if _, err := r.Stock.Delete(ctx, productID); err != nil {
			return err
		}
		res = DeleteResult{Record: *rec, AlertsDeleted: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Int("alerts_deleted", res.AlertsDeleted).Msg("registro de stock eliminado")
	uc.alerts.afterWrite(ctx, nil, res.AlertsDeleted > 0)
	return &res, nil
}

// SyncWithProducts crea registros (stock 0) para los productos activos sin registro e informa
// los registros cuyo producto está inactivo o eliminado. Repetirlo no crea duplicados.
func (uc *InventoryUseCase) SyncWithProducts(ctx context.Context) (*SyncResult, error) {
	res := SyncResult{Created: []*entity.StockRecordView{}, Orphaned: []*entity.StockRecordView{}}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, r Repos) error {
		products, err := r.Products.ListWithoutStock(ctx)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, p := range products {
			rec := &entity.StockRecord{ProductID: p.ID, CreatedAt: now, UpdatedAt: now}
			ok, err := r.Stock.CreateIfAbsent(ctx, rec)
			if err != nil {
				return err
			}
			if ok {
				res.Created = append(res.Created, &entity.StockRecordView{StockRecord: *rec, Product: p.Summary()})
			}
		}
		orphaned, err := r.Stock.ListOrphaned(ctx)
		if err != nil {
			return err
		}
		if orphaned != nil {
			res.Orphaned = orphaned
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.SyncedProducts = len(res.Created)
	res.OrphanedCount = len(res.Orphaned)
	uc.log.Info().Int("synced", res.SyncedProducts).Int("orphaned", res.OrphanedCount).Msg("sincronización con catálogo")
	return &res, nil
}

func reasonFor(movementType, reason string) string {
	if reason != "" {
		return reason
	}
	if movementType == entity.MovementTypeReserve || movementType == entity.MovementTypeRelease {
		return defaultReserveReason
	}
	return defaultStockReason
}
