package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// SystemUser autor de las resoluciones automáticas (la condición dejó de cumplirse).
const SystemUser = "system"

const (
	summaryFlightKey = "alert-summary"
	notifyTimeout    = 5 * time.Second
)

// AlertUseCase deriva, consulta y resuelve alertas de inventario.
type AlertUseCase struct {
	alerts   repository.StockAlertRepository
	stock    repository.StockRepository
	products repository.ProductRepository
	notifier AlertNotifier
	cache    AlertSummaryCache
	log      *logger.Logger
	group    singleflight.Group
	now      func() time.Time
	pending  sync.WaitGroup // notificaciones en curso
}

// NewAlertUseCase construye el caso de uso. notifier y cache pueden ser nil.
func NewAlertUseCase(
	alerts repository.StockAlertRepository,
	stock repository.StockRepository,
	products repository.ProductRepository,
	notifier AlertNotifier,
	cache AlertSummaryCache,
	log *logger.Logger,
) *AlertUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertUseCase{
		alerts:   alerts,
		stock:    stock,
		products: products,
		notifier: notifier,
		cache:    cache,
		log:      log.Component("alerts"),
		now:      time.Now,
	}
}

// CreateAlertInput entrada del alta manual de una alerta.
type CreateAlertInput struct {
	ProductID    string
	Type         string
	Message      string
	Threshold    *int
	CurrentStock *int // nil = stock actual del registro (0 si no existe)
}

// AlertQuery filtros del listado de alertas.
type AlertQuery struct {
	ProductID  string
	Type       string
	IsResolved *bool
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}

// Create alta directa. No busca duplicados: una alerta abierta del mismo tipo para el
// producto termina en domain.ErrDuplicate por el índice único parcial.
func (uc *AlertUseCase) Create(ctx context.Context, in CreateAlertInput) (*entity.StockAlertView, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if !entity.IsValidAlertType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de alerta desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	current := 0
	if in.CurrentStock != nil {
		current = *in.CurrentStock
	} else {
		rec, err := uc.stock.Get(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			current = rec.Stock
		}
	}
	if current < 0 {
		return nil, fmt.Errorf("%w: current_stock no puede ser negativo", domain.ErrInvalidInput)
	}

	summary := product.Summary()
	alert := uc.newAlert(in.Type, summary, current, in.Threshold)
	if in.Message != "" {
		alert.Message = in.Message
	}
	if err := uc.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	view := &entity.StockAlertView{StockAlert: *alert, Product: summary}
	uc.afterWrite(ctx, []*entity.StockAlertView{view}, false)
	return view, nil
}

// FindAll lista alertas (más recientes primero) con filtros y paginación.
func (uc *AlertUseCase) FindAll(ctx context.Context, q AlertQuery) (*Page[*entity.StockAlertView], error) {
	if q.Type != "" && !entity.IsValidAlertType(q.Type) {
		return nil, fmt.Errorf("%w: tipo de alerta desconocido %q", domain.ErrInvalidInput, q.Type)
	}
	if err := checkRange(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	page, pageSize := NormalizePage(q.Page, q.PageSize)
	filter := repository.AlertFilter{
		ProductID:  q.ProductID,
		Type:       q.Type,
		IsResolved: q.IsResolved,
		From:       q.StartDate,
		To:         q.EndDate,
		Limit:      pageSize,
		Offset:     offset(page, pageSize),
	}

	var (
		total int
		items []*entity.StockAlertView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = uc.alerts.Count(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = uc.alerts.List(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.StockAlertView{}
	}
	return &Page[*entity.StockAlertView]{Total: total, Page: page, PageSize: pageSize, Items: items}, nil
}

// FindByProduct alertas de un producto.
func (uc *AlertUseCase) FindByProduct(ctx context.Context, productID string, page, pageSize int) (*Page[*entity.StockAlertView], error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	return uc.FindAll(ctx, AlertQuery{ProductID: productID, Page: page, PageSize: pageSize})
}

// GetActiveAlerts todas las alertas sin resolver, más recientes primero.
func (uc *AlertUseCase) GetActiveAlerts(ctx context.Context) ([]*entity.StockAlertView, error) {
	open := false
	items, err := uc.alerts.List(ctx, repository.AlertFilter{IsResolved: &open})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*entity.StockAlertView{}
	}
	return items, nil
}

// GetAlertSummary conteos total/activas/resueltas y activas por tipo.
// Cache-aside con singleflight: los fallos concurrentes de caché hacen una sola consulta.
func (uc *AlertUseCase) GetAlertSummary(ctx context.Context) (*repository.AlertCounts, error) {
	if counts := uc.cached(ctx); counts != nil {
		return counts, nil
	}
	v, err, _ := uc.group.Do(summaryFlightKey, func() (interface{}, error) {
		if counts := uc.cached(ctx); counts != nil {
			return counts, nil
		}
		counts, err := uc.alerts.Counts(ctx)
		if err != nil {
			return nil, err
		}
		if counts.ByType == nil {
			counts.ByType = map[string]int{}
		}
		if uc.cache != nil {
			if err := uc.cache.Set(ctx, counts); err != nil {
				uc.log.Warn().Err(err).Msg("no se pudo guardar el resumen de alertas en caché")
			}
		}
		return &counts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*repository.AlertCounts), nil
}

func (uc *AlertUseCase) cached(ctx context.Context) *repository.AlertCounts {
	if uc.cache == nil {
		return nil
	}
	counts, err := uc.cache.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de resumen de alertas no disponible")
		return nil
	}
	return counts
}

// Resolve marca la alerta como resuelta. Idempotente: resolver dos veces conserva el primer resolvedAt.
func (uc *AlertUseCase) Resolve(ctx context.Context, id, userID string) (*entity.StockAlert, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	alert, err := uc.alerts.Resolve(ctx, id, userID, uc.now())
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
	}
	uc.afterWrite(ctx, nil, true)
	return alert, nil
}

// BulkResolve resuelve varias alertas; devuelve cuántas pasaron a resueltas.
func (uc *AlertUseCase) BulkResolve(ctx context.Context, ids []string, userID string) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: lista de ids vacía", domain.ErrInvalidInput)
	}
	n, err := uc.alerts.ResolveMany(ctx, ids, userID, uc.now())
	if err != nil {
		return 0, err
	}
	uc.afterWrite(ctx, nil, n > 0)
	return n, nil
}

// Delete elimina una alerta.
func (uc *AlertUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.alerts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: alerta %s", domain.ErrNotFound, id)
	}
	uc.afterWrite(ctx, nil, true)
	return nil
}

// BulkDelete elimina varias alertas; devuelve cuántas existían.
func (uc *AlertUseCase) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: lista de ids vacía", domain.ErrInvalidInput)
	}
	n, err := uc.alerts.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	uc.afterWrite(ctx, nil, n > 0)
	return n, nil
}

// CheckAndCreateAlerts barre todos los registros con umbral o tope configurado y abre las
// alertas que falten. Ejecutarlo dos veces seguidas no crea duplicados.
func (uc *AlertUseCase) CheckAndCreateAlerts(ctx context.Context) ([]*entity.StockAlertView, error) {
	records, err := uc.stock.ListWithThresholds(ctx)
	if err != nil {
		return nil, err
	}
	created := []*entity.StockAlertView{}
	for _, rec := range records {
		for _, cond := range inventory.EvaluateThresholds(&rec.StockRecord) {
			if !cond.Breached {
				continue
			}
			alert := uc.newAlert(cond.Type, rec.Product, rec.Stock, cond.Threshold)
			ok, err := uc.alerts.CreateIfAbsent(ctx, alert)
			if err != nil {
				return nil, err
			}
			if ok {
				created = append(created, &entity.StockAlertView{StockAlert: *alert, Product: rec.Product})
			}
		}
	}
	uc.log.Info().Int("records", len(records)).Int("created", len(created)).Msg("barrido de alertas completado")
	uc.afterWrite(ctx, created, false)
	return created, nil
}

// EvaluateInTx re-evalúa un producto con el repositorio de la transacción del llamador:
// abre las alertas que falten y resuelve las abiertas cuya condición ya no se cumple.
// La notificación queda a cargo del llamador, después del Commit.
func (uc *AlertUseCase) EvaluateInTx(
	ctx context.Context,
	repo repository.StockAlertRepository,
	rec *entity.StockRecord,
	product entity.ProductSummary,
) (created []*entity.StockAlertView, resolved int, err error) {
	open, err := repo.ListOpenByProduct(ctx, rec.ProductID)
	if err != nil {
		return nil, 0, err
	}
	openByType := make(map[string]*entity.StockAlert, len(open))
	for _, a := range open {
		openByType[a.Type] = a
	}

	now := uc.now()
	for _, cond := range inventory.EvaluateThresholds(rec) {
		existing := openByType[cond.Type]
		switch {
		case cond.Breached && existing == nil:
			alert := uc.newAlert(cond.Type, product, rec.Stock, cond.Threshold)
			ok, err := repo.CreateIfAbsent(ctx, alert)
			if err != nil {
				return nil, 0, err
			}
			if ok {
				created = append(created, &entity.StockAlertView{StockAlert: *alert, Product: product})
			}
		case !cond.Breached && existing != nil:
			if _, err := repo.Resolve(ctx, existing.ID, SystemUser, now); err != nil {
				return nil, 0, err
			}
			resolved++
		}
	}
	return created, resolved, nil
}

func (uc *AlertUseCase) newAlert(alertType string, product entity.ProductSummary, stock int, threshold *int) *entity.StockAlert {
	now := uc.now()
	return &entity.StockAlert{
		ID:           uuid.New().String(),
		ProductID:    product.ID,
		Type:         alertType,
		Message:      inventory.AlertMessage(alertType, product, stock, threshold),
		Threshold:    threshold,
		CurrentStock: stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// afterWrite invalida la caché del resumen y publica las alertas creadas en segundo plano.
// Ningún fallo se propaga.
func (uc *AlertUseCase) afterWrite(ctx context.Context, created []*entity.StockAlertView, changed bool) {
	if !changed && len(created) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar el resumen de alertas")
		}
	}
	for _, a := range created {
		uc.log.Info().Str("alert_id", a.ID).Str("product_id", a.ProductID).Str("type", a.Type).Msg(a.Message)
	}
	if uc.notifier == nil || len(created) == 0 {
		return
	}
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		for _, a := range created {
			nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
			if err := uc.notifier.AlertCreated(nctx, a); err != nil {
				uc.log.Error().Err(err).Str("alert_id", a.ID).Msg("no se pudo notificar la alerta")
			}
			cancel()
		}
	}()
}

// WaitNotifications espera a que terminen las notificaciones pendientes o a que ctx expire.
func (uc *AlertUseCase) WaitNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		uc.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
