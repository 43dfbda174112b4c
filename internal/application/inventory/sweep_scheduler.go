package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// AlertSweeper operación ejecutada en cada tick.
type AlertSweeper interface {
	CheckAndCreateAlerts(ctx context.Context) ([]*entity.StockAlertView, error)
}

// SweepScheduler ejecuta el barrido de alertas periódicamente: una vez al arrancar y luego
// en cada tick hasta Stop.
type SweepScheduler struct {
	sweeper  AlertSweeper
	interval time.Duration
	timeout  time.Duration
	log      *logger.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSweepScheduler construye el planificador. interval <= 0 lo deshabilita.
func NewSweepScheduler(sweeper AlertSweeper, interval time.Duration, log *logger.Logger) *SweepScheduler {
	if log == nil {
		log = logger.Nop()
	}
	timeout := interval
	if timeout <= 0 || timeout > time.Minute {
		timeout = time.Minute
	}
	return &SweepScheduler{
		sweeper:  sweeper,
		interval: interval,
		timeout:  timeout,
		log:      log.Component("sweep"),
	}
}

// Start lanza la goroutine del barrido. Llamarlo dos veces no tiene efecto.
func (s *SweepScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval <= 0 {
		s.log.Info().Msg("barrido de alertas deshabilitado")
		return
	}
	if s.ticker != nil {
		return
	}
	s.ticker = time.NewTicker(s.interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)
	go s.run(s.ticker.C, s.stop)

	s.log.Info().Dur("interval", s.interval).Msg("barrido de alertas iniciado")
}

// Stop detiene el barrido y espera a que termine la ejecución en curso.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	close(s.stop)
	s.wg.Wait()
	s.ticker = nil
	s.log.Info().Msg("barrido de alertas detenido")
}

func (s *SweepScheduler) run(tick <-chan time.Time, stop <-chan struct{}) {
	defer s.wg.Done()

	s.RunNow()
	for {
		select {
		case <-tick:
			s.RunNow()
		case <-stop:
			return
		}
	}
}

// RunNow ejecuta un barrido inmediato y devuelve cuántas alertas creó.
func (s *SweepScheduler) RunNow() int {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	created, err := s.sweeper.CheckAndCreateAlerts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error en el barrido de alertas")
		return 0
	}
	return len(created)
}
