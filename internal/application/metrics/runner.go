package metrics

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/pkg/logger"
)

// ComputeFunc calcula un tablero completo para una consulta.
type ComputeFunc func(ctx context.Context, q Query) (*dto.DashboardMetricsDTO, error)

// Runner serializa recomputaciones concurrentes del tablero: cada llamada a
// Run incrementa la generación, y solo el resultado de la generación más
// reciente se entrega al commit. Resultados de generaciones viejas se
// descartan en silencio, sin importar el orden en que terminen.
type Runner struct {
	compute ComputeFunc
	gen     atomic.Uint64
	log     *logger.Logger

	// mu serializa la verificación de vigencia junto con el commit; committed
	// solo avanza, así un commit pendiente de una generación vieja nunca pisa
	// uno más nuevo que ya se entregó.
	mu        sync.Mutex
	committed uint64
}

func NewRunner(compute ComputeFunc, log *logger.Logger) *Runner {
	return &Runner{compute: compute, log: log.Component("metrics-runner")}
}

// Run ejecuta compute y, si ninguna otra llamada llegó mientras tanto,
// entrega el resultado a commit. Un resultado que quedó obsoleto antes de
// poder entregarse se descarta sin error.
func (r *Runner) Run(ctx context.Context, q Query, commit func(*dto.DashboardMetricsDTO)) error {
	myGen := r.gen.Add(1)

	result, err := r.compute(ctx, q)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen.Load() != myGen || myGen <= r.committed {
		r.log.Debug().Uint64("generation", myGen).Msg("resultado obsoleto descartado")
		return nil
	}
	r.committed = myGen
	commit(result)
	return nil
}
