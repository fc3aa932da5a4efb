package metrics_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	appmetrics "github.com/tu-usuario/resto-metrics/internal/application/metrics"
)

// TestRunner_DescartaResultadosObsoletos: si una segunda recomputación llega
// mientras la primera sigue en vuelo, solo el resultado de la más reciente se
// entrega al commit; el de la vieja se descarta aunque termine después.
func TestRunner_DescartaResultadosObsoletos(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	compute := func(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error) {
		if q.TenantID == "lenta" {
			close(slowStarted)
			<-release
			return &dto.DashboardMetricsDTO{TotalIncome: dec("111")}, nil
		}
		return &dto.DashboardMetricsDTO{TotalIncome: dec("222")}, nil
	}
	runner := appmetrics.NewRunner(compute, testLogger())

	var mu sync.Mutex
	var committed []decimal.Decimal
	commit := func(r *dto.DashboardMetricsDTO) {
		mu.Lock()
		committed = append(committed, r.TotalIncome)
		mu.Unlock()
	}

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(context.Background(), appmetrics.Query{TenantID: "lenta"}, commit)
	}()
	<-slowStarted

	// La segunda invocación entra mientras la primera sigue calculando.
	require.NoError(t, runner.Run(context.Background(), appmetrics.Query{TenantID: "rápida"}, commit))

	close(release)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, committed, 1, "solo la generación más reciente llega al commit")
	assertDec(t, "222", committed[0])
}

// TestRunner_CommitViejoNoPisaAlNuevo: la verificación de vigencia y el
// commit van juntos bajo el mismo candado; un commit ya en curso retiene a
// las generaciones siguientes y el resultado más nuevo siempre queda como el
// último entregado, aunque el commit viejo tarde en terminar.
func TestRunner_CommitViejoNoPisaAlNuevo(t *testing.T) {
	inCommit := make(chan struct{})
	release := make(chan struct{})

	compute := func(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error) {
		if q.TenantID == "primera" {
			return &dto.DashboardMetricsDTO{TotalIncome: dec("111")}, nil
		}
		return &dto.DashboardMetricsDTO{TotalIncome: dec("222")}, nil
	}
	runner := appmetrics.NewRunner(compute, testLogger())

	var mu sync.Mutex
	var committed []decimal.Decimal
	commit := func(r *dto.DashboardMetricsDTO) {
		if r.TotalIncome.Equal(dec("111")) {
			close(inCommit)
			<-release
		}
		mu.Lock()
		committed = append(committed, r.TotalIncome)
		mu.Unlock()
	}

	done1 := make(chan error, 1)
	go func() {
		done1 <- runner.Run(context.Background(), appmetrics.Query{TenantID: "primera"}, commit)
	}()
	<-inCommit

	// La segunda invocación llega con la primera todavía dentro del commit.
	done2 := make(chan error, 1)
	go func() {
		done2 <- runner.Run(context.Background(), appmetrics.Query{TenantID: "segunda"}, commit)
	}()

	close(release)
	require.NoError(t, <-done1)
	require.NoError(t, <-done2)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, committed, 2)
	assertDec(t, "111", committed[0], "la primera generación era vigente cuando verificó")
	assertDec(t, "222", committed[1], "la más nueva siempre se entrega al final")
}

func TestRunner_EntregaResultadoVigente(t *testing.T) {
	compute := func(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error) {
		return &dto.DashboardMetricsDTO{TotalIncome: dec("3540")}, nil
	}
	runner := appmetrics.NewRunner(compute, testLogger())

	var got *dto.DashboardMetricsDTO
	err := runner.Run(context.Background(), appmetrics.Query{}, func(r *dto.DashboardMetricsDTO) { got = r })

	require.NoError(t, err)
	require.NotNil(t, got)
	assertDec(t, "3540", got.TotalIncome)
}

func TestRunner_PropagaErrorDeComputo(t *testing.T) {
	boom := errors.New("fetch fallido")
	compute := func(ctx context.Context, q appmetrics.Query) (*dto.DashboardMetricsDTO, error) {
		return nil, boom
	}
	runner := appmetrics.NewRunner(compute, testLogger())

	called := false
	err := runner.Run(context.Background(), appmetrics.Query{}, func(*dto.DashboardMetricsDTO) { called = true })

	assert.ErrorIs(t, err, boom)
	assert.False(t, called, "un cálculo fallido nunca llega al commit")
}
