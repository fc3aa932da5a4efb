package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmetrics "github.com/tu-usuario/resto-metrics/internal/application/metrics"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// TestEngine_ComputeChart_UnPuntoPorMes: el gráfico agrupa el span completo en
// memoria y produce un punto por mes calendario, en orden ascendente, con el
// mes en curso (parcial) al final.
func TestEngine_ComputeChart_UnPuntoPorMes(t *testing.T) {
	f := referenceRepos()
	f.entries = append(f.entries, entity.DailyEntry{
		ID: "e-apr", BusinessID: "b1", EntryDate: date(2025, time.April, 10),
		TotalRegister: dec("2360"), LaborCost: dec("150"), DayFactor: dec("1"),
	})
	engine := appmetrics.NewEngine(f.repos(), appmetrics.Config{ChartMonths: 3}, testLogger())

	points, err := engine.ComputeChart(context.Background(), appmetrics.ChartQuery{
		TenantID:    "t1",
		BusinessIDs: []string{"b1"},
		Now:         date(2025, time.June, 15),
	})
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.Equal(t, "2025-04", points[0].MonthKey)
	assert.Equal(t, "2025-05", points[1].MonthKey)
	assert.Equal(t, "2025-06", points[2].MonthKey)

	// Abril: un cierre de 2360 brutos → 2000 sin IVA, ritmo 2360 × 30.
	assertDec(t, "2360", points[0].TotalIncome)
	assertDec(t, "2000", points[0].IncomeBeforeVAT)
	assertDec(t, "70800", points[0].MonthlyPace)
	assertDec(t, "0", points[0].RevenueTarget, "abril no tiene meta")

	// Mayo: el cierre e-may con su desglose y consumo.
	assertDec(t, "1180", points[1].TotalIncome)
	require.Len(t, points[1].Sources, 1)
	assertDec(t, "2000", points[1].Sources[0].TotalAmount)
	assert.Equal(t, 5, points[1].Sources[0].OrdersCount)
	assertDec(t, "400", points[1].Sources[0].AvgAmount)
	assertDec(t, "0", points[1].Sources[0].AvgTicketTarget, "la meta de ticket es de junio")

	// Junio: mismo resultado mensual que el dashboard del período completo.
	assertDec(t, "3540", points[2].TotalIncome)
	assertDec(t, "20", points[2].FoodPct)
	assertDec(t, "25000", points[2].RevenueTarget)
	require.Len(t, points[2].Sources, 1)
	assertDec(t, "500", points[2].Sources[0].AvgAmount)
	assertDec(t, "450", points[2].Sources[0].AvgTicketTarget)
	require.Len(t, points[2].Products, 1)
	assertDec(t, "300", points[2].Products[0].Cost)
	assertDec(t, "10", points[2].Products[0].Pct)
}

// TestEngine_ComputeChart_MesesSinDatos: los meses del span sin ninguna fila
// igual producen un punto, con todo en cero.
func TestEngine_ComputeChart_MesesSinDatos(t *testing.T) {
	f := referenceRepos()
	engine := appmetrics.NewEngine(f.repos(), appmetrics.Config{ChartMonths: 6}, testLogger())

	points, err := engine.ComputeChart(context.Background(), appmetrics.ChartQuery{
		TenantID:    "t1",
		BusinessIDs: []string{"b1"},
		Now:         date(2025, time.June, 15),
	})
	require.NoError(t, err)

	require.Len(t, points, 6)
	assert.Equal(t, "2025-01", points[0].MonthKey)
	assertDec(t, "0", points[0].TotalIncome)
	assertDec(t, "0", points[0].LaborPct)
	assertDec(t, "0", points[0].MonthlyPace)
}
