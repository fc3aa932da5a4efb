package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// DailyEntryRepository lectura de cierres diarios de caja.
type DailyEntryRepository interface {
	// ListByRange devuelve los cierres de los negocios dados con fecha en
	// [from, to], ordenados por fecha. Sin filas no es un error: devuelve slice vacío.
	ListByRange(ctx context.Context, businessIDs []string, from, to time.Time) ([]entity.DailyEntry, error)
}

// ScheduleRepository lectura de las reglas semanales de días de trabajo.
type ScheduleRepository interface {
	// ListRules devuelve todas las reglas de los negocios dados.
	ListRules(ctx context.Context, businessIDs []string) ([]entity.ScheduleRule, error)
}

// MonthlySummaryRepository lectura de resúmenes mensuales agregados
// (tabla de fallback para meses sin cierres diarios).
type MonthlySummaryRepository interface {
	// ListForMonth devuelve los resúmenes de los negocios dados para (year, month).
	ListForMonth(ctx context.Context, businessIDs []string, year, month int) ([]entity.MonthlySummary, error)
}
