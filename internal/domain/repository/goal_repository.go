package repository

import (
	"context"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// GoalRepository lectura de metas mensuales.
type GoalRepository interface {
	// ListForMonth devuelve a lo sumo una meta por negocio para (year, month).
	ListForMonth(ctx context.Context, businessIDs []string, year, month int) ([]entity.Goal, error)

	// ListInRange devuelve las metas con (year, month) dentro del rango cerrado
	// [fromYear-fromMonth, toYear-toMonth]. Lo usa el gráfico de tendencia para
	// traer los 6 meses en una sola consulta.
	ListInRange(ctx context.Context, businessIDs []string, fromYear, fromMonth, toYear, toMonth int) ([]entity.Goal, error)
}
