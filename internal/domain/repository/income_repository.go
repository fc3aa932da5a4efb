package repository

import (
	"context"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// IncomeRepository lectura de fuentes de ingreso, sus desgloses diarios y sus
// metas de ticket promedio.
type IncomeRepository interface {
	// ListSources devuelve las fuentes de los negocios dados ordenadas por
	// DisplayOrder.
	ListSources(ctx context.Context, businessIDs []string) ([]entity.IncomeSource, error)

	// ListBreakdowns devuelve los desgloses cuyas filas pertenecen a los
	// cierres dados. Se consulta por lote de entry ids (una sola ida a la DB
	// para las tres ventanas del período).
	ListBreakdowns(ctx context.Context, entryIDs []string) ([]entity.IncomeBreakdown, error)

	// ListSourceGoals devuelve las metas de ticket promedio de las metas dadas.
	ListSourceGoals(ctx context.Context, goalIDs []string) ([]entity.IncomeSourceGoal, error)
}
