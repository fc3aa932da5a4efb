package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.IncomeRepository = (*IncomeRepo)(nil)

// IncomeRepo lectura de fuentes de ingreso, desgloses diarios y metas de
// ticket promedio sobre PostgreSQL.
type IncomeRepo struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository construye el adaptador de fuentes de ingreso.
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepo {
	return &IncomeRepo{pool: pool}
}

// ListSources devuelve las fuentes de los negocios dados ordenadas por
// display_order.
func (r *IncomeRepo) ListSources(ctx context.Context, businessIDs []string) ([]entity.IncomeSource, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, business_id, name, type, display_order
	FROM income_sources
	WHERE business_id = ANY($1)
	ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query, businessIDs)
	if err != nil {
		return nil, fmt.Errorf("income.ListSources: %w", err)
	}
	defer rows.Close()

	var out []entity.IncomeSource
	for rows.Next() {
		var s entity.IncomeSource
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.Type, &s.DisplayOrder); err != nil {
			return nil, fmt.Errorf("income.ListSources scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListBreakdowns devuelve los desgloses de los cierres dados. El motor pasa
// los entry ids de las tres ventanas juntos: una sola ida a la base.
func (r *IncomeRepo) ListBreakdowns(ctx context.Context, entryIDs []string) ([]entity.IncomeBreakdown, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, entry_id, source_id, amount, orders_count
	FROM income_breakdowns
	WHERE entry_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("income.ListBreakdowns: %w", err)
	}
	defer rows.Close()

	var out []entity.IncomeBreakdown
	for rows.Next() {
		var b entity.IncomeBreakdown
		if err := rows.Scan(&b.ID, &b.EntryID, &b.SourceID, &b.Amount, &b.OrdersCount); err != nil {
			return nil, fmt.Errorf("income.ListBreakdowns scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListSourceGoals devuelve las metas de ticket promedio de las metas dadas.
func (r *IncomeRepo) ListSourceGoals(ctx context.Context, goalIDs []string) ([]entity.IncomeSourceGoal, error) {
	if len(goalIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT goal_id, source_id, avg_ticket_target
	FROM income_source_goals
	WHERE goal_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, goalIDs)
	if err != nil {
		return nil, fmt.Errorf("income.ListSourceGoals: %w", err)
	}
	defer rows.Close()

	var out []entity.IncomeSourceGoal
	for rows.Next() {
		var sg entity.IncomeSourceGoal
		if err := rows.Scan(&sg.GoalID, &sg.SourceID, &sg.AvgTicketTarget); err != nil {
			return nil, fmt.Errorf("income.ListSourceGoals scan: %w", err)
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}
