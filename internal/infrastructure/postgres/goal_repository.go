package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.GoalRepository = (*GoalRepo)(nil)

// GoalRepo lectura de metas mensuales sobre PostgreSQL.
type GoalRepo struct {
	pool *pgxpool.Pool
}

// NewGoalRepository construye el adaptador de metas.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepo {
	return &GoalRepo{pool: pool}
}

const goalColumns = `
	id, business_id, year, month,
	revenue_target, labor_target_pct, food_target_pct, current_expenses_target,
	vat_rate_override, markup_override`

// ListForMonth devuelve a lo sumo una meta por negocio para (year, month).
func (r *GoalRepo) ListForMonth(ctx context.Context, businessIDs []string, year, month int) ([]entity.Goal, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	query := `
	SELECT ` + goalColumns + `
	FROM goals
	WHERE business_id = ANY($1) AND year = $2 AND month = $3`

	rows, err := r.pool.Query(ctx, query, businessIDs, year, month)
	if err != nil {
		return nil, fmt.Errorf("goal.ListForMonth: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

// ListInRange devuelve las metas con (year, month) en el rango cerrado
// [fromYear-fromMonth, toYear-toMonth]. La comparación year*12+month evita el
// caso borde de rangos que cruzan el año.
func (r *GoalRepo) ListInRange(ctx context.Context, businessIDs []string, fromYear, fromMonth, toYear, toMonth int) ([]entity.Goal, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	query := `
	SELECT ` + goalColumns + `
	FROM goals
	WHERE business_id = ANY($1) AND (year * 12 + month) BETWEEN $2 AND $3
	ORDER BY year, month`

	rows, err := r.pool.Query(ctx, query, businessIDs, fromYear*12+fromMonth, toYear*12+toMonth)
	if err != nil {
		return nil, fmt.Errorf("goal.ListInRange: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

func scanGoals(rows pgx.Rows) ([]entity.Goal, error) {
	var out []entity.Goal
	for rows.Next() {
		var g entity.Goal
		if err := rows.Scan(
			&g.ID, &g.BusinessID, &g.Year, &g.Month,
			&g.RevenueTarget, &g.LaborTargetPct, &g.FoodTargetPct, &g.CurrentExpensesTarget,
			&g.VATRateOverride, &g.MarkupOverride,
		); err != nil {
			return nil, fmt.Errorf("goal scan: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
