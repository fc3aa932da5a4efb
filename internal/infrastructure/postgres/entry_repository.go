package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.DailyEntryRepository = (*DailyEntryRepo)(nil)
var _ repository.ScheduleRepository = (*ScheduleRepo)(nil)
var _ repository.MonthlySummaryRepository = (*MonthlySummaryRepo)(nil)

// DailyEntryRepo lectura de cierres diarios de caja sobre PostgreSQL.
type DailyEntryRepo struct {
	pool *pgxpool.Pool
}

// NewDailyEntryRepository construye el adaptador de cierres diarios.
func NewDailyEntryRepository(pool *pgxpool.Pool) *DailyEntryRepo {
	return &DailyEntryRepo{pool: pool}
}

// ListByRange devuelve los cierres de los negocios dados con fecha en [from, to].
func (r *DailyEntryRepo) ListByRange(ctx context.Context, businessIDs []string, from, to time.Time) ([]entity.DailyEntry, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, business_id, entry_date, total_register, labor_cost, day_factor
	FROM daily_entries
	WHERE business_id = ANY($1) AND entry_date BETWEEN $2 AND $3
	ORDER BY entry_date`

	rows, err := r.pool.Query(ctx, query, businessIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("entry.ListByRange: %w", err)
	}
	defer rows.Close()

	var out []entity.DailyEntry
	for rows.Next() {
		var e entity.DailyEntry
		if err := rows.Scan(
			&e.ID, &e.BusinessID, &e.EntryDate,
			&e.TotalRegister, &e.LaborCost, &e.DayFactor,
		); err != nil {
			return nil, fmt.Errorf("entry.ListByRange scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ScheduleRepo lectura de reglas semanales de días de trabajo.
type ScheduleRepo struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository construye el adaptador de horarios.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepo {
	return &ScheduleRepo{pool: pool}
}

// ListRules devuelve todas las reglas de los negocios dados.
func (r *ScheduleRepo) ListRules(ctx context.Context, businessIDs []string) ([]entity.ScheduleRule, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT business_id, weekday, day_factor
	FROM schedule_rules
	WHERE business_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, businessIDs)
	if err != nil {
		return nil, fmt.Errorf("schedule.ListRules: %w", err)
	}
	defer rows.Close()

	var out []entity.ScheduleRule
	for rows.Next() {
		var sr entity.ScheduleRule
		var weekday int
		if err := rows.Scan(&sr.BusinessID, &weekday, &sr.DayFactor); err != nil {
			return nil, fmt.Errorf("schedule.ListRules scan: %w", err)
		}
		sr.Weekday = time.Weekday(weekday)
		out = append(out, sr)
	}
	return out, rows.Err()
}

// MonthlySummaryRepo lectura de resúmenes mensuales agregados (fallback de
// meses pre-migración sin cierres diarios).
type MonthlySummaryRepo struct {
	pool *pgxpool.Pool
}

// NewMonthlySummaryRepository construye el adaptador de resúmenes mensuales.
func NewMonthlySummaryRepository(pool *pgxpool.Pool) *MonthlySummaryRepo {
	return &MonthlySummaryRepo{pool: pool}
}

// ListForMonth devuelve los resúmenes de los negocios dados para (year, month).
func (r *MonthlySummaryRepo) ListForMonth(ctx context.Context, businessIDs []string, year, month int) ([]entity.MonthlySummary, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT business_id, year, month, total_income
	FROM monthly_summaries
	WHERE business_id = ANY($1) AND year = $2 AND month = $3`

	rows, err := r.pool.Query(ctx, query, businessIDs, year, month)
	if err != nil {
		return nil, fmt.Errorf("summary.ListForMonth: %w", err)
	}
	defer rows.Close()

	var out []entity.MonthlySummary
	for rows.Next() {
		var s entity.MonthlySummary
		if err := rows.Scan(&s.BusinessID, &s.Year, &s.Month, &s.TotalIncome); err != nil {
			return nil, fmt.Errorf("summary.ListForMonth scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
