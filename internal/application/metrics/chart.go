package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	dommetrics "github.com/tu-usuario/resto-metrics/internal/domain/metrics"
)

// ChartQuery consulta del gráfico de tendencia.
type ChartQuery struct {
	TenantID    string
	BusinessIDs []string
	// Now ancla del mes en curso; cero = time.Now(). Inyectable en tests.
	Now time.Time
}

// ComputeChart calcula un punto por cada uno de los últimos ChartMonths meses
// calendario (mes en curso parcial incluido).
//
// Patrón de rendimiento deliberado: un solo fetch por tabla para el span
// completo de meses, agrupado después en memoria por clave "YYYY-MM". Nunca
// una consulta por mes.
func (e *Engine) ComputeChart(ctx context.Context, q ChartQuery) ([]dto.MonthlyChartPointDTO, error) {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}

	// Meses en orden ascendente; el último es el mes en curso.
	months := make([]dommetrics.YearMonth, e.cfg.ChartMonths)
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range months {
		m := anchor.AddDate(0, i-(e.cfg.ChartMonths-1), 0)
		months[i] = dommetrics.YearMonth{Year: m.Year(), Month: m.Month()}
	}
	first := months[0]
	last := months[len(months)-1]
	spanFrom := time.Date(first.Year, first.Month, 1, 0, 0, 0, 0, time.UTC)
	spanTo := time.Date(last.Year, last.Month,
		dommetrics.LastDayOfMonth(last.Year, last.Month), 0, 0, 0, 0, time.UTC)

	sel, byMonth, targetsByMonth, err := e.fetchChartSpan(ctx, q, spanFrom, spanTo, first, last)
	if err != nil {
		return nil, err
	}

	none := map[string]sourceTotals{}
	noneQty := map[string]decimal.Decimal{}
	points := make([]dto.MonthlyChartPointDTO, 0, len(months))
	for _, ym := range months {
		w := byMonth[ym.Key()]
		w.period = dommetrics.Period{
			From: time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(ym.Year, ym.Month, dommetrics.LastDayOfMonth(ym.Year, ym.Month), 0, 0, 0, 0, time.UTC),
		}
		res := computeWindow(sel, fetchWindowData{windowData: w})
		points = append(points, dto.MonthlyChartPointDTO{
			MonthKey:           ym.Key(),
			TotalIncome:        res.totalIncome,
			IncomeBeforeVAT:    res.incomeBeforeVAT,
			LaborPct:           res.labor.ActualPct,
			FoodPct:            res.food.ActualPct,
			CurrentExpensesPct: res.current.ActualPct,
			MonthlyPace:        res.proj.MonthlyPace,
			RevenueTarget:      res.revenueTarget,
			Sources: buildSourceSummaries(sel.sources, targetsByMonth[ym.Key()],
				totalsBySource(w.breakdowns), none, none),
			Products: buildProductSummaries(sel.products,
				quantitiesByProduct(w.usage), noneQty, noneQty,
				res.incomeBeforeVAT, decimal.Zero, decimal.Zero),
		})
	}
	return points, nil
}

// fetchChartSpan trae todos los datos del span en tres lotes (mismo DAG que el
// dashboard pero con una sola ventana grande) y los reparte por mes.
func (e *Engine) fetchChartSpan(
	ctx context.Context,
	q ChartQuery,
	spanFrom, spanTo time.Time,
	firstMonth, lastMonth dommetrics.YearMonth,
) (selection, map[string]windowData, map[string]map[string]decimal.Decimal, error) {
	var sel selection
	var scheduleRules []entity.ScheduleRule
	var suppliersGoods, suppliersCurrent []entity.Supplier
	var entries []entity.DailyEntry
	var goals []entity.Goal

	err := e.runBatch(ctx, func(g *errgroup.Group, bctx context.Context) {
		g.Go(func() (err error) {
			sel.businesses, err = e.repos.Businesses.ListByIDs(bctx, q.TenantID, q.BusinessIDs)
			return err
		})
		g.Go(func() (err error) {
			scheduleRules, err = e.repos.Schedule.ListRules(bctx, q.BusinessIDs)
			return err
		})
		g.Go(func() (err error) {
			sel.sources, err = e.repos.Income.ListSources(bctx, q.BusinessIDs)
			return err
		})
		g.Go(func() (err error) {
			sel.products, err = e.repos.Products.ListProducts(bctx, q.BusinessIDs)
			return err
		})
		g.Go(func() (err error) {
			entries, err = e.repos.Entries.ListByRange(bctx, q.BusinessIDs, spanFrom, spanTo)
			return err
		})
		g.Go(func() (err error) {
			goals, err = e.repos.Goals.ListInRange(bctx, q.BusinessIDs,
				firstMonth.Year, int(firstMonth.Month), lastMonth.Year, int(lastMonth.Month))
			return err
		})
		g.Go(func() (err error) {
			suppliersGoods, err = e.repos.Suppliers.ListActiveByType(bctx, q.BusinessIDs, entity.ExpenseTypeGoodsPurchases)
			return err
		})
		g.Go(func() (err error) {
			suppliersCurrent, err = e.repos.Suppliers.ListActiveByType(bctx, q.BusinessIDs, entity.ExpenseTypeCurrentExpenses)
			return err
		})
	})
	if err != nil {
		return selection{}, nil, nil, fmt.Errorf("gráfico, lote 1: %w", err)
	}

	sel.weekday = dommetrics.AverageWeekdayFactors(scheduleRules)
	for _, b := range sel.businesses {
		sel.managerSalarySum = sel.managerSalarySum.Add(b.ManagerSalary)
	}
	sel.supplierType = make(map[string]string, len(suppliersGoods)+len(suppliersCurrent))
	for _, s := range suppliersGoods {
		sel.supplierType[s.ID] = entity.ExpenseTypeGoodsPurchases
		sel.supplierIDs = append(sel.supplierIDs, s.ID)
	}
	for _, s := range suppliersCurrent {
		sel.supplierType[s.ID] = entity.ExpenseTypeCurrentExpenses
		sel.supplierIDs = append(sel.supplierIDs, s.ID)
	}

	var invoices []entity.Invoice
	var sourceGoals []entity.IncomeSourceGoal
	err = e.runBatch(ctx, func(g *errgroup.Group, bctx context.Context) {
		g.Go(func() (err error) {
			invoices, err = e.repos.Invoices.ListByRange(bctx, sel.supplierIDs, q.BusinessIDs, spanFrom, spanTo)
			return err
		})
		g.Go(func() (err error) {
			sourceGoals, err = e.repos.Income.ListSourceGoals(bctx, goalIDs(goals))
			return err
		})
	})
	if err != nil {
		return selection{}, nil, nil, fmt.Errorf("gráfico, lote 2: %w", err)
	}

	var breakdowns []entity.IncomeBreakdown
	var usage []entity.ProductUsage
	entryIDs := make([]string, 0, len(entries))
	for _, en := range entries {
		entryIDs = append(entryIDs, en.ID)
	}
	err = e.runBatch(ctx, func(g *errgroup.Group, bctx context.Context) {
		g.Go(func() (err error) {
			breakdowns, err = e.repos.Income.ListBreakdowns(bctx, entryIDs)
			return err
		})
		g.Go(func() (err error) {
			usage, err = e.repos.Products.ListUsage(bctx, entryIDs)
			return err
		})
	})
	if err != nil {
		return selection{}, nil, nil, fmt.Errorf("gráfico, lote 3: %w", err)
	}

	// Agrupar todo por clave de mes.
	byMonth := make(map[string]windowData)
	entryMonth := make(map[string]string, len(entries))
	for _, en := range entries {
		key := dommetrics.MonthKey(en.EntryDate)
		entryMonth[en.ID] = key
		w := byMonth[key]
		w.entries = append(w.entries, en)
		byMonth[key] = w
	}
	goalMonth := make(map[string]string, len(goals))
	for _, g := range goals {
		key := dommetrics.YearMonth{Year: g.Year, Month: time.Month(g.Month)}.Key()
		goalMonth[g.ID] = key
		w := byMonth[key]
		w.goals = append(w.goals, g)
		byMonth[key] = w
	}
	invoicesByMonth := make(map[string][]entity.Invoice)
	for _, inv := range invoices {
		key := dommetrics.MonthKey(inv.InvoiceDate)
		invoicesByMonth[key] = append(invoicesByMonth[key], inv)
	}
	for key, monthInvoices := range invoicesByMonth {
		w := byMonth[key]
		w.foodCost, w.foodInvoices, w.currentCost, w.currentInvoices =
			classifyInvoices(monthInvoices, sel.supplierType)
		byMonth[key] = w
	}
	for _, b := range breakdowns {
		if key, ok := entryMonth[b.EntryID]; ok {
			w := byMonth[key]
			w.breakdowns = append(w.breakdowns, b)
			byMonth[key] = w
		}
	}
	for _, u := range usage {
		if key, ok := entryMonth[u.EntryID]; ok {
			w := byMonth[key]
			w.usage = append(w.usage, u)
			byMonth[key] = w
		}
	}

	// Metas de ticket promedio por mes: cada fila pertenece a la meta mensual
	// de su goal id.
	targetsByMonth := make(map[string]map[string]decimal.Decimal)
	for _, sg := range sourceGoals {
		key, ok := goalMonth[sg.GoalID]
		if !ok {
			continue
		}
		if targetsByMonth[key] == nil {
			targetsByMonth[key] = make(map[string]decimal.Decimal)
		}
		targetsByMonth[key][sg.SourceID] = targetsByMonth[key][sg.SourceID].Add(sg.AvgTicketTarget)
	}

	return sel, byMonth, targetsByMonth, nil
}
