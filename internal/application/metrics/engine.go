// Package metrics contiene el caso de uso del motor de métricas financieras:
// orquesta los lotes de consultas, ejecuta los cálculos puros de
// domain/metrics sobre las tres ventanas (actual, mes anterior, año anterior)
// y arma el DTO del dashboard. Ningún dato compartido se muta durante el
// cálculo; el resultado se construye una sola vez al final.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/tu-usuario/resto-metrics/internal/application/dto"
	"github.com/tu-usuario/resto-metrics/internal/domain"
	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	dommetrics "github.com/tu-usuario/resto-metrics/internal/domain/metrics"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
	"github.com/tu-usuario/resto-metrics/pkg/logger"
)

// Repos agrupa los repositorios de solo lectura que consume el motor.
type Repos struct {
	Businesses repository.BusinessRepository
	Entries    repository.DailyEntryRepository
	Schedule   repository.ScheduleRepository
	Goals      repository.GoalRepository
	Suppliers  repository.SupplierRepository
	Invoices   repository.InvoiceRepository
	Income     repository.IncomeRepository
	Products   repository.ManagedProductRepository
	Summaries  repository.MonthlySummaryRepository
}

// Config parámetros del motor.
type Config struct {
	// FetchTimeout timeout por lote de consultas. Superarlo aborta el cálculo
	// completo: nunca se emiten KPIs parciales.
	FetchTimeout time.Duration
	// ChartMonths meses del gráfico de tendencia, mes en curso incluido.
	ChartMonths int
}

// Query identifica una invocación del motor: selección de negocios y rango de
// fechas del período actual.
type Query struct {
	TenantID    string
	BusinessIDs []string
	From        time.Time
	To          time.Time
}

// Engine calcula los KPIs del dashboard. Es una función pura de sus repos:
// no guarda estado entre invocaciones.
type Engine struct {
	repos Repos
	cfg   Config
	log   *logger.Logger
}

// NewEngine construye el motor.
func NewEngine(repos Repos, cfg Config, log *logger.Logger) *Engine {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.ChartMonths <= 0 {
		cfg.ChartMonths = 6
	}
	return &Engine{repos: repos, cfg: cfg, log: log.Component("metrics-engine")}
}

// selection datos a nivel de selección, compartidos por las tres ventanas.
type selection struct {
	businesses       []entity.Business
	weekday          dommetrics.WeekdayFactors
	sources          []entity.IncomeSource
	products         []entity.ManagedProduct
	supplierType     map[string]string // supplier id → expense type
	supplierIDs      []string
	managerSalarySum decimal.Decimal
}

// windowData datos crudos de una ventana (actual, mes anterior o año anterior).
type windowData struct {
	period          dommetrics.Period
	goals           []entity.Goal
	entries         []entity.DailyEntry
	foodCost        decimal.Decimal
	foodInvoices    int
	currentCost     decimal.Decimal
	currentInvoices int
	breakdowns      []entity.IncomeBreakdown
	usage           []entity.ProductUsage
	// fallbackIncome ingreso desde la tabla de resúmenes mensuales; solo se usa
	// cuando la ventana no tiene cierres diarios (ver usedFallback).
	fallbackIncome decimal.Decimal
	usedFallback   bool
}

// Compute ejecuta el cálculo completo para la consulta dada.
// Cualquier error de fetch falla la invocación entera; "cero filas" no es error.
func (e *Engine) Compute(ctx context.Context, q Query) (*dto.DashboardMetricsDTO, error) {
	start := time.Now()

	curr := dommetrics.Period{From: q.From, To: q.To}
	prevM := curr.PrevMonth()
	prevY := curr.PrevYear()

	sel, windows, err := e.fetchAll(ctx, q, [3]dommetrics.Period{curr, prevM, prevY})
	if err != nil {
		return nil, err
	}

	currRes := computeWindow(sel, windows[0])
	prevMRes := computeWindow(sel, windows[1])
	prevYRes := computeWindow(sel, windows[2])

	targets := sourceTargetsByID(windows[0].sourceGoals)
	result := &dto.DashboardMetricsDTO{
		TotalIncome:      currRes.totalIncome,
		IncomeBeforeVAT:  currRes.incomeBeforeVAT,
		ActualWorkDays:   currRes.actualWorkDays,
		ExpectedWorkDays: currRes.expectedWorkDays,

		Labor:           costKPIDTO(currRes, prevMRes, prevYRes, laborMetric),
		Food:            costKPIDTO(currRes, prevMRes, prevYRes, foodMetric),
		CurrentExpenses: costKPIDTO(currRes, prevMRes, prevYRes, currentMetric),

		MonthlyPace:      currRes.proj.MonthlyPace,
		RevenueTarget:    currRes.revenueTarget,
		TargetDiffPct:    currRes.proj.TargetDiffPct,
		TargetDiffAmount: currRes.proj.TargetDiffAmount,

		// Mes contra mes: ritmo proyectado contra total crudo del mes anterior
		// (neutral a cuántos días lleva el período actual). Año contra año:
		// totales crudos de período contra período.
		IncomePrevMonthChangePct: changePct(currRes.proj.MonthlyPace, prevMRes.totalIncome),
		IncomePrevYearChangePct:  changePct(currRes.totalIncome, prevYRes.totalIncome),

		Sources: buildSourceSummaries(sel.sources, targets,
			totalsBySource(windows[0].breakdowns),
			totalsBySource(windows[1].breakdowns),
			totalsBySource(windows[2].breakdowns)),
		Products: buildProductSummaries(sel.products,
			quantitiesByProduct(windows[0].usage),
			quantitiesByProduct(windows[1].usage),
			quantitiesByProduct(windows[2].usage),
			currRes.incomeBeforeVAT, prevMRes.incomeBeforeVAT, prevYRes.incomeBeforeVAT),
	}

	e.log.Debug().
		Int("businesses", len(sel.businesses)).
		Int("entries", len(windows[0].entries)).
		Dur("elapsed", time.Since(start)).
		Msg("cálculo de métricas completado")

	return result, nil
}

// fetchWindowData es windowData más las metas de ticket promedio (solo la
// ventana actual las necesita).
type fetchWindowData struct {
	windowData
	sourceGoals []entity.IncomeSourceGoal
}

// fetchAll ejecuta el DAG de lotes de consultas:
//
//	lote 1: cierres ×3 ventanas, negocios, horario, metas ×3 meses, fuentes,
//	        productos, proveedores ×2 tipos — sin interdependencias.
//	lote 2: facturas ×3 ventanas (ids de proveedor del lote 1), metas de ticket
//	        (ids de meta), resumen mensual del año anterior si no hubo cierres.
//	lote 3: desgloses y consumos (ids de cierre de las tres ventanas, una sola
//	        consulta por tabla).
//
// Cada lote corre bajo su propio timeout; un timeout es fallo duro del cálculo.
func (e *Engine) fetchAll(ctx context.Context, q Query, periods [3]dommetrics.Period) (selection, [3]fetchWindowData, error) {
	var sel selection
	var windows [3]fetchWindowData
	for i := range windows {
		windows[i].period = periods[i]
	}

	// ── Lote 1 ────────────────────────────────────────────────────────────────
	var scheduleRules []entity.ScheduleRule
	var suppliersGoods, suppliersCurrent []entity.Supplier
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
			suppliersGoods, err = e.repos.Suppliers.ListActiveByType(bctx, q.BusinessIDs, entity.ExpenseTypeGoodsPurchases)
			return err
		})
		g.Go(func() (err error) {
			suppliersCurrent, err = e.repos.Suppliers.ListActiveByType(bctx, q.BusinessIDs, entity.ExpenseTypeCurrentExpenses)
			return err
		})
		for i := range windows {
			w := &windows[i]
			g.Go(func() (err error) {
				w.entries, err = e.repos.Entries.ListByRange(bctx, q.BusinessIDs, w.period.From, w.period.To)
				return err
			})
			g.Go(func() (err error) {
				ym := w.period.YearMonth()
				w.goals, err = e.repos.Goals.ListForMonth(bctx, q.BusinessIDs, ym.Year, int(ym.Month))
				return err
			})
		}
	})
	if err != nil {
		return selection{}, windows, fmt.Errorf("lote 1: %w", err)
	}

	sel.weekday = dommetrics.AverageWeekdayFactors(scheduleRules)
	sel.managerSalarySum = decimal.Zero
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

	// ── Lote 2 ────────────────────────────────────────────────────────────────
	err = e.runBatch(ctx, func(g *errgroup.Group, bctx context.Context) {
		for i := range windows {
			w := &windows[i]
			g.Go(func() error {
				invoices, err := e.repos.Invoices.ListByRange(bctx, sel.supplierIDs, q.BusinessIDs, w.period.From, w.period.To)
				if err != nil {
					return err
				}
				w.foodCost, w.foodInvoices, w.currentCost, w.currentInvoices =
					classifyInvoices(invoices, sel.supplierType)
				return nil
			})
		}
		g.Go(func() (err error) {
			windows[0].sourceGoals, err = e.repos.Income.ListSourceGoals(bctx, goalIDs(windows[0].goals))
			return err
		})
		// Fallback de resumen mensual: solo la ventana del año anterior y solo
		// si no tiene cierres diarios (los cierres tienen precedencia).
		if len(windows[2].entries) == 0 {
			w := &windows[2]
			g.Go(func() error {
				ym := w.period.YearMonth()
				summaries, err := e.repos.Summaries.ListForMonth(bctx, q.BusinessIDs, ym.Year, int(ym.Month))
				if err != nil {
					return err
				}
				w.fallbackIncome = decimal.Zero
				for _, s := range summaries {
					w.fallbackIncome = w.fallbackIncome.Add(s.TotalIncome)
				}
				w.usedFallback = len(summaries) > 0
				return nil
			})
		}
	})
	if err != nil {
		return selection{}, windows, fmt.Errorf("lote 2: %w", err)
	}

	// ── Lote 3 ────────────────────────────────────────────────────────────────
	// Una sola consulta por tabla para las tres ventanas: los ids de cierre se
	// juntan y las filas se reparten después por ventana. Un rango que cruza
	// meses hace que la ventana del mes anterior se solape con la actual; un
	// mismo cierre puede pertenecer a varias ventanas y sus filas se copian a
	// cada una.
	entryWindows := make(map[string][]int)
	var allEntryIDs []string
	for i := range windows {
		for _, en := range windows[i].entries {
			if _, seen := entryWindows[en.ID]; !seen {
				allEntryIDs = append(allEntryIDs, en.ID)
			}
			entryWindows[en.ID] = append(entryWindows[en.ID], i)
		}
	}
	var breakdowns []entity.IncomeBreakdown
	var usage []entity.ProductUsage
	err = e.runBatch(ctx, func(g *errgroup.Group, bctx context.Context) {
		g.Go(func() (err error) {
			breakdowns, err = e.repos.Income.ListBreakdowns(bctx, allEntryIDs)
			return err
		})
		g.Go(func() (err error) {
			usage, err = e.repos.Products.ListUsage(bctx, allEntryIDs)
			return err
		})
	})
	if err != nil {
		return selection{}, windows, fmt.Errorf("lote 3: %w", err)
	}
	for _, b := range breakdowns {
		for _, i := range entryWindows[b.EntryID] {
			windows[i].breakdowns = append(windows[i].breakdowns, b)
		}
	}
	for _, u := range usage {
		for _, i := range entryWindows[u.EntryID] {
			windows[i].usage = append(windows[i].usage, u)
		}
	}

	return sel, windows, nil
}

// runBatch ejecuta un lote de fetches concurrentes bajo el timeout configurado.
func (e *Engine) runBatch(ctx context.Context, launch func(g *errgroup.Group, bctx context.Context)) error {
	bctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(bctx)
	launch(g, gctx)
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", domain.ErrFetchTimeout, err)
		}
		return err
	}
	return nil
}

// classifyInvoices reparte las facturas en los buckets de costo según el tipo
// de gasto de su proveedor. Facturas de proveedores desconocidos se ignoran.
func classifyInvoices(invoices []entity.Invoice, supplierType map[string]string) (food decimal.Decimal, foodCount int, current decimal.Decimal, currentCount int) {
	food, current = decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		switch supplierType[inv.SupplierID] {
		case entity.ExpenseTypeGoodsPurchases:
			food = food.Add(inv.Subtotal)
			foodCount++
		case entity.ExpenseTypeCurrentExpenses:
			current = current.Add(inv.Subtotal)
			currentCount++
		}
	}
	return food, foodCount, current, currentCount
}

func goalIDs(goals []entity.Goal) []string {
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return ids
}

func sourceTargetsByID(sourceGoals []entity.IncomeSourceGoal) map[string]decimal.Decimal {
	targets := make(map[string]decimal.Decimal, len(sourceGoals))
	for _, sg := range sourceGoals {
		targets[sg.SourceID] = targets[sg.SourceID].Add(sg.AvgTicketTarget)
	}
	return targets
}
