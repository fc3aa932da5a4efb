package dto

import "github.com/shopspring/decimal"

// CostKPIDTO métrica de costo contra su meta, con deltas históricos.
//
// Convención de signo (se preserva hasta la presentación): DiffPct/DiffAmount
// positivos = por encima de la meta (rojo); negativos = por debajo (verde).
// Los cambios históricos son puntos porcentuales contra la misma métrica de la
// ventana histórica, y valen cero cuando esa ventana no tuvo datos.
type CostKPIDTO struct {
	Cost               decimal.Decimal `json:"cost"`
	ActualPct          decimal.Decimal `json:"actual_pct"`
	TargetPct          decimal.Decimal `json:"target_pct"`
	DiffPct            decimal.Decimal `json:"diff_pct"`
	DiffAmount         decimal.Decimal `json:"diff_amount"`
	PrevMonthChangePct decimal.Decimal `json:"prev_month_change_pct"`
	PrevYearChangePct  decimal.Decimal `json:"prev_year_change_pct"`
}

// IncomeSourceDTO resumen de una fuente de ingreso en el período.
type IncomeSourceDTO struct {
	SourceID    string          `json:"source_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // private | business
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrdersCount int             `json:"orders_count"`
	AvgAmount   decimal.Decimal `json:"avg_amount"`
	// AvgTicketTarget meta de ticket promedio de la meta mensual; cero sin meta.
	AvgTicketTarget  decimal.Decimal `json:"avg_ticket_target"`
	AvgTicketDiff    decimal.Decimal `json:"avg_ticket_diff"`
	TargetDiffAmount decimal.Decimal `json:"target_diff_amount"`
	// Cambios del ticket promedio contra las ventanas históricas (ILS). Cero si
	// la ventana histórica no tuvo pedidos.
	PrevMonthChange decimal.Decimal `json:"prev_month_change"`
	PrevYearChange  decimal.Decimal `json:"prev_year_change"`
}

// ManagedProductDTO resumen de costo de un producto controlado en el período.
type ManagedProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	Cost      decimal.Decimal `json:"cost"`
	// Pct costo como porcentaje del ingreso sin IVA del período.
	Pct       decimal.Decimal `json:"pct"`
	TargetPct decimal.Decimal `json:"target_pct"`
	DiffPct   decimal.Decimal `json:"diff_pct"`
	// Cambios de Pct contra las ventanas históricas (puntos porcentuales).
	// Cero si la ventana histórica no tuvo ingreso.
	PrevMonthChangePct decimal.Decimal `json:"prev_month_change_pct"`
	PrevYearChangePct  decimal.Decimal `json:"prev_year_change_pct"`
}

// DashboardMetricsDTO es el resultado completo de un cálculo del motor para
// una selección de negocios y un rango de fechas. Todos los campos numéricos
// degradan a cero ante denominadores nulos o datos faltantes; nunca NaN/Inf.
type DashboardMetricsDTO struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	IncomeBeforeVAT decimal.Decimal `json:"income_before_vat"`

	ActualWorkDays   decimal.Decimal `json:"actual_work_days"`
	ExpectedWorkDays decimal.Decimal `json:"expected_work_days"`

	Labor           CostKPIDTO `json:"labor"`
	Food            CostKPIDTO `json:"food"`
	CurrentExpenses CostKPIDTO `json:"current_expenses"`

	MonthlyPace      decimal.Decimal `json:"monthly_pace"`
	RevenueTarget    decimal.Decimal `json:"revenue_target"`
	TargetDiffPct    decimal.Decimal `json:"target_diff_pct"`
	TargetDiffAmount decimal.Decimal `json:"target_diff_amount"`

	// IncomePrevMonthChangePct compara el ritmo mensual proyectado contra el
	// total crudo del mes anterior (neutral a la longitud del período parcial).
	// IncomePrevYearChangePct compara totales crudos de período contra período.
	IncomePrevMonthChangePct decimal.Decimal `json:"income_prev_month_change_pct"`
	IncomePrevYearChangePct  decimal.Decimal `json:"income_prev_year_change_pct"`

	Sources  []IncomeSourceDTO   `json:"sources"`
	Products []ManagedProductDTO `json:"products"`
}

// MonthlyChartPointDTO punto del gráfico de tendencia de los últimos meses.
// Cada punto re-aplica la cadena completa de cálculos sobre la porción de ese
// mes, incluidas las fuentes de ingreso y los productos controlados (sus
// deltas históricos van en cero: el eje temporal ya es la comparación).
type MonthlyChartPointDTO struct {
	MonthKey           string              `json:"month_key"` // "YYYY-MM"
	TotalIncome        decimal.Decimal     `json:"total_income"`
	IncomeBeforeVAT    decimal.Decimal     `json:"income_before_vat"`
	LaborPct           decimal.Decimal     `json:"labor_pct"`
	FoodPct            decimal.Decimal     `json:"food_pct"`
	CurrentExpensesPct decimal.Decimal     `json:"current_expenses_pct"`
	MonthlyPace        decimal.Decimal     `json:"monthly_pace"`
	RevenueTarget      decimal.Decimal     `json:"revenue_target"`
	Sources            []IncomeSourceDTO   `json:"sources"`
	Products           []ManagedProductDTO `json:"products"`
}
