package entity

import "github.com/shopspring/decimal"

// Tipos de fuente de ingreso.
const (
	IncomeSourceTypePrivate  = "private"
	IncomeSourceTypeBusiness = "business"
)

// IncomeSource es una fuente de ingreso de un negocio (clientes privados,
// eventos de empresa, delivery, etc.).
type IncomeSource struct {
	ID           string
	BusinessID   string
	Name         string
	Type         string // private | business
	DisplayOrder int
}

// IncomeBreakdown desglosa el total de caja de un cierre diario por fuente de
// ingreso. Varias filas por cierre.
type IncomeBreakdown struct {
	ID          string
	EntryID     string
	SourceID    string
	Amount      decimal.Decimal
	OrdersCount int
}

// IncomeSourceGoal es la meta de ticket promedio de una fuente de ingreso
// dentro de una meta mensual. A lo sumo una por (meta, fuente).
type IncomeSourceGoal struct {
	GoalID          string
	SourceID        string
	AvgTicketTarget decimal.Decimal
}
