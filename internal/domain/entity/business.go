package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business representa un negocio (restaurante o punto de venta) de un tenant.
// El motor de métricas lo trata como entrada inmutable: nunca lo modifica.
type Business struct {
	ID       string
	TenantID string
	Name     string
	// VATRate tasa de IVA como fracción decimal (ej. 0.18 = 18%).
	// Puede ser sobreescrita por la meta mensual del negocio.
	VATRate decimal.Decimal
	// Markup multiplicador de sobrecosto patronal aplicado al costo laboral
	// (salarios nominales → costo laboral cargado). Cero = sin definir; el
	// resolutor de tasas aplica 1 como último fallback.
	Markup decimal.Decimal
	// ManagerSalary salario mensual del gerente en ILS. Se amortiza sobre los
	// días de trabajo esperados del mes, no sobre días calendario.
	ManagerSalary decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
