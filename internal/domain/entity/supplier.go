package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de gasto de un proveedor. Clasifican sus facturas en el bucket de
// costo de insumos (food cost) o de gastos corrientes.
const (
	ExpenseTypeGoodsPurchases  = "goods_purchases"
	ExpenseTypeCurrentExpenses = "current_expenses"
)

// Supplier es un proveedor de un negocio.
type Supplier struct {
	ID          string
	BusinessID  string
	Name        string
	ExpenseType string // goods_purchases | current_expenses
	Active      bool
}

// Invoice es una factura de proveedor. Se atribuye al food cost o a los gastos
// corrientes del negocio según el ExpenseType de su proveedor.
type Invoice struct {
	ID          string
	SupplierID  string
	BusinessID  string
	InvoiceDate time.Time
	Subtotal    decimal.Decimal
}
