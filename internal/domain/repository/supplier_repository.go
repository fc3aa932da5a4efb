package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// SupplierRepository lectura de proveedores.
type SupplierRepository interface {
	// ListActiveByType devuelve los proveedores activos de los negocios dados
	// con el tipo de gasto indicado (goods_purchases | current_expenses).
	ListActiveByType(ctx context.Context, businessIDs []string, expenseType string) ([]entity.Supplier, error)
}

// InvoiceRepository lectura de facturas de proveedor.
type InvoiceRepository interface {
	// ListByRange devuelve las facturas de los proveedores dados, de los
	// negocios dados, con fecha en [from, to]. La clasificación food cost /
	// gastos corrientes la hace el motor con el ExpenseType del proveedor.
	ListByRange(ctx context.Context, supplierIDs, businessIDs []string, from, to time.Time) ([]entity.Invoice, error)
}
