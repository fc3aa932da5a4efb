package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)
var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// SupplierRepo lectura de proveedores sobre PostgreSQL.
type SupplierRepo struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository construye el adaptador de proveedores.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepo {
	return &SupplierRepo{pool: pool}
}

// ListActiveByType devuelve los proveedores activos de los negocios dados con
// el tipo de gasto indicado.
func (r *SupplierRepo) ListActiveByType(ctx context.Context, businessIDs []string, expenseType string) ([]entity.Supplier, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, business_id, name, expense_type, active
	FROM suppliers
	WHERE business_id = ANY($1) AND expense_type = $2 AND active`

	rows, err := r.pool.Query(ctx, query, businessIDs, expenseType)
	if err != nil {
		return nil, fmt.Errorf("supplier.ListActiveByType: %w", err)
	}
	defer rows.Close()

	var out []entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.Name, &s.ExpenseType, &s.Active); err != nil {
			return nil, fmt.Errorf("supplier.ListActiveByType scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// InvoiceRepo lectura de facturas de proveedor sobre PostgreSQL.
type InvoiceRepo struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository construye el adaptador de facturas.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// ListByRange devuelve las facturas de los proveedores y negocios dados con
// fecha en [from, to].
func (r *InvoiceRepo) ListByRange(ctx context.Context, supplierIDs, businessIDs []string, from, to time.Time) ([]entity.Invoice, error) {
	if len(supplierIDs) == 0 || len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, supplier_id, business_id, invoice_date, subtotal
	FROM supplier_invoices
	WHERE supplier_id = ANY($1) AND business_id = ANY($2)
	  AND invoice_date BETWEEN $3 AND $4
	ORDER BY invoice_date`

	rows, err := r.pool.Query(ctx, query, supplierIDs, businessIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoice.ListByRange: %w", err)
	}
	defer rows.Close()

	var out []entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.SupplierID, &inv.BusinessID, &inv.InvoiceDate, &inv.Subtotal); err != nil {
			return nil, fmt.Errorf("invoice.ListByRange scan: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
