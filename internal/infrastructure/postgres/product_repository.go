package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.ManagedProductRepository = (*ManagedProductRepo)(nil)

// ManagedProductRepo lectura de productos controlados y su consumo sobre PostgreSQL.
type ManagedProductRepo struct {
	pool *pgxpool.Pool
}

// NewManagedProductRepository construye el adaptador de productos controlados.
func NewManagedProductRepository(pool *pgxpool.Pool) *ManagedProductRepo {
	return &ManagedProductRepo{pool: pool}
}

// ListProducts devuelve los productos controlados de los negocios dados.
func (r *ManagedProductRepo) ListProducts(ctx context.Context, businessIDs []string) ([]entity.ManagedProduct, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, business_id, name, unit, unit_cost, target_pct
	FROM managed_products
	WHERE business_id = ANY($1)
	ORDER BY name`

	rows, err := r.pool.Query(ctx, query, businessIDs)
	if err != nil {
		return nil, fmt.Errorf("product.ListProducts: %w", err)
	}
	defer rows.Close()

	var out []entity.ManagedProduct
	for rows.Next() {
		var p entity.ManagedProduct
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Unit, &p.UnitCost, &p.TargetPct); err != nil {
			return nil, fmt.Errorf("product.ListProducts scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListUsage devuelve el consumo registrado en los cierres dados (por lote de
// entry ids, las tres ventanas en una sola consulta).
func (r *ManagedProductRepo) ListUsage(ctx context.Context, entryIDs []string) ([]entity.ProductUsage, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, entry_id, product_id, quantity, unit_cost_at_use
	FROM product_usages
	WHERE entry_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("product.ListUsage: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductUsage
	for rows.Next() {
		var u entity.ProductUsage
		if err := rows.Scan(&u.ID, &u.EntryID, &u.ProductID, &u.Quantity, &u.UnitCostAtUse); err != nil {
			return nil, fmt.Errorf("product.ListUsage scan: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
