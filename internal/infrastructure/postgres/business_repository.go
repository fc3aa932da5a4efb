package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
	"github.com/tu-usuario/resto-metrics/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo lectura de negocios sobre PostgreSQL.
type BusinessRepo struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository construye el adaptador de negocios.
func NewBusinessRepository(pool *pgxpool.Pool) *BusinessRepo {
	return &BusinessRepo{pool: pool}
}

// ListByIDs devuelve los negocios del tenant cuyos ids estén en ids. El filtro
// por tenant_id va en la consulta: ids de otro tenant no producen filas.
func (r *BusinessRepo) ListByIDs(ctx context.Context, tenantID string, ids []string) ([]entity.Business, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
	SELECT id, tenant_id, name, vat_rate, markup, manager_salary, created_at, updated_at
	FROM businesses
	WHERE tenant_id = $1 AND id = ANY($2)
	ORDER BY name`

	rows, err := r.pool.Query(ctx, query, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("business.ListByIDs: %w", err)
	}
	defer rows.Close()

	var out []entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.Name,
			&b.VATRate, &b.Markup, &b.ManagerSalary,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("business.ListByIDs scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
