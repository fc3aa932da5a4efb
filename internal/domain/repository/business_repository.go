package repository

import (
	"context"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// BusinessRepository lectura de negocios. El filtro por tenant garantiza que un
// dashboard solo vea negocios propios aunque el cliente envíe ids ajenos.
type BusinessRepository interface {
	// ListByIDs devuelve los negocios del tenant cuyos ids estén en ids.
	// Ids inexistentes o de otro tenant simplemente no aparecen en el resultado.
	ListByIDs(ctx context.Context, tenantID string, ids []string) ([]entity.Business, error)
}
