package repository

import (
	"context"

	"github.com/tu-usuario/resto-metrics/internal/domain/entity"
)

// ManagedProductRepository lectura de productos controlados y su consumo diario.
type ManagedProductRepository interface {
	// ListProducts devuelve los productos controlados de los negocios dados.
	ListProducts(ctx context.Context, businessIDs []string) ([]entity.ManagedProduct, error)

	// ListUsage devuelve el consumo registrado en los cierres dados (por lote
	// de entry ids).
	ListUsage(ctx context.Context, entryIDs []string) ([]entity.ProductUsage, error)
}
