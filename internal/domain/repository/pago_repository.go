package repository

import (
	"context"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// PagoRepository puerto de persistencia de pagos de documentos.
type PagoRepository interface {
	Create(ctx context.Context, p *entity.PagoDocumento) error
	ListByVenta(ctx context.Context, ventaID int64) ([]*entity.PagoDocumento, error)
	ListByFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.PagoResumen, error)
}
