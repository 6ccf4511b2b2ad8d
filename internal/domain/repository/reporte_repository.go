package repository

import (
	"context"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

// ReporteRepository consultas de solo lectura para reportes y para el
// exportador PDF externo. No participa en transacciones de escritura.
type ReporteRepository interface {
	VentasPorFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.VentaResumen, error)
	CorteDia(ctx context.Context, fecha time.Time) (*entity.CorteDia, error)
}
