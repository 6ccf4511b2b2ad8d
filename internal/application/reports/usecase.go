package reports

import (
	"context"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// UseCase reportes de solo lectura: listados por fecha y corte de caja.
// El corte es también el insumo del exportador PDF externo.
type UseCase struct {
	reportes repository.ReporteRepository
	pagos    repository.PagoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reportes repository.ReporteRepository, pagos repository.PagoRepository) *UseCase {
	return &UseCase{reportes: reportes, pagos: pagos}
}

// VentasPorFecha lista las ventas de un rango de fechas (inclusive). Si
// hasta es cero, se usa desde: reporte de un solo día.
func (uc *UseCase) VentasPorFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.VentaResumen, error) {
	if hasta.IsZero() {
		hasta = desde
	}
	return uc.reportes.VentasPorFecha(ctx, desde, hasta)
}

// CorteDia arma el corte de caja de un día.
func (uc *UseCase) CorteDia(ctx context.Context, fecha time.Time) (*entity.CorteDia, error) {
	return uc.reportes.CorteDia(ctx, fecha)
}

// PagosPorFecha lista los pagos de un rango de fechas con su venta.
func (uc *UseCase) PagosPorFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.PagoResumen, error) {
	if hasta.IsZero() {
		hasta = desde
	}
	return uc.pagos.ListByFecha(ctx, desde, hasta)
}
