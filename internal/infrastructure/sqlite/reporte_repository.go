package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de solo lectura para reportes. Opera siempre sobre
// el pool: no participa en transacciones de escritura.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

const fechaDia = "2006-01-02"

// VentasPorFecha lista las ventas de un rango de fechas (inclusive) con los
// datos del cliente, las más recientes primero.
func (r *ReporteRepo) VentasPorFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.VentaResumen, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT v.id, v.cliente_id, v.fecha_venta, v.subtotal, v.impuesto, v.descuento,
			v.total, v.metodo_pago, v.estado, v.notas, c.nombre, c.apellido
		FROM ventas v
		LEFT JOIN clientes c ON c.id = v.cliente_id
		WHERE DATE(v.fecha_venta) BETWEEN ? AND ?
		ORDER BY v.fecha_venta DESC, v.id DESC`,
		desde.Format(fechaDia), hasta.Format(fechaDia))
	if err != nil {
		return nil, mapErr("ventas por fecha", err)
	}
	defer rows.Close()
	list := []*entity.VentaResumen{}
	for rows.Next() {
		var vr entity.VentaResumen
		var clienteID sql.NullInt64
		var notas, nombre, apellido sql.NullString
		if err := rows.Scan(&vr.ID, &clienteID, &vr.FechaVenta, &vr.Subtotal,
			&vr.Impuesto, &vr.Descuento, &vr.Total, &vr.MetodoPago, &vr.Estado,
			&notas, &nombre, &apellido); err != nil {
			return nil, fmt.Errorf("ventas por fecha: scan: %w", err)
		}
		vr.ClienteID = int64Ptr(clienteID)
		vr.Notas = strOrEmpty(notas)
		vr.ClienteNombre = strOrEmpty(nombre)
		vr.ClienteApellido = strOrEmpty(apellido)
		list = append(list, &vr)
	}
	return list, rows.Err()
}

// CorteDia arma el corte de caja de un día: totales, desglose por método de
// pago y ranking de productos vendidos. Solo cuenta ventas completadas.
func (r *ReporteRepo) CorteDia(ctx context.Context, fecha time.Time) (*entity.CorteDia, error) {
	dia := fecha.Format(fechaDia)
	corte := &entity.CorteDia{Fecha: fecha}

	err := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(subtotal), 0),
			COALESCE(SUM(impuesto), 0),
			COALESCE(SUM(descuento), 0),
			COALESCE(AVG(total), 0)
		FROM ventas
		WHERE DATE(fecha_venta) = ? AND estado = ?`, dia, entity.VentaCompletada).Scan(
		&corte.Totales.TotalVentas, &corte.Totales.TotalIngresos,
		&corte.Totales.TotalSubtotal, &corte.Totales.TotalImpuesto,
		&corte.Totales.TotalDescuento, &corte.Totales.TicketPromedio)
	if err != nil {
		return nil, mapErr("corte día: totales", err)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT metodo_pago, COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		FROM ventas
		WHERE DATE(fecha_venta) = ? AND estado = ?
		GROUP BY metodo_pago
		ORDER BY SUM(total) DESC`, dia, entity.VentaCompletada)
	if err != nil {
		return nil, mapErr("corte día: métodos", err)
	}
	defer rows.Close()
	for rows.Next() {
		var vm entity.VentasPorMetodo
		if err := rows.Scan(&vm.MetodoPago, &vm.Ventas, &vm.Total, &vm.Promedio); err != nil {
			return nil, fmt.Errorf("corte día: métodos: scan: %w", err)
		}
		corte.ResumenPagos = append(corte.ResumenPagos, vm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("corte día: métodos: %w", err)
	}

	prows, err := r.q.QueryContext(ctx, `
		SELECT p.nombre, SUM(d.cantidad), SUM(d.subtotal)
		FROM detalle_ventas d
		JOIN ventas v ON v.id = d.venta_id
		JOIN productos p ON p.id = d.producto_id
		WHERE DATE(v.fecha_venta) = ? AND v.estado = ?
		GROUP BY d.producto_id, p.nombre
		ORDER BY SUM(d.cantidad) DESC, SUM(d.subtotal) DESC
		LIMIT 10`, dia, entity.VentaCompletada)
	if err != nil {
		return nil, mapErr("corte día: productos", err)
	}
	defer prows.Close()
	for prows.Next() {
		var pv entity.ProductoVendido
		if err := prows.Scan(&pv.Nombre, &pv.CantidadVendida, &pv.TotalVendido); err != nil {
			return nil, fmt.Errorf("corte día: productos: scan: %w", err)
		}
		corte.ProductosMasVendidos = append(corte.ProductosMasVendidos, pv)
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("corte día: productos: %w", err)
	}

	return corte, nil
}
