package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación de PagoRepository sobre SQLite.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

// Create inserta un pago de documento y asigna su ID.
func (r *PagoRepo) Create(ctx context.Context, p *entity.PagoDocumento) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO pagos_documentos (venta_id, numero_documento, tipo_pago, monto_pagado,
			moneda_pago, tasa_cambio, monto_equivalente_usd, detalles_pago, fecha_pago)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.VentaID, nullStr(p.NumeroDocumento), p.TipoPago, p.MontoPagado,
		p.MonedaPago, p.TasaCambio, p.MontoEquivalenteUSD, nullStr(p.DetallesPago),
		p.FechaPago)
	if err != nil {
		return mapErr("insert pago", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert pago: last insert id: %w", err)
	}
	p.ID = id
	return nil
}

func scanPago(row rowScanner) (*entity.PagoDocumento, error) {
	var p entity.PagoDocumento
	var numero, detalles sql.NullString
	if err := row.Scan(&p.ID, &p.VentaID, &numero, &p.TipoPago, &p.MontoPagado,
		&p.MonedaPago, &p.TasaCambio, &p.MontoEquivalenteUSD, &detalles,
		&p.FechaPago); err != nil {
		return nil, err
	}
	p.NumeroDocumento = strOrEmpty(numero)
	p.DetallesPago = strOrEmpty(detalles)
	return &p, nil
}

// ListByVenta lista los pagos de una venta en orden cronológico.
func (r *PagoRepo) ListByVenta(ctx context.Context, ventaID int64) ([]*entity.PagoDocumento, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, venta_id, numero_documento, tipo_pago, monto_pagado,
			moneda_pago, tasa_cambio, monto_equivalente_usd, detalles_pago, fecha_pago
		FROM pagos_documentos
		WHERE venta_id = ?
		ORDER BY fecha_pago, id`, ventaID)
	if err != nil {
		return nil, mapErr("list pagos", err)
	}
	defer rows.Close()
	list := []*entity.PagoDocumento{}
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			return nil, fmt.Errorf("list pagos: scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListByFecha lista los pagos de un rango de fechas (inclusive) con los
// datos de su venta.
func (r *PagoRepo) ListByFecha(ctx context.Context, desde, hasta time.Time) ([]*entity.PagoResumen, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT pd.id, pd.venta_id, pd.numero_documento, pd.tipo_pago, pd.monto_pagado,
			pd.moneda_pago, pd.tasa_cambio, pd.monto_equivalente_usd, pd.detalles_pago,
			pd.fecha_pago, v.fecha_venta, v.total
		FROM pagos_documentos pd
		JOIN ventas v ON v.id = pd.venta_id
		WHERE DATE(pd.fecha_pago) BETWEEN ? AND ?
		ORDER BY pd.fecha_pago, pd.id`,
		desde.Format("2006-01-02"), hasta.Format("2006-01-02"))
	if err != nil {
		return nil, mapErr("list pagos por fecha", err)
	}
	defer rows.Close()
	list := []*entity.PagoResumen{}
	for rows.Next() {
		var pr entity.PagoResumen
		var numero, detalles sql.NullString
		if err := rows.Scan(&pr.ID, &pr.VentaID, &numero, &pr.TipoPago,
			&pr.MontoPagado, &pr.MonedaPago, &pr.TasaCambio, &pr.MontoEquivalenteUSD,
			&detalles, &pr.FechaPago, &pr.FechaVenta, &pr.TotalVenta); err != nil {
			return nil, fmt.Errorf("list pagos por fecha: scan: %w", err)
		}
		pr.NumeroDocumento = strOrEmpty(numero)
		pr.DetallesPago = strOrEmpty(detalles)
		list = append(list, &pr)
	}
	return list, rows.Err()
}
