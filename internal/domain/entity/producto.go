package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un artículo del catálogo con doble precio:
// el precio base en USD es la fuente de verdad y el precio en VES se
// deriva con la tasa de cambio vigente (ver tasa_camb).
// StockActual solo cambia a través del libro de movimientos.
type Producto struct {
	ID                int64
	CodigoBarras      string // vacío si no tiene código de barras/QR
	Nombre            string
	Descripcion       string
	CategoriaID       *int64
	PrecioVenta       decimal.Decimal     // VES, derivado
	PrecioCompra      decimal.NullDecimal // VES, derivado
	PrecioVentaUSD    decimal.NullDecimal // base en USD
	PrecioCompraUSD   decimal.NullDecimal // base en USD
	StockActual       decimal.Decimal // puede ser negativo (sobreventa permitida)
	StockMinimo       decimal.Decimal
	TasaCamb          decimal.Decimal // tasa usada en la última derivación de precios
	Activo            bool
	VendeAlMayor      bool
	UnidadesPorBulto  *int64 // solo aplica si VendeAlMayor
	FechaCreacion     time.Time
	FechaModificacion time.Time
}
