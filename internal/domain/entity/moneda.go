package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claves de la tabla configuracion_monedas.
const (
	ClaveTasaUSDVES          = "tasa_usd_ves"
	ClaveMonedaPrincipal     = "moneda_principal"
	ClaveMonedaSecundaria    = "moneda_secundaria"
	ClaveMostrarAmbasMonedas = "mostrar_ambas_monedas"
	ClaveSimboloVES          = "simbolo_ves"
	ClaveSimboloUSD          = "simbolo_usd"
)

// TasaPorDefecto se usa cuando la tasa nunca fue configurada.
var TasaPorDefecto = decimal.RequireFromString("36.50")

// ConfigMoneda es una fila clave/valor de configuración multimoneda.
type ConfigMoneda struct {
	ID                 int64
	Nombre             string
	Valor              string
	Tipo               string // moneda, display, general
	Descripcion        string
	FechaActualizacion time.Time
}

// Moneda activa del sistema con su símbolo de despliegue.
type Moneda struct {
	Codigo  string
	Simbolo string
}
