package sales_test

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaicedo/puntoventa/internal/application/catalog"
	"github.com/acaicedo/puntoventa/internal/application/currency"
	"github.com/acaicedo/puntoventa/internal/application/sales"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/infrastructure/sqlite"
)

type entorno struct {
	store     *sqlite.Store
	ventas    *sales.UseCase
	espera    *sales.EsperaUseCase
	productos *catalog.ProductoUseCase
	moneda    *currency.UseCase
}

func armarEntorno(t *testing.T) *entorno {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), 5000)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db := store.DB()
	tx := sqlite.NewTxRunner(store)
	moneda := currency.NewUseCase(sqlite.NewMonedaRepository(db), tx)
	return &entorno{
		store:     store,
		ventas:    sales.NewUseCase(tx, sqlite.NewVentaRepository(db), sqlite.NewPagoRepository(db), moneda),
		espera:    sales.NewEsperaUseCase(sqlite.NewVentaEsperaRepository(db)),
		productos: catalog.NewProductoUseCase(tx, sqlite.NewProductoRepository(db)),
		moneda:    moneda,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (e *entorno) crearProducto(t *testing.T, nombre string, precio, stock decimal.Decimal) *entity.Producto {
	t.Helper()
	p := &entity.Producto{Nombre: nombre, PrecioVenta: precio}
	require.NoError(t, e.productos.Crear(context.Background(), p, stock))
	return p
}

func TestCrearVenta_CarritoVacio(t *testing.T) {
	e := armarEntorno(t)

	_, err := e.ventas.CrearVenta(context.Background(), sales.VentaEntrada{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCrearVenta_LineaInvalida(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	_, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{{ProductoID: 1, Cantidad: decimal.Zero, PrecioUnitario: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{{ProductoID: 1, Cantidad: dec("1"), PrecioUnitario: dec("-10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearVenta_DescuentaStockYAnota(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Harina PAN", dec("400.00"), dec("10"))

	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("2"), PrecioUnitario: dec("400.00")},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, venta.ID)
	assert.True(t, venta.Subtotal.Equal(dec("800.00")))
	assert.True(t, venta.Total.Equal(dec("800.00")))
	assert.Equal(t, entity.VentaCompletada, venta.Estado)

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, leido.StockActual.Equal(dec("8")))

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2, "stock inicial + salida de la venta")
	salida := movs[0]
	assert.Equal(t, entity.MovimientoSalida, salida.Tipo)
	assert.True(t, salida.Cantidad.Equal(dec("-2")), "el delta lleva signo")
	assert.True(t, salida.CantidadAnterior.Equal(dec("10")))
	assert.True(t, salida.CantidadNueva.Equal(dec("8")))
	assert.Contains(t, salida.Motivo, "Venta #")

	_, detalles, err := e.ventas.Get(ctx, venta.ID)
	require.NoError(t, err)
	require.Len(t, detalles, 1)
	assert.Equal(t, "Harina PAN", detalles[0].NombreProducto)
	assert.True(t, detalles[0].Subtotal.Equal(dec("800.00")))
}

func TestCrearVenta_ImpuestoYDescuento(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Café", dec("100.00"), dec("5"))

	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("100.00")},
		},
		Impuesto:  dec("16.00"),
		Descuento: dec("10.00"),
	})
	require.NoError(t, err)
	assert.True(t, venta.Total.Equal(dec("106.00")), "100 + 16 - 10")
}

func TestCrearVenta_ProductoInexistenteRevierteTodo(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Arroz", dec("50.00"), dec("10"))

	_, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("50.00")},
			{ProductoID: 9999, Cantidad: dec("1"), PrecioUnitario: dec("50.00")},
		},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Nada de la venta fallida debe persistir
	var ventas, detalles int
	require.NoError(t, e.store.DB().QueryRow(`SELECT COUNT(*) FROM ventas`).Scan(&ventas))
	require.NoError(t, e.store.DB().QueryRow(`SELECT COUNT(*) FROM detalle_ventas`).Scan(&detalles))
	assert.Zero(t, ventas)
	assert.Zero(t, detalles)

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, leido.StockActual.Equal(dec("10")), "el stock de la primera línea debe revertirse")
}

func TestCrearVenta_PermiteSobreventa(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Azúcar", dec("30.00"), dec("5"))

	for range 2 {
		_, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
			Lineas: []sales.LineaCarrito{
				{ProductoID: p.ID, Cantidad: dec("3"), PrecioUnitario: dec("30.00")},
			},
		})
		require.NoError(t, err, "la caja no se detiene por stock insuficiente")
	}

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, leido.StockActual.Equal(dec("-1")), "5 - 3 - 3 = -1, visible en el libro")

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	// La cadena anterior/nueva se mantiene consistente entre ventas
	assert.True(t, movs[0].CantidadAnterior.Equal(dec("2")))
	assert.True(t, movs[0].CantidadNueva.Equal(dec("-1")))
	assert.True(t, movs[1].CantidadAnterior.Equal(dec("5")))
	assert.True(t, movs[1].CantidadNueva.Equal(dec("2")))
}

func TestCrearVenta_PagosMultimoneda(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Queso", dec("365.00"), dec("10"))

	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("2"), PrecioUnitario: dec("365.00")},
		},
		Pagos: []sales.PagoEntrada{
			{TipoPago: "efectivo", Monto: dec("10.00"), Moneda: entity.MonedaUSD},
			{TipoPago: "pago_movil", Monto: dec("365.00"), Moneda: entity.MonedaVES},
		},
	})
	require.NoError(t, err)

	pagos, err := e.ventas.PagosPorVenta(ctx, venta.ID)
	require.NoError(t, err)
	require.Len(t, pagos, 2)

	assert.Equal(t, entity.MonedaUSD, pagos[0].MonedaPago)
	assert.True(t, pagos[0].MontoEquivalenteUSD.Equal(dec("10.00")), "USD queda tal cual")
	assert.True(t, pagos[0].TasaCambio.Equal(dec("36.50")))

	assert.Equal(t, entity.MonedaVES, pagos[1].MonedaPago)
	assert.True(t, pagos[1].MontoEquivalenteUSD.Equal(dec("10.00")), "365.00 / 36.50 = 10.00")
}

func TestCrearVenta_PagoConTasaHistorica(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	_, err := e.moneda.SetTasa(ctx, dec("40.00"))
	require.NoError(t, err)

	p := e.crearProducto(t, "Mantequilla", dec("160.00"), dec("10"))

	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("160.00")},
		},
		Pagos: []sales.PagoEntrada{
			{TipoPago: "transferencia", Monto: dec("73.00"), Moneda: entity.MonedaVES, TasaCambio: dec("36.50")},
			{TipoPago: "efectivo", Monto: dec("80.00"), Moneda: entity.MonedaVES},
		},
	})
	require.NoError(t, err)

	pagos, err := e.ventas.PagosPorVenta(ctx, venta.ID)
	require.NoError(t, err)
	require.Len(t, pagos, 2)

	assert.True(t, pagos[0].TasaCambio.Equal(dec("36.50")), "el pago conserva su tasa pactada")
	assert.True(t, pagos[0].MontoEquivalenteUSD.Equal(dec("2.00")), "73.00 / 36.50 = 2.00")
	assert.True(t, pagos[1].TasaCambio.Equal(dec("40.00")), "sin tasa declarada usa la vigente")
	assert.True(t, pagos[1].MontoEquivalenteUSD.Equal(dec("2.00")), "80.00 / 40.00 = 2.00")

	_, err = e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("160.00")},
		},
		Pagos: []sales.PagoEntrada{
			{TipoPago: "efectivo", Monto: dec("1"), Moneda: entity.MonedaVES, TasaCambio: dec("-1")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tasa negativa")
}

func TestCrearVenta_CajasConcurrentes(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Pan campesino", dec("30.00"), dec("5"))

	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
				Lineas: []sales.LineaCarrito{
					{ProductoID: p.ID, Cantidad: dec("3"), PrecioUnitario: dec("30.00")},
				},
			})
			errs <- err
		}()
	}
	for range 2 {
		require.NoError(t, <-errs, "el lock inmediato serializa las cajas, no las rechaza")
	}

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, leido.StockActual.Equal(dec("-1")), "5 - 3 - 3 = -1")

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)

	var salidas []*entity.MovimientoInventario
	for _, m := range movs {
		if m.Tipo == entity.MovimientoSalida {
			salidas = append(salidas, m)
		}
	}
	require.Len(t, salidas, 2)
	sort.Slice(salidas, func(i, j int) bool {
		return salidas[i].CantidadAnterior.GreaterThan(salidas[j].CantidadAnterior)
	})
	// Gane quien gane el lock, la cadena anterior/nueva encadena sin huecos
	assert.True(t, salidas[0].CantidadAnterior.Equal(dec("5")))
	assert.True(t, salidas[0].CantidadNueva.Equal(dec("2")))
	assert.True(t, salidas[1].CantidadAnterior.Equal(dec("2")))
	assert.True(t, salidas[1].CantidadNueva.Equal(dec("-1")))
}

func TestRegistrarPago_Posterior(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Leche", dec("73.00"), dec("10"))
	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("73.00")},
		},
	})
	require.NoError(t, err)

	pago, err := e.ventas.RegistrarPago(ctx, venta.ID, sales.PagoEntrada{
		TipoPago: "transferencia",
		Monto:    dec("73.00"),
		Moneda:   entity.MonedaVES,
	})
	require.NoError(t, err)
	assert.True(t, pago.MontoEquivalenteUSD.Equal(dec("2.00")), "73.00 / 36.50 = 2.00")

	_, err = e.ventas.RegistrarPago(ctx, 9999, sales.PagoEntrada{
		TipoPago: "efectivo", Monto: dec("1"), Moneda: entity.MonedaUSD,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.ventas.RegistrarPago(ctx, venta.ID, sales.PagoEntrada{
		TipoPago: "efectivo", Monto: dec("1"), Moneda: "EUR",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarPago_TasaHistorica(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := e.crearProducto(t, "Margarina", dec("73.00"), dec("10"))
	venta, err := e.ventas.CrearVenta(ctx, sales.VentaEntrada{
		Lineas: []sales.LineaCarrito{
			{ProductoID: p.ID, Cantidad: dec("1"), PrecioUnitario: dec("73.00")},
		},
	})
	require.NoError(t, err)

	// La tasa sube después de la venta; el abono viene pactado a la vieja
	_, err = e.moneda.SetTasa(ctx, dec("40.00"))
	require.NoError(t, err)

	pago, err := e.ventas.RegistrarPago(ctx, venta.ID, sales.PagoEntrada{
		TipoPago:   "transferencia",
		Monto:      dec("73.00"),
		Moneda:     entity.MonedaVES,
		TasaCambio: dec("36.50"),
	})
	require.NoError(t, err)
	assert.True(t, pago.TasaCambio.Equal(dec("36.50")))
	assert.True(t, pago.MontoEquivalenteUSD.Equal(dec("2.00")), "73.00 / 36.50 = 2.00")

	_, err = e.ventas.RegistrarPago(ctx, venta.ID, sales.PagoEntrada{
		TipoPago: "efectivo", Monto: dec("1"), Moneda: entity.MonedaVES, TasaCambio: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEspera_GuardarYRetomar(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	lineas := []sales.LineaCarrito{
		{ProductoID: 1, Cantidad: dec("2"), PrecioUnitario: dec("400.00")},
		{ProductoID: 2, Cantidad: dec("1.500"), PrecioUnitario: dec("90.00")},
	}
	ve, err := e.espera.Guardar(ctx, "Cliente de la gorra", nil, lineas, "vuelve en 10 min")
	require.NoError(t, err)
	require.NotZero(t, ve.ID)

	lista, err := e.espera.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "Cliente de la gorra", lista[0].NombreOperacion)

	recuperada, recuperadas, err := e.espera.Retomar(ctx, ve.ID)
	require.NoError(t, err)
	assert.Equal(t, ve.ID, recuperada.ID)
	require.Len(t, recuperadas, 2)
	assert.True(t, recuperadas[0].Cantidad.Equal(dec("2")))
	assert.True(t, recuperadas[1].Cantidad.Equal(dec("1.500")), "las cantidades fraccionarias sobreviven el viaje por JSON")

	lista, err = e.espera.Listar(ctx)
	require.NoError(t, err)
	assert.Empty(t, lista, "retomar borra la operación en espera")

	_, _, err = e.espera.Retomar(ctx, ve.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEspera_Invalida(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	_, err := e.espera.Guardar(ctx, "", nil, []sales.LineaCarrito{{ProductoID: 1, Cantidad: dec("1"), PrecioUnitario: dec("1")}}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.espera.Guardar(ctx, "sin líneas", nil, nil, "")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}
