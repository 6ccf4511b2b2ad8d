package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaicedo/puntoventa/internal/application/catalog"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/infrastructure/sqlite"
)

type entorno struct {
	store       *sqlite.Store
	productos   *catalog.ProductoUseCase
	categorias  *catalog.CategoriaUseCase
	clientes    *catalog.ClienteUseCase
	proveedores *catalog.ProveedorUseCase
}

func armarEntorno(t *testing.T) *entorno {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), 5000)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	db := store.DB()
	tx := sqlite.NewTxRunner(store)
	return &entorno{
		store:       store,
		productos:   catalog.NewProductoUseCase(tx, sqlite.NewProductoRepository(db)),
		categorias:  catalog.NewCategoriaUseCase(sqlite.NewCategoriaRepository(db)),
		clientes:    catalog.NewClienteUseCase(sqlite.NewClienteRepository(db)),
		proveedores: catalog.NewProveedorUseCase(sqlite.NewProveedorRepository(db)),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func producto(nombre, codigo string) *entity.Producto {
	return &entity.Producto{
		CodigoBarras: codigo,
		Nombre:       nombre,
		PrecioVenta:  dec("100.00"),
	}
}

func TestCrear_ConStockInicial(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := producto("Harina PAN", "7591001000123")
	require.NoError(t, e.productos.Crear(ctx, p, dec("25")))
	require.NotZero(t, p.ID)
	assert.True(t, p.StockActual.Equal(dec("25")))

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, leido.StockActual.Equal(dec("25")))

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1, "el alta con stock deja exactamente un asiento")
	m := movs[0]
	assert.Equal(t, entity.MovimientoEntrada, m.Tipo)
	assert.Equal(t, "Stock inicial", m.Motivo)
	assert.Equal(t, "Sistema", m.Usuario)
	assert.NotEmpty(t, m.LoteID)
	assert.True(t, m.CantidadAnterior.IsZero())
	assert.True(t, m.CantidadNueva.Equal(dec("25")))
}

func TestCrear_SinStockNoDejaAsiento(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := producto("Azúcar", "")
	require.NoError(t, e.productos.Crear(ctx, p, decimal.Zero))

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCrear_Invalido(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	err := e.productos.Crear(ctx, producto("", ""), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p := producto("Café", "")
	p.PrecioVenta = dec("-1")
	err = e.productos.Crear(ctx, p, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = e.productos.Crear(ctx, producto("Café", ""), dec("-5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrear_CodigoDuplicado(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	require.NoError(t, e.productos.Crear(ctx, producto("Harina PAN", "7591001000123"), decimal.Zero))

	err := e.productos.Crear(ctx, producto("Harina Juana", "7591001000123"), dec("10"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	lista, err := e.productos.Listar(ctx, nil, false)
	require.NoError(t, err)
	assert.Len(t, lista, 1, "el alta fallida no debe dejar rastro")
}

func TestGet_Inexistente(t *testing.T) {
	e := armarEntorno(t)

	_, err := e.productos.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.productos.PorCodigo(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActualizar_NoTocaStock(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := producto("Arroz", "111")
	require.NoError(t, e.productos.Crear(ctx, p, dec("30")))

	p.Nombre = "Arroz Blanco"
	p.PrecioVenta = dec("120.00")
	p.StockActual = dec("999") // debe ignorarse
	require.NoError(t, e.productos.Actualizar(ctx, p))

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Arroz Blanco", leido.Nombre)
	assert.True(t, leido.PrecioVenta.Equal(dec("120.00")))
	assert.True(t, leido.StockActual.Equal(dec("30")), "el stock solo lo mueve el libro")
}

func TestEliminar_EsLogico(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	p := producto("Pasta", "222")
	require.NoError(t, e.productos.Crear(ctx, p, dec("5")))
	require.NoError(t, e.productos.Eliminar(ctx, p.ID))

	leido, err := e.productos.Get(ctx, p.ID)
	require.NoError(t, err, "el producto desactivado sigue legible por ID")
	assert.False(t, leido.Activo)

	activos, err := e.productos.Listar(ctx, nil, true)
	require.NoError(t, err)
	assert.Empty(t, activos)

	movs, err := sqlite.NewMovimientoRepository(e.store.DB()).ListByProducto(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "el historial del producto permanece")
}

func TestBajoStock(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	escaso := producto("Aceite", "333")
	escaso.StockMinimo = dec("10")
	require.NoError(t, e.productos.Crear(ctx, escaso, dec("10")), "stock igual al mínimo cuenta como bajo")

	holgado := producto("Sal", "444")
	holgado.StockMinimo = dec("5")
	require.NoError(t, e.productos.Crear(ctx, holgado, dec("50")))

	bajos, err := e.productos.BajoStock(ctx)
	require.NoError(t, err)
	require.Len(t, bajos, 1)
	assert.Equal(t, "Aceite", bajos[0].Nombre)
}
