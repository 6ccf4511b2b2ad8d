package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/infrastructure/sqlite"
)

func abrirStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), 5000)
	require.NoError(t, err, "abrir el store no debe fallar")
	t.Cleanup(func() { store.Close() })
	return store
}

func nuevoProducto(nombre, codigo string) *entity.Producto {
	now := time.Now().UTC()
	return &entity.Producto{
		CodigoBarras:      codigo,
		Nombre:            nombre,
		PrecioVenta:       decimal.RequireFromString("100.00"),
		TasaCamb:          entity.TasaPorDefecto,
		Activo:            true,
		FechaCreacion:     now,
		FechaModificacion: now,
	}
}

func TestOpen_MigracionesIdempotentes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	store, err := sqlite.Open(path, 5000)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reabrir sobre el mismo archivo no debe reintentar migraciones ya aplicadas
	store, err = sqlite.Open(path, 5000)
	require.NoError(t, err)
	defer store.Close()

	var n int
	err = store.DB().QueryRow(`SELECT COUNT(*) FROM configuracion_monedas`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 6, n, "la semilla de configuración no debe duplicarse")
}

func TestOpen_ModoWAL(t *testing.T) {
	store := abrirStore(t)

	var modo string
	require.NoError(t, store.DB().QueryRow(`PRAGMA journal_mode`).Scan(&modo))
	assert.Equal(t, "wal", modo)
}

func TestHasColumn(t *testing.T) {
	store := abrirStore(t)
	ctx := context.Background()

	ok, err := store.HasColumn(ctx, "productos", "vende_al_mayor")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.HasColumn(ctx, "productos", "columna_inexistente")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckpoint(t *testing.T) {
	store := abrirStore(t)
	require.NoError(t, store.Checkpoint(context.Background()))
}

func TestProductoRepo_CodigoDuplicado(t *testing.T) {
	store := abrirStore(t)
	ctx := context.Background()
	repo := sqlite.NewProductoRepository(store.DB())

	require.NoError(t, repo.Create(ctx, nuevoProducto("Harina PAN", "7591001000123")))

	err := repo.Create(ctx, nuevoProducto("Harina Juana", "7591001000123"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductoRepo_GetInexistente(t *testing.T) {
	store := abrirStore(t)
	repo := sqlite.NewProductoRepository(store.DB())

	p, err := repo.GetByID(context.Background(), 9999)
	require.NoError(t, err, "un ID inexistente no es un error del repo")
	assert.Nil(t, p)
}

func TestProductoRepo_UpdateInexistente(t *testing.T) {
	store := abrirStore(t)
	repo := sqlite.NewProductoRepository(store.DB())

	p := nuevoProducto("Fantasma", "")
	p.ID = 9999
	err := repo.Update(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductoRepo_Search(t *testing.T) {
	store := abrirStore(t)
	ctx := context.Background()
	repo := sqlite.NewProductoRepository(store.DB())

	require.NoError(t, repo.Create(ctx, nuevoProducto("Arroz Blanco", "111222333")))
	require.NoError(t, repo.Create(ctx, nuevoProducto("Harina de Arroz", "444555666")))
	otro := nuevoProducto("Azúcar", "111999888")
	require.NoError(t, repo.Create(ctx, otro))

	t.Run("término vacío devuelve vacío", func(t *testing.T) {
		res, err := repo.Search(ctx, "   ")
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("código exacto primero", func(t *testing.T) {
		res, err := repo.Search(ctx, "111222333")
		require.NoError(t, err)
		require.NotEmpty(t, res)
		assert.Equal(t, "Arroz Blanco", res[0].Nombre)
	})

	t.Run("código parcial usa la rama de código", func(t *testing.T) {
		res, err := repo.Search(ctx, "111")
		require.NoError(t, err)
		require.Len(t, res, 2, "debe traer los dos productos con 111 en el código")
	})

	t.Run("nombre rankea sobre descripción", func(t *testing.T) {
		res, err := repo.Search(ctx, "Arroz")
		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "Arroz Blanco", res[0].Nombre)
		assert.Equal(t, "Harina de Arroz", res[1].Nombre)
	})
}

func TestMonedaRepo_GetYSet(t *testing.T) {
	store := abrirStore(t)
	ctx := context.Background()
	repo := sqlite.NewMonedaRepository(store.DB())

	valor, err := repo.Get(ctx, "clave_inexistente")
	require.NoError(t, err, "clave ausente no es error")
	assert.Equal(t, "", valor)

	valor, err = repo.Get(ctx, entity.ClaveTasaUSDVES)
	require.NoError(t, err)
	assert.Equal(t, "36.50", valor, "la semilla trae la tasa por defecto")

	require.NoError(t, repo.Set(ctx, entity.ClaveTasaUSDVES, "40.25"))
	require.NoError(t, repo.Set(ctx, entity.ClaveTasaUSDVES, "41.00"), "el upsert debe tolerar claves existentes")

	valor, err = repo.Get(ctx, entity.ClaveTasaUSDVES)
	require.NoError(t, err)
	assert.Equal(t, "41.00", valor)
}

func TestMovimientoRepo_SumaVacia(t *testing.T) {
	store := abrirStore(t)
	repo := sqlite.NewMovimientoRepository(store.DB())

	suma, err := repo.SumByProducto(context.Background(), 12345)
	require.NoError(t, err)
	assert.True(t, suma.IsZero(), "sin movimientos la suma es cero, no NULL")
}
