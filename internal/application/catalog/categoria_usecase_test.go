package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
)

func TestCategoria_CRUD(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	c := &entity.Categoria{Nombre: "Víveres", Descripcion: "Abarrotes secos"}
	require.NoError(t, e.categorias.Crear(ctx, c))
	require.NotZero(t, c.ID)
	assert.True(t, c.Activo)

	dup := &entity.Categoria{Nombre: "Víveres"}
	assert.ErrorIs(t, e.categorias.Crear(ctx, dup), domain.ErrDuplicate, "el nombre es único")

	leida, err := e.categorias.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Abarrotes secos", leida.Descripcion)

	c.Nombre = "Víveres y granos"
	require.NoError(t, e.categorias.Actualizar(ctx, c))
	leida, err = e.categorias.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Víveres y granos", leida.Nombre)

	require.NoError(t, e.categorias.Eliminar(ctx, c.ID))
	activas, err := e.categorias.Listar(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, activas)
	todas, err := e.categorias.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, todas, 1, "la eliminación es lógica")
}

func TestCategoria_Invalida(t *testing.T) {
	e := armarEntorno(t)
	ctx := context.Background()

	assert.ErrorIs(t, e.categorias.Crear(ctx, &entity.Categoria{}), domain.ErrInvalidInput)

	_, err := e.categorias.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = e.categorias.Actualizar(ctx, &entity.Categoria{ID: 9999, Nombre: "Fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
