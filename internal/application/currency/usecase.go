package currency

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/ports"
	"github.com/acaicedo/puntoventa/internal/domain"
	"github.com/acaicedo/puntoventa/internal/domain/entity"
	"github.com/acaicedo/puntoventa/internal/domain/repository"
)

// Símbolos por defecto cuando la configuración no los tiene.
const (
	simboloVESDefecto = "Bs."
	simboloUSDDefecto = "$"
)

// UseCase autoridad de moneda: tasa de cambio vigente, conversiones y
// configuración de despliegue multimoneda.
type UseCase struct {
	monedas repository.MonedaRepository
	tx      ports.TxRunner
}

// NewUseCase construye el caso de uso. monedas va atado al pool; SetTasa
// escribe vía tx porque recomputa el catálogo completo.
func NewUseCase(monedas repository.MonedaRepository, tx ports.TxRunner) *UseCase {
	return &UseCase{monedas: monedas, tx: tx}
}

// Tasa devuelve la tasa USD/VES vigente. Si nunca fue configurada, o el
// valor guardado no parsea, cae a la tasa por defecto: el punto de venta
// no puede quedarse sin tasa.
func (uc *UseCase) Tasa(ctx context.Context) (decimal.Decimal, error) {
	valor, err := uc.monedas.Get(ctx, entity.ClaveTasaUSDVES)
	if err != nil {
		return decimal.Zero, err
	}
	if valor == "" {
		return entity.TasaPorDefecto, nil
	}
	tasa, err := decimal.NewFromString(valor)
	if err != nil || !tasa.IsPositive() {
		log.Warn().Str("valor", valor).Msg("tasa guardada inválida, usando tasa por defecto")
		return entity.TasaPorDefecto, nil
	}
	return tasa, nil
}

// SetTasa fija la tasa USD/VES y rederiva los precios VES de todo el
// catálogo en la misma transacción: ningún lector ve la tasa nueva con
// precios viejos. Devuelve cuántos productos fueron recomputados.
func (uc *UseCase) SetTasa(ctx context.Context, tasa decimal.Decimal) (int64, error) {
	if !tasa.IsPositive() {
		return 0, fmt.Errorf("tasa %s: %w", tasa, domain.ErrInvalidInput)
	}

	var recomputados int64
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Monedas.Set(ctx, entity.ClaveTasaUSDVES, tasa.String()); err != nil {
			return err
		}
		n, err := r.Productos.RecomputarPrecios(ctx, tasa)
		if err != nil {
			return err
		}
		recomputados = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("tasa", tasa.String()).
		Int64("productos", recomputados).
		Msg("tasa de cambio actualizada")
	return recomputados, nil
}

// ADolar convierte un monto VES a USD con la tasa dada, redondeando a 2
// decimales. Tasa no positiva da 0: mejor un equivalente nulo que una
// división inválida.
func ADolar(monto, tasa decimal.Decimal) decimal.Decimal {
	if !tasa.IsPositive() {
		return decimal.Zero
	}
	return monto.DivRound(tasa, 2)
}

// ABolivares convierte un monto USD a VES con la tasa dada, redondeando a
// 2 decimales.
func ABolivares(monto, tasa decimal.Decimal) decimal.Decimal {
	return monto.Mul(tasa).Round(2)
}

// Simbolos devuelve los símbolos de despliegue (VES, USD) configurados.
func (uc *UseCase) Simbolos(ctx context.Context) (string, string, error) {
	ves, err := uc.monedas.Get(ctx, entity.ClaveSimboloVES)
	if err != nil {
		return "", "", err
	}
	usd, err := uc.monedas.Get(ctx, entity.ClaveSimboloUSD)
	if err != nil {
		return "", "", err
	}
	if ves == "" {
		ves = simboloVESDefecto
	}
	if usd == "" {
		usd = simboloUSDDefecto
	}
	return ves, usd, nil
}

// MonedasActivas devuelve la moneda principal y la secundaria con sus
// símbolos, en ese orden.
func (uc *UseCase) MonedasActivas(ctx context.Context) ([]entity.Moneda, error) {
	principal, err := uc.monedas.Get(ctx, entity.ClaveMonedaPrincipal)
	if err != nil {
		return nil, err
	}
	secundaria, err := uc.monedas.Get(ctx, entity.ClaveMonedaSecundaria)
	if err != nil {
		return nil, err
	}
	if principal == "" {
		principal = entity.MonedaVES
	}
	if secundaria == "" {
		secundaria = entity.MonedaUSD
	}
	ves, usd, err := uc.Simbolos(ctx)
	if err != nil {
		return nil, err
	}
	simbolo := func(codigo string) string {
		if codigo == entity.MonedaUSD {
			return usd
		}
		return ves
	}
	return []entity.Moneda{
		{Codigo: principal, Simbolo: simbolo(principal)},
		{Codigo: secundaria, Simbolo: simbolo(secundaria)},
	}, nil
}

// MostrarAmbasMonedas informa si los precios deben desplegarse en ambas
// monedas. Por defecto sí.
func (uc *UseCase) MostrarAmbasMonedas(ctx context.Context) (bool, error) {
	valor, err := uc.monedas.Get(ctx, entity.ClaveMostrarAmbasMonedas)
	if err != nil {
		return false, err
	}
	if valor == "" {
		return true, nil
	}
	return valor == "1" || valor == "true", nil
}
