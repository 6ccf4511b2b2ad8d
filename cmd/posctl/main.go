// posctl herramienta de línea de comandos del punto de venta: consultas de
// catálogo, tasa de cambio, ajustes de inventario, corte de caja y
// mantenimiento del archivo de datos.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/acaicedo/puntoventa/internal/application/catalog"
	"github.com/acaicedo/puntoventa/internal/application/currency"
	"github.com/acaicedo/puntoventa/internal/application/inventory"
	"github.com/acaicedo/puntoventa/internal/application/reports"
	"github.com/acaicedo/puntoventa/internal/infrastructure/sqlite"
	"github.com/acaicedo/puntoventa/pkg/config"
	"github.com/acaicedo/puntoventa/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, `uso: posctl <comando> [argumentos]

comandos:
  tasa                      muestra la tasa de cambio vigente
  set-tasa <valor>          fija la tasa y recomputa los precios del catálogo
  productos                 lista el catálogo activo
  buscar <término>          busca productos
  bajo-stock                lista productos en o bajo su mínimo
  ajustar <id> <cantidad>   fija el stock de un producto (movimiento de ajuste)
  verificar <id>            contrasta el libro de movimientos con el stock
  corte [AAAA-MM-DD]        corte de caja del día (hoy por defecto)
  checkpoint                vuelca el WAL al archivo principal`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	store, err := sqlite.Open(cfg.DB.Path, cfg.DB.BusyTimeoutMS)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("abrir base de datos")
	}
	defer store.Close()

	db := store.DB()
	tx := sqlite.NewTxRunner(store)
	productos := sqlite.NewProductoRepository(db)
	movimientos := sqlite.NewMovimientoRepository(db)
	monedas := sqlite.NewMonedaRepository(db)
	reportes := sqlite.NewReporteRepository(db)
	pagos := sqlite.NewPagoRepository(db)

	monedaUC := currency.NewUseCase(monedas, tx)
	productoUC := catalog.NewProductoUseCase(tx, productos)
	inventarioUC := inventory.NewUseCase(tx, productos, movimientos)
	reportesUC := reports.NewUseCase(reportes, pagos)

	ctx := context.Background()
	if err := run(ctx, args, monedaUC, productoUC, inventarioUC, reportesUC, store); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	args []string,
	monedaUC *currency.UseCase,
	productoUC *catalog.ProductoUseCase,
	inventarioUC *inventory.UseCase,
	reportesUC *reports.UseCase,
	store *sqlite.Store,
) error {
	switch args[0] {
	case "tasa":
		tasa, err := monedaUC.Tasa(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("1 USD = %s VES\n", tasa)
		return nil

	case "set-tasa":
		if len(args) != 2 {
			usage()
		}
		tasa, err := decimal.NewFromString(args[1])
		if err != nil {
			return fmt.Errorf("tasa inválida %q", args[1])
		}
		n, err := monedaUC.SetTasa(ctx, tasa)
		if err != nil {
			return err
		}
		fmt.Printf("tasa fijada en %s; %d productos recomputados\n", tasa, n)
		return nil

	case "productos":
		lista, err := productoUC.Listar(ctx, nil, true)
		if err != nil {
			return err
		}
		for _, p := range lista {
			fmt.Printf("%6d  %-14s  %-40s  Bs. %10s  stock %s\n",
				p.ID, p.CodigoBarras, p.Nombre, p.PrecioVenta, p.StockActual)
		}
		return nil

	case "buscar":
		if len(args) != 2 {
			usage()
		}
		lista, err := productoUC.Buscar(ctx, args[1])
		if err != nil {
			return err
		}
		for _, p := range lista {
			fmt.Printf("%6d  %-14s  %-40s  Bs. %10s\n",
				p.ID, p.CodigoBarras, p.Nombre, p.PrecioVenta)
		}
		return nil

	case "bajo-stock":
		lista, err := productoUC.BajoStock(ctx)
		if err != nil {
			return err
		}
		for _, p := range lista {
			fmt.Printf("%6d  %-40s  stock %s (mínimo %s)\n",
				p.ID, p.Nombre, p.StockActual, p.StockMinimo)
		}
		return nil

	case "ajustar":
		if len(args) != 3 {
			usage()
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("id inválido %q", args[1])
		}
		cantidad, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("cantidad inválida %q", args[2])
		}
		nueva, err := inventarioUC.RegistrarAjuste(ctx, id, cantidad, "Ajuste desde posctl", "")
		if err != nil {
			return err
		}
		fmt.Printf("stock del producto %d fijado en %s\n", id, nueva)
		return nil

	case "verificar":
		if len(args) != 2 {
			usage()
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("id inválido %q", args[1])
		}
		if err := inventarioUC.Verificar(ctx, id); err != nil {
			return err
		}
		fmt.Printf("producto %d: libro y stock coinciden\n", id)
		return nil

	case "corte":
		fecha := time.Now()
		if len(args) == 2 {
			var err error
			fecha, err = time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("fecha inválida %q", args[1])
			}
		}
		corte, err := reportesUC.CorteDia(ctx, fecha)
		if err != nil {
			return err
		}
		fmt.Printf("corte del %s\n", fecha.Format("2006-01-02"))
		fmt.Printf("  ventas: %d  ingresos: Bs. %s  ticket promedio: Bs. %s\n",
			corte.Totales.TotalVentas, corte.Totales.TotalIngresos, corte.Totales.TicketPromedio)
		for _, m := range corte.ResumenPagos {
			fmt.Printf("  %-16s %4d ventas  Bs. %s\n", m.MetodoPago, m.Ventas, m.Total)
		}
		for _, p := range corte.ProductosMasVendidos {
			fmt.Printf("  %-40s x%s  Bs. %s\n", p.Nombre, p.CantidadVendida, p.TotalVendido)
		}
		return nil

	case "checkpoint":
		if err := store.Checkpoint(ctx); err != nil {
			return err
		}
		fmt.Println("WAL volcado; el archivo está listo para respaldo por copia")
		return nil

	default:
		usage()
		return nil
	}
}
