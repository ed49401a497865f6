// import_catalog carga insumos (y su stock inicial) desde un CSV exportado de planilla
// o directamente desde un .xlsx (primera hoja).
//
// Uso: go run ./cmd/import_catalog -file insumos.csv [-sep ';'] [-dry-run]
//
// Columnas: nombre;unidad;umbral_reposicion[;cantidad;costo_unitario]
// Con cantidad > 0 se registra una compra inicial, que fija el costo promedio.
// Los insumos que ya existen (mismo nombre) se informan y se omiten.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

const importUser = "import_catalog"

func main() {
	path := flag.String("file", "insumos.csv", "ruta del CSV o .xlsx")
	sep := flag.String("sep", ";", "separador de columnas")
	dryRun := flag.Bool("dry-run", false, "solo validar el archivo")
	flag.Parse()

	comma, size := utf8.DecodeRuneInString(*sep)
	if size == 0 || size != len(*sep) {
		fmt.Fprintf(os.Stderr, "separador inválido %q\n", *sep)
		os.Exit(2)
	}

	f, err := os.Open(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir archivo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var rows []catalogRow
	if strings.HasSuffix(strings.ToLower(*path), ".xlsx") {
		rows, err = readCatalogXLSX(f)
	} else {
		rows, err = readCatalog(f, comma)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Printf("%s: %d insumos válidos\n", *path, len(rows))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "/import_catalog"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ledger := inventory.NewLedgerUseCase(
		postgres.NewTxRunner(pool, cfg.Inventory.LockTimeout),
		postgres.NewIngredientRepository(pool),
		postgres.NewMovementRepository(pool),
		log,
	)

	var created, skipped int
	for _, row := range rows {
		ing, err := ledger.CreateIngredient(ctx, row.Name, row.Unit, row.ReorderThreshold)
		if errors.Is(err, domain.ErrDuplicate) {
			log.Warn().Int("line", row.Line).Str("name", row.Name).Msg("insumo ya existe, se omite")
			skipped++
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Int("line", row.Line).Msg("crear insumo")
		}
		if row.Quantity.IsPositive() {
			if _, err := ledger.RecordPurchase(ctx, ing.ID, row.Quantity, row.UnitCost, importUser); err != nil {
				log.Fatal().Err(err).Int("line", row.Line).Msg("compra inicial")
			}
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("importación terminada")
}
