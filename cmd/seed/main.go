// Siembra el catálogo inicial desde un archivo JSON (CATALOG_SEED_PATH).
// Cada artículo nace con su fila de stock en cero; las cantidades reales
// entran después por movimientos PURCHASE.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/tu-usuario/floreria-ops/internal/application/dto"
	"github.com/tu-usuario/floreria-ops/internal/application/usecase"
	"github.com/tu-usuario/floreria-ops/internal/infrastructure/postgres"
	"github.com/tu-usuario/floreria-ops/pkg/config"
	"github.com/tu-usuario/floreria-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	raw, err := os.ReadFile(cfg.App.CatalogSeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.App.CatalogSeedPath).Msg("leer archivo de siembra")
	}
	var items []dto.CreateItemRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Fatal().Err(err).Msg("parsear archivo de siembra")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogRepo := postgres.NewCatalogRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	catalogUC := usecase.NewCatalogUseCase(postgres.NewTxRunner(pool), catalogRepo, stockRepo)

	created := 0
	for _, in := range items {
		item, err := catalogUC.CreateItem(ctx, in)
		if err != nil {
			log.Error().Err(err).Str("name", in.Name).Msg("crear artículo")
			continue
		}
		created++
		log.Info().Str("id", item.ID).Str("name", item.Name).Str("kind", item.Kind).Msg("artículo creado")
	}
	log.Info().Int("created", created).Int("total", len(items)).Msg("siembra de catálogo terminada")
}
