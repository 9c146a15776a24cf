// seed pobla el catálogo con productos de ejemplo usando la misma configuración que la API.
//
// Uso: go run ./cmd/seed [-drop]
// Con -drop elimina antes todos los productos existentes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/farm-stand/internal/application/dto"
	"github.com/jhoicas/farm-stand/internal/application/usecase"
	"github.com/jhoicas/farm-stand/internal/infrastructure/mongodb"
	"github.com/jhoicas/farm-stand/pkg/config"
	"github.com/jhoicas/farm-stand/pkg/logger"
)

type sample struct {
	name, price, category string
}

var samples = []sample{
	{"Fairy Eggplant", "1.00", "vegetable"},
	{"Organic Goddess Melon", "4.99", "fruit"},
	{"Organic Mini Seedless Watermelon", "3.99", "fruit"},
	{"Organic Celery", "1.50", "vegetable"},
	{"Chocolate Whole Milk", "2.69", "dairy"},
}

func main() {
	drop := flag.Bool("drop", false, "eliminar los productos existentes antes de sembrar")
	flag.Parse()
	os.Exit(seed(*drop))
}

// seed devuelve el código de salida; los defer (cierre de MongoDB) corren antes de os.Exit.
func seed(drop bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		return 1
	}
	if cfg.Store.Driver != config.DriverMongo {
		fmt.Fprintf(os.Stderr, "seed requiere STORE_DRIVER=%s (actual: %s)\n", config.DriverMongo, cfg.Store.Driver)
		return 1
	}

	log := logger.New(logger.Config{Console: cfg.App.IsDevelopment(), Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := mongodb.Connect(ctx, cfg.Mongo, cfg.App.Name+"-seed")
	if err != nil {
		log.Error().Err(err).Msg("conexión a MongoDB")
		return 1
	}
	defer closeStore(client, log)

	uc := usecase.NewProductUseCase(mongodb.NewProductRepository(client.Collection(cfg.Mongo.Collection)))
	if err := run(ctx, uc, drop, log); err != nil {
		log.Error().Err(err).Msg("seed")
		return 1
	}
	return 0
}

type storeCloser interface {
	Close(ctx context.Context) error
}

func closeStore(c storeCloser, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		log.Error().Err(err).Msg("cerrar MongoDB")
	}
}

func run(ctx context.Context, uc *usecase.ProductUseCase, drop bool, log *logger.Logger) error {
	if drop {
		existing, err := uc.List(ctx, "")
		if err != nil {
			return fmt.Errorf("listar productos: %w", err)
		}
		for _, p := range existing.Products {
			if err := uc.Delete(ctx, p.ID); err != nil {
				return fmt.Errorf("eliminar %s: %w", p.ID, err)
			}
		}
		log.Info().Int("count", len(existing.Products)).Msg("productos eliminados")
	}

	for _, s := range samples {
		name, price, category := s.name, s.price, s.category
		out, err := uc.Create(ctx, dto.ProductPayload{Name: &name, Price: &price, Category: &category})
		if err != nil {
			return fmt.Errorf("crear %q: %w", s.name, err)
		}
		log.Info().Str("id", out.ID).Str("name", out.Name).Msg("producto creado")
	}
	log.Info().Int("count", len(samples)).Msg("seed completado")
	return nil
}
