package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/farm-stand/internal/application/usecase"
	"github.com/jhoicas/farm-stand/internal/domain/repository"
	"github.com/jhoicas/farm-stand/internal/infrastructure/memory"
	"github.com/jhoicas/farm-stand/internal/infrastructure/mongodb"
	httpRouter "github.com/jhoicas/farm-stand/internal/interfaces/http"
	"github.com/jhoicas/farm-stand/pkg/config"
	"github.com/jhoicas/farm-stand/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Console: cfg.App.IsDevelopment(),
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var productRepo repository.ProductRepository
	switch cfg.Store.Driver {
	case config.DriverMemory:
		productRepo = memory.NewProductRepository()
	default:
		client, err := mongodb.Connect(ctx, cfg.Mongo, cfg.App.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				log.Error().Err(err).Msg("cerrar MongoDB")
			}
		}()
		log.Info().Str("database", cfg.Mongo.Database).Msg("conectado a MongoDB")
		productRepo = mongodb.NewProductRepository(client.Collection(cfg.Mongo.Collection))
	}

	productUC := usecase.NewProductUseCase(productRepo)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		ProductUC: productUC,
		Views:     cfg.Views,
		Logger:    log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
