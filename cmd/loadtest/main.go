package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/clientes-api/internal/loadtest"
	"github.com/jhoicas/clientes-api/pkg/config"
	"github.com/jhoicas/clientes-api/pkg/logger"
)

// Prueba de carga: LOADTEST_VUS usuarios creando clientes durante LOADTEST_DURATION.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("url", cfg.LoadTest.URL).
		Int("vus", cfg.LoadTest.VUs).
		Dur("duration", cfg.LoadTest.Duration).
		Msg("iniciando prueba de carga")

	res, err := loadtest.NewRunner(cfg.LoadTest, nil).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("prueba de carga")
	}

	ev := log.Info()
	if res.Failed > 0 {
		ev = log.Error()
	}
	ev.Int("requests", res.Requests).
		Int("criar_cliente_status_201", res.Passed).
		Int("failed", res.Failed).
		Dur("p50", res.P50).
		Dur("p95", res.P95).
		Msg("prueba de carga finalizada")

	if res.Failed > 0 {
		os.Exit(1)
	}
}
