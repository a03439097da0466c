package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Timesheet-api/pkg/config"
	"github.com/jhoicas/Timesheet-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "timesheetctl",
	Short: "Administración de Timesheet API",
	Long: `timesheetctl ejecuta tareas de mantenimiento sobre la base PostgreSQL
configurada con las mismas variables de entorno que la API (DATABASE_URL, DB_HOST, ...).`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap carga la configuración, el logger y el pool de PostgreSQL.
func bootstrap(ctx context.Context) (*config.Config, *logger.Logger, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.DB.Driver != config.DriverPostgres {
		return nil, nil, nil, fmt.Errorf("timesheetctl requiere DB_DRIVER=%s", config.DriverPostgres)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("cli")
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return cfg, log, pool, nil
}
