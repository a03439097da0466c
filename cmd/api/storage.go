package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Timesheet-api/pkg/config"
	"github.com/jhoicas/Timesheet-api/pkg/logger"
)

// txRunner une los runners transaccionales que piden los casos de uso.
type txRunner interface {
	billing.InvoicingTxRunner
	billing.PaymentMethodTxRunner
	usecase.ClientTxRunner
}

// storage repositorios del driver configurado.
type storage struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	entries  repository.TimeEntryRepository
	invoices repository.InvoiceRepository
	pms      repository.PaymentMethodRepository
	settings repository.CompanySettingsRepository
	tx       txRunner
	close    func()
}

// openStorage abre PostgreSQL (y migra si DB_AUTO_MIGRATE) o el store en memoria.
func openStorage(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		db := memory.NewStore()
		return &storage{
			users:    memory.NewUserRepository(db),
			projects: memory.NewProjectRepository(db),
			entries:  memory.NewTimeEntryRepository(db),
			invoices: memory.NewInvoiceRepository(db),
			pms:      memory.NewPaymentMethodRepository(db),
			settings: memory.NewCompanySettingsRepository(db),
			tx:       memory.NewTxRunner(db),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.AutoMigrate {
		applied, err := postgres.NewMigrator(pool, log.Component("migrator")).Up(ctx)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Int("applied", applied).Msg("migraciones aplicadas")
	}
	return &storage{
		users:    postgres.NewUserRepository(pool),
		projects: postgres.NewProjectRepository(pool),
		entries:  postgres.NewTimeEntryRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		pms:      postgres.NewPaymentMethodRepository(pool),
		settings: postgres.NewCompanySettingsRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
